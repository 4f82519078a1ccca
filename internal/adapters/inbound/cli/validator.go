package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specguard/specguard/internal/adapters/outbound/tui"
	"github.com/specguard/specguard/internal/application"
	"github.com/specguard/specguard/internal/domain"
)

func newValidatorCmd() *cobra.Command {
	var (
		specPath   string
		implPath   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "validator <key> [path]",
		Short: "Run a single validator",
		Long: "Run one validator against a project and report its checks. " +
			"Valid keys: code-quality, security, testing, spec-adherence, branch-strategy, documentation.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			path := "."
			if len(args) > 1 {
				path = args[1]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc, err := newRunnerService(absPath)
			if err != nil {
				return err
			}

			report, err := svc.RunValidator(key, absPath, application.ValidatorOptions{
				SpecPath: specPath,
				ImplPath: implPath,
			})
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if report.Status == domain.StatusFail || report.Status == domain.StatusError {
				return fmt.Errorf("validator %s: %s", key, report.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec-dir", "", "Spec directory (spec-adherence only)")
	cmd.Flags().StringVar(&implPath, "impl-dir", "", "Implementation directory (spec-adherence only)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
