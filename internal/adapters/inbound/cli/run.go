package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/specguard/specguard/internal/adapters/outbound/config"
	"github.com/specguard/specguard/internal/adapters/outbound/gitinfo"
	"github.com/specguard/specguard/internal/adapters/outbound/history"
	"github.com/specguard/specguard/internal/adapters/outbound/scanner"
	"github.com/specguard/specguard/internal/adapters/outbound/tui"
	"github.com/specguard/specguard/internal/application"
	"github.com/specguard/specguard/internal/domain"
)

func newRunCmd() *cobra.Command {
	var (
		tier        int
		only        []string
		skip        []string
		jsonOutput  bool
		outputFile  string
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Run the validators against a project",
		Long:  "Run the tiered validators against a project and report a quality score. Exits non-zero when any validator fails or errors.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc, err := newRunnerService(absPath)
			if err != nil {
				return err
			}

			opts := application.RunOptions{Skip: skip}
			var summary *domain.RunSummary
			switch {
			case tier != 0:
				summary, err = svc.RunTier(tier, absPath, opts)
			case len(only) > 0:
				summary, err = svc.RunSubset(only, absPath, opts)
			default:
				summary, err = svc.RunAll(absPath, opts)
			}
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			hist := history.New()
			entry := domain.RunEntry{
				Timestamp:    time.Now().Format(time.RFC3339),
				Status:       summary.Status,
				QualityScore: summary.QualityScore,
				Counts:       summary.Summary,
			}
			_ = hist.Save(absPath, entry) // best-effort

			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			if outputFile != "" {
				if err := writeJSONFile(outputFile, summary); err != nil {
					return fmt.Errorf("writing %s: %w", outputFile, err)
				}
			}

			if jsonOutput {
				if err := renderJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRun(summary))
			}

			if summary.Summary.Failed > 0 {
				return fmt.Errorf("%d validator(s) failed", summary.Summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&tier, "tier", 0, "Run only the given tier (1 or 2)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only the named validators")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Skip the named validators")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run summary as JSON")
	cmd.Flags().StringVar(&outputFile, "output", "", "Write the run summary JSON to a file")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show run history")
	cmd.MarkFlagsMutuallyExclusive("tier", "only")

	return cmd
}

// newRunnerService wires the outbound adapters into a RunnerService using
// the project's own configuration.
func newRunnerService(absPath string) (*application.RunnerService, error) {
	loader := config.New()
	cfg, err := loader.Load(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return application.NewRunnerService(scanner.New(), gitinfo.New(), loader, cfg), nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
