package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/specguard/specguard/internal/adapters/outbound/config"
	"github.com/specguard/specguard/internal/adapters/outbound/gitinfo"
	"github.com/specguard/specguard/internal/adapters/outbound/history"
	"github.com/specguard/specguard/internal/adapters/outbound/scanner"
	"github.com/specguard/specguard/internal/application"
)

// registerTools registers all SpecGuard MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. specguard_run
	s.AddTool(
		mcplib.NewTool("specguard_run",
			mcplib.WithDescription("Run the validators against the project and return the full run summary as JSON"),
			mcplib.WithNumber("tier", mcplib.Description("Run only the given tier (1 or 2)")),
			mcplib.WithString("only", mcplib.Description("Comma-separated validator keys to run")),
			mcplib.WithString("skip", mcplib.Description("Comma-separated validator keys to skip")),
		),
		handleRun(projectPath),
	)

	// 2. specguard_validator
	s.AddTool(
		mcplib.NewTool("specguard_validator",
			mcplib.WithDescription("Run a single validator and return its report as JSON"),
			mcplib.WithString("key",
				mcplib.Required(),
				mcplib.Description("Validator key (code-quality, security, testing, spec-adherence, branch-strategy, documentation)"),
			),
			mcplib.WithString("spec_dir", mcplib.Description("Spec directory override (spec-adherence only)")),
			mcplib.WithString("impl_dir", mcplib.Description("Implementation directory override (spec-adherence only)")),
		),
		handleValidator(projectPath),
	)

	// 3. specguard_score
	s.AddTool(
		mcplib.NewTool("specguard_score",
			mcplib.WithDescription("Run all validators and return just the quality score, status, and recommendations"),
		),
		handleScore(projectPath),
	)

	// 4. specguard_history
	s.AddTool(
		mcplib.NewTool("specguard_history",
			mcplib.WithDescription("Return the persisted run history for the project"),
		),
		handleHistory(projectPath),
	)
}

// newService wires the standard outbound adapters into a RunnerService.
func newService(projectPath string) (*application.RunnerService, error) {
	loader := config.New()
	cfg, err := loader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return application.NewRunnerService(scanner.New(), gitinfo.New(), loader, cfg), nil
}

func handleRun(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, err := newService(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		opts := application.RunOptions{}
		if skipStr, ok := args["skip"].(string); ok && skipStr != "" {
			opts.Skip = splitAndTrim(skipStr)
		}

		if tierNum, ok := args["tier"].(float64); ok && tierNum != 0 {
			summary, err := svc.RunTier(int(tierNum), projectPath, opts)
			if err != nil {
				return errorResult(fmt.Sprintf("run failed: %v", err)), nil
			}
			return jsonResult(summary)
		}
		if onlyStr, ok := args["only"].(string); ok && onlyStr != "" {
			summary, err := svc.RunSubset(splitAndTrim(onlyStr), projectPath, opts)
			if err != nil {
				return errorResult(fmt.Sprintf("run failed: %v", err)), nil
			}
			return jsonResult(summary)
		}

		summary, err := svc.RunAll(projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("run failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func handleValidator(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc, err := newService(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		opts := application.ValidatorOptions{}
		if s, ok := args["spec_dir"].(string); ok {
			opts.SpecPath = s
		}
		if s, ok := args["impl_dir"].(string); ok {
			opts.ImplPath = s
		}

		report, err := svc.RunValidator(key, projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleScore(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, err := newService(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		summary, err := svc.RunAll(projectPath, application.RunOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("run failed: %v", err)), nil
		}

		type scoreResult struct {
			QualityScore    int      `json:"quality_score"`
			Status          string   `json:"status"`
			Recommendations []string `json:"recommendations,omitempty"`
		}
		return jsonResult(scoreResult{
			QualityScore:    summary.QualityScore,
			Status:          string(summary.Status),
			Recommendations: summary.Recommendations,
		})
	}
}

func handleHistory(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history: %v", err)), nil
		}
		return jsonResult(entries)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
