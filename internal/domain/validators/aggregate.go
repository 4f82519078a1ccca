// Package validators implements the six analyzers that grade a project
// tree, plus the aggregation rule that folds their checks into a report.
// All analysis is line/regex based and approximate by design.
package validators

import (
	"fmt"
	"os"

	"github.com/specguard/specguard/internal/domain"
)

// Validator is the uniform contract the runner invokes: one entry point,
// one report per invocation.
type Validator interface {
	Key() domain.ValidatorKey
	Validate(projectPath string) (*domain.ValidatorReport, error)
}

// Aggregate folds a list of check results into a report: status is the
// worst status among checks, the summary is a straight tally, and
// recommendations are collected in check order. Deduplication across
// validators happens at the runner layer, not here.
func Aggregate(key domain.ValidatorKey, path string, checks []domain.CheckResult) *domain.ValidatorReport {
	report := &domain.ValidatorReport{
		Validator: string(key),
		Path:      path,
		Status:    domain.StatusPass,
		Checks:    checks,
	}
	if len(checks) == 0 {
		report.Status = domain.StatusUnknown
		return report
	}

	for _, c := range checks {
		report.Status = domain.WorstOf(report.Status, c.Status)
		report.Summary.Total++
		switch c.Status {
		case domain.StatusPass:
			report.Summary.Passed++
		case domain.StatusWarning:
			report.Summary.Warnings++
		case domain.StatusFail:
			report.Summary.Failed++
		}
		if rec := c.Recommendation(); rec != "" {
			report.Recommendations = append(report.Recommendations, rec)
		}
	}
	return report
}

// missingPathReport is the non-throwing contract for single-directory
// validators pointed at a directory that does not exist.
func missingPathReport(key domain.ValidatorKey, path string) *domain.ValidatorReport {
	return &domain.ValidatorReport{
		Validator: string(key),
		Path:      path,
		Status:    domain.StatusFail,
		Checks: []domain.CheckResult{{
			Name:    "Target Directory",
			Status:  domain.StatusFail,
			Message: fmt.Sprintf("directory %s does not exist", path),
		}},
		Summary: domain.ReportSummary{Total: 1, Failed: 1},
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
