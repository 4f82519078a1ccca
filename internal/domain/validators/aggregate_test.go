package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/validators"
)

func TestAggregate_WorstOfAndTally(t *testing.T) {
	details := domain.RatioDetails{}
	details.Hint = "fix the warning"
	checks := []domain.CheckResult{
		{Name: "A", Status: domain.StatusPass},
		{Name: "B", Status: domain.StatusWarning, Details: &details},
		{Name: "C", Status: domain.StatusPass},
	}

	report := validators.Aggregate(domain.KeyCodeQuality, "/p", checks)
	assert.Equal(t, "code-quality", report.Validator)
	assert.Equal(t, domain.StatusWarning, report.Status)
	assert.Equal(t, domain.ReportSummary{Total: 3, Passed: 2, Warnings: 1}, report.Summary)
	assert.Equal(t, []string{"fix the warning"}, report.Recommendations)
}

func TestAggregate_FailDominatesWarning(t *testing.T) {
	report := validators.Aggregate(domain.KeySecurity, "/p", []domain.CheckResult{
		{Name: "A", Status: domain.StatusWarning},
		{Name: "B", Status: domain.StatusFail},
		{Name: "C", Status: domain.StatusPass},
	})
	assert.Equal(t, domain.StatusFail, report.Status)
	assert.Equal(t, domain.ReportSummary{Total: 3, Passed: 1, Warnings: 1, Failed: 1}, report.Summary)
}

func TestAggregate_NoChecksIsUnknown(t *testing.T) {
	report := validators.Aggregate(domain.KeyTesting, "/p", nil)
	assert.Equal(t, domain.StatusUnknown, report.Status)
	assert.Zero(t, report.Summary.Total)
}

func TestValidate_MissingDirectoryFails(t *testing.T) {
	v := validators.NewCodeQuality(fileSet(), domain.DefaultThresholds())
	report, err := v.Validate("/definitely/not/a/real/path")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFail, report.Status)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, "Target Directory", report.Checks[0].Name)
}
