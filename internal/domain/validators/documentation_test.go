package validators_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/validators"
)

const fullReadme = `# Report Exporter

Exports quality reports from dashboards into portable JSON bundles.

## Installation

Run npm install in the project root.

## Usage

Run the exporter against a dashboard URL.

## License

MIT
`

const commentedCode = `// calculator helpers

// addNumbers sums two values
function addNumbers(a, b) {
  return a + b;
}
`

func TestDocumentation_CompleteProjectPasses(t *testing.T) {
	scanner := fileSet(
		rec("README.md", fullReadme),
		rec("src/calc.js", commentedCode),
	)
	v := validators.NewDocumentation(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPass, findCheck(t, report, "README Completeness").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Code Comments").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Setup Instructions").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Documentation Structure").Status)
	assert.Equal(t, domain.StatusPass, report.Status)
}

func TestDocumentation_MissingReadmeFails(t *testing.T) {
	scanner := fileSet(rec("src/calc.js", commentedCode))
	v := validators.NewDocumentation(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "README Completeness")
	assert.Equal(t, domain.StatusFail, check.Status)
	assert.NotEmpty(t, check.Recommendation())
	assert.Equal(t, domain.StatusFail, report.Status)
}

func TestDocumentation_IncompleteReadmeReported(t *testing.T) {
	scanner := fileSet(
		rec("README.md", "# Report Exporter\n\nExports quality reports from dashboards into portable bundles.\n"),
		rec("src/calc.js", commentedCode),
	)
	v := validators.NewDocumentation(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "README Completeness")
	assert.NotEqual(t, domain.StatusPass, check.Status)
	details := check.Details.(*domain.RatioDetails)
	assert.Contains(t, details.Items, "missing: installation")
	assert.Contains(t, details.Items, "missing: usage")
	assert.Contains(t, details.Items, "missing: license")
}

func TestDocumentation_UndocumentedRoutesFlagged(t *testing.T) {
	routes := `// lists all reports
app.get('/reports', listReports);
configureCors();
applyRateLimits();
attachLogger();
app.post('/reports', createReport);
`
	scanner := fileSet(
		rec("README.md", fullReadme),
		rec("src/routes.js", routes),
	)
	v := validators.NewDocumentation(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "API Documentation")
	assert.NotEqual(t, domain.StatusPass, check.Status)
	details := check.Details.(*domain.EvidenceDetails)
	require.Len(t, details.Violations, 1)
	assert.Equal(t, 6, details.Violations[0].Line)
}

func TestDocumentation_SpecDirGapsWarn(t *testing.T) {
	project := t.TempDir()
	dir := filepath.Join(project, "specs", "report-export")
	require.NoError(t, os.MkdirAll(dir, 0755))
	// spec.md present but tasks.md, status.md, and the design doc are not.
	spec := "# Spec\n\n## Overview\n\nExport reports.\n\n## Spec Scope\n\n- Export\n\n## Expected Deliverables\n\n- Exporter\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spec.md"), []byte(spec), 0644))

	scanner := fileSet(rec("README.md", fullReadme))
	v := validators.NewDocumentation(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(project)
	require.NoError(t, err)

	check := findCheck(t, report, "Spec Documentation")
	assert.Equal(t, domain.StatusWarning, check.Status)
	details := check.Details.(*domain.EvidenceDetails)
	assert.Len(t, details.Violations, 3)
}
