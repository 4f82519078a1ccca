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

const calcTest = `describe('calculator', () => {
  it('adds two numbers together', () => {
    expect(add(1, 2)).toBe(3);
  });
});
`

func TestTesting_PairedTestFilesPass(t *testing.T) {
	scanner := fileSet(
		rec("src/calc.js", "function addNumbers(a, b) { return a + b; }\n"),
		rec("src/calc.test.js", calcTest),
		rec("package.json", `{"scripts": {"test": "jest"}, "devDependencies": {"jest": "^29.0.0"}}`),
	)
	v := validators.NewTesting(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	coverage := findCheck(t, report, "Test Coverage")
	assert.Equal(t, domain.StatusPass, coverage.Status)
	details := coverage.Details.(*domain.CoverageDetails)
	assert.Equal(t, 1, details.CodeFiles)
	assert.Equal(t, 1, details.TestedFiles)

	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Test Structure").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Test Naming").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Test Runner").Status)
	assert.Equal(t, domain.StatusPass, report.Status)
}

func TestTesting_NoTestsFail(t *testing.T) {
	scanner := fileSet(
		rec("src/calc.js", "function addNumbers(a, b) { return a + b; }\n"),
		rec("src/format.js", "function formatTotal(n) { return n.toFixed(2); }\n"),
	)
	v := validators.NewTesting(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFail, findCheck(t, report, "Test Coverage").Status)
	assert.Equal(t, domain.StatusFail, findCheck(t, report, "Test Structure").Status)
	assert.Equal(t, domain.StatusFail, report.Status)
}

func TestTesting_VagueDescriptionsFlagged(t *testing.T) {
	vague := "describe('calc', () => {\n  it('works', () => {});\n  it('ok', () => {});\n});\n"
	scanner := fileSet(
		rec("src/calc.js", "function addNumbers(a, b) { return a + b; }\n"),
		rec("src/calc.test.js", vague),
	)
	v := validators.NewTesting(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "Test Naming")
	assert.Equal(t, domain.StatusFail, check.Status)
	details := check.Details.(*domain.RatioDetails)
	assert.Len(t, details.Items, 2)
}

func TestTesting_SingleTestTypeWarns(t *testing.T) {
	records := []domain.FileRecord{rec("src/app.js", "function bootApplication() {}\n")}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		records = append(records, rec("src/"+name+".test.js", calcTest))
	}
	scanner := fileSet(records...)
	v := validators.NewTesting(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWarning, findCheck(t, report, "Test Types").Status)
}

func TestTesting_MixedTestTypesPass(t *testing.T) {
	records := []domain.FileRecord{
		rec("src/app.js", "function bootApplication() {}\n"),
		rec("tests/unit/calc.test.js", calcTest),
		rec("tests/unit/format.test.js", calcTest),
		rec("tests/unit/routes.test.js", calcTest),
		rec("tests/integration/api.test.js", calcTest),
		rec("tests/e2e/checkout.test.js", calcTest),
	}
	scanner := fileSet(records...)
	v := validators.NewTesting(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Test Types").Status)
}

func TestTesting_TDDTasksDetected(t *testing.T) {
	project := t.TempDir()
	dir := filepath.Join(project, "specs", "report-export")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spec.md"), []byte("# Spec\n\n## Overview\n\nExport reports.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.md"),
		[]byte("- [x] Write failing tests for the exporter\n- [ ] Verify all tests pass\n"), 0644))

	scanner := fileSet(rec("src/app.js", "function bootApplication() {}\n"))
	v := validators.NewTesting(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(project)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "TDD Approach").Status)
}

func TestTesting_ToolchainNativeRunner(t *testing.T) {
	scanner := fileSet(
		rec("main.go", "func main() {}\n"),
		rec("main_test.go", "func TestMain(t *testing.T) {}\n"),
		rec("go.mod", "module example.com/app\n"),
	)
	v := validators.NewTesting(scanner, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Test Runner").Status)
}
