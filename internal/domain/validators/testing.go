package validators

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/analysis"
)

// TestingValidator grades testing completeness: coverage by naming
// convention, structure, TDD discipline, type distribution, naming, and
// runner configuration.
type TestingValidator struct {
	scanner    domain.ProjectScanner
	thresholds domain.Thresholds
	specDir    string
}

func NewTesting(scanner domain.ProjectScanner, t domain.Thresholds, specDir string) *TestingValidator {
	if specDir == "" {
		specDir = DefaultSpecDir
	}
	return &TestingValidator{scanner: scanner, thresholds: t, specDir: specDir}
}

func (v *TestingValidator) Key() domain.ValidatorKey { return domain.KeyTesting }

func (v *TestingValidator) Validate(projectPath string) (*domain.ValidatorReport, error) {
	if !dirExists(projectPath) {
		return missingPathReport(v.Key(), projectPath), nil
	}
	files, err := v.scanner.Scan(projectPath)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", projectPath, err)
	}

	checks := []domain.CheckResult{
		v.checkCoverage(files),
		v.checkStructure(files),
		v.checkTDD(projectPath),
		v.checkTestTypes(files),
		v.checkTestNaming(files),
		v.checkTestRunner(files),
	}
	return Aggregate(v.Key(), projectPath, checks), nil
}

// testBasename strips test markers from a filename to find the code file
// it covers: component.test.js -> component, foo_test.go -> foo.
func testBasename(path string) string {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	for _, marker := range []string{".test", ".spec", "_test"} {
		name = strings.TrimSuffix(name, marker)
	}
	name = strings.TrimPrefix(name, "test_")
	name = strings.TrimPrefix(name, "test-")
	return name
}

func (v *TestingValidator) checkCoverage(files *domain.FileSet) domain.CheckResult {
	tested := make(map[string]bool)
	for _, f := range files.ByCategory(domain.CategoryTest) {
		tested[testBasename(f.RelPath)] = true
	}

	code := files.ByCategory(domain.CategoryCode)
	if len(code) == 0 {
		return domain.CheckResult{
			Name: "Test Coverage", Status: domain.StatusPass,
			Message: "no code files to cover",
		}
	}

	details := domain.CoverageDetails{CodeFiles: len(code)}
	for _, f := range code {
		base := strings.ToLower(filepath.Base(f.RelPath))
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if tested[base] {
			details.TestedFiles++
		} else {
			details.Untested = append(details.Untested, f.RelPath)
		}
	}
	details.Ratio = float64(details.TestedFiles) / float64(details.CodeFiles)

	status := v.thresholds.RatioStatus(details.Ratio)
	if status != domain.StatusPass {
		details.Hint = "add test files matching code file basenames"
	}
	return domain.CheckResult{
		Name: "Test Coverage", Status: status,
		Message: fmt.Sprintf("%d of %d code file(s) have a matching test file", details.TestedFiles, details.CodeFiles),
		Details: &details,
	}
}

// largeTestFileLines is the size past which setup/teardown is expected.
const largeTestFileLines = 100

func (v *TestingValidator) checkStructure(files *domain.FileSet) domain.CheckResult {
	tests := files.ByCategory(domain.CategoryTest)
	if len(tests) == 0 {
		return domain.CheckResult{
			Name: "Test Structure", Status: domain.StatusFail,
			Message: "no test files found",
		}
	}

	details := domain.RatioDetails{Threshold: v.thresholds.PassRatio}
	structured := 0
	for _, f := range tests {
		hasBlocks := len(analysis.FindPattern(f.Content, analysis.TestBlockPatterns)) > 0
		needsSetup := f.Lines > largeTestFileLines
		hasSetup := len(analysis.FindPattern(f.Content, analysis.SetupTeardownPatterns)) > 0
		if hasBlocks && (!needsSetup || hasSetup) {
			structured++
		} else {
			details.Items = append(details.Items, f.RelPath)
		}
	}
	details.Ratio = float64(structured) / float64(len(tests))

	status := v.thresholds.RatioStatus(details.Ratio)
	if status != domain.StatusPass {
		details.Hint = "group tests into suites and add setup/teardown to large files"
	}
	return domain.CheckResult{
		Name: "Test Structure", Status: status,
		Message: fmt.Sprintf("%d of %d test file(s) are well structured", structured, len(tests)),
		Details: &details,
	}
}

var tddTaskPattern = regexp.MustCompile(`(?i)(?:write|add|create)\s+(?:failing\s+)?tests?\b|test[- ]first|tdd`)
var verifyTaskPattern = regexp.MustCompile(`(?i)(?:verify|ensure|confirm|run)\s+(?:all\s+)?tests?\s+(?:pass|green)`)

// checkTDD inspects spec task lists for test-first discipline: tasks that
// write tests before implementation and verify they pass.
func (v *TestingValidator) checkTDD(projectPath string) domain.CheckResult {
	specPath := filepath.Join(projectPath, v.specDir)
	specs, err := loadSpecs(specPath)
	if err != nil || len(specs) == 0 {
		return domain.CheckResult{
			Name: "TDD Approach", Status: domain.StatusPass,
			Message: "no spec task lists to inspect",
		}
	}

	details := domain.PresenceDetails{}
	for _, s := range specs {
		tasks := readFileOrEmpty(filepath.Join(specPath, s.Name, "tasks.md"))
		if tddTaskPattern.MatchString(tasks) {
			details.Found = true
			details.Indicators = appendUnique(details.Indicators, s.Name+": test-first tasks")
		}
		if verifyTaskPattern.MatchString(tasks) {
			details.Indicators = appendUnique(details.Indicators, s.Name+": verify-tests task")
		}
	}

	if details.Found {
		return domain.CheckResult{
			Name: "TDD Approach", Status: domain.StatusPass,
			Message: "spec tasks include test-first steps",
			Details: &details,
		}
	}
	details.Hint = "add 'write tests' and 'verify tests pass' tasks to specs"
	return domain.CheckResult{
		Name: "TDD Approach", Status: domain.StatusWarning,
		Message: "spec task lists do not mention writing tests first",
		Details: &details,
	}
}

// classifyTestType buckets a test file by path and name keywords.
func classifyTestType(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "e2e") || strings.Contains(lower, "end-to-end"):
		return "e2e"
	case strings.Contains(lower, "integration") || strings.Contains(lower, "/it/"):
		return "integration"
	default:
		return "unit"
	}
}

func (v *TestingValidator) checkTestTypes(files *domain.FileSet) domain.CheckResult {
	tests := files.ByCategory(domain.CategoryTest)
	if len(tests) < v.thresholds.MinTestsForTypes {
		return domain.CheckResult{
			Name: "Test Types", Status: domain.StatusPass,
			Message: fmt.Sprintf("fewer than %d test files, distribution not checked", v.thresholds.MinTestsForTypes),
		}
	}

	byType := make(map[string]int)
	for _, f := range tests {
		byType[classifyTestType(f.RelPath)]++
	}

	details := domain.CountDetails{Count: len(byType), Threshold: 2}
	for typ, n := range byType {
		details.Items = append(details.Items, fmt.Sprintf("%s: %d", typ, n))
	}

	if len(byType) >= 2 {
		return domain.CheckResult{
			Name: "Test Types", Status: domain.StatusPass,
			Message: fmt.Sprintf("tests span %d type(s)", len(byType)),
			Details: &details,
		}
	}
	details.Hint = "add integration or end-to-end tests alongside unit tests"
	return domain.CheckResult{
		Name: "Test Types", Status: domain.StatusWarning,
		Message: "all tests are the same type",
		Details: &details,
	}
}

var testDescription = regexp.MustCompile(`\b(?:it|test)\s*\(\s*["'](.{0,80}?)["']`)

// minTestDescriptionLength is the shortest acceptable test description.
const minTestDescriptionLength = 10

func (v *TestingValidator) checkTestNaming(files *domain.FileSet) domain.CheckResult {
	tests := files.ByCategory(domain.CategoryTest)
	if len(tests) == 0 {
		return domain.CheckResult{
			Name: "Test Naming", Status: domain.StatusWarning,
			Message: "no test files to inspect",
		}
	}

	details := domain.RatioDetails{Threshold: v.thresholds.PassRatio}
	good := 0
	total := 0
	for _, f := range tests {
		for _, m := range testDescription.FindAllStringSubmatch(f.Content, -1) {
			total++
			if len(m[1]) >= minTestDescriptionLength {
				good++
			} else {
				details.Items = append(details.Items, fmt.Sprintf("%s: %q", f.RelPath, m[1]))
			}
		}
	}
	if total == 0 {
		return domain.CheckResult{
			Name: "Test Naming", Status: domain.StatusPass,
			Message: "no inline test descriptions to inspect",
		}
	}

	details.Ratio = float64(good) / float64(total)
	status := v.thresholds.RatioStatus(details.Ratio)
	if status != domain.StatusPass {
		details.Hint = "describe behavior in test names, not abbreviations"
	}
	return domain.CheckResult{
		Name: "Test Naming", Status: status,
		Message: fmt.Sprintf("%d of %d test description(s) are descriptive", good, total),
		Details: &details,
	}
}

// testFrameworks are recognized manifest dependencies, mapped to their
// expected config files.
var testFrameworks = map[string][]string{
	"jest":    {"jest.config.js", "jest.config.ts", "jest.config.json"},
	"vitest":  {"vitest.config.js", "vitest.config.ts"},
	"mocha":   {".mocharc.json", ".mocharc.yml", ".mocharc.js"},
	"jasmine": {"jasmine.json"},
	"ava":     {"ava.config.js"},
}

func (v *TestingValidator) checkTestRunner(files *domain.FileSet) domain.CheckResult {
	var manifest struct {
		Scripts         map[string]string `json:"scripts"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	found := false
	for _, f := range files.Files {
		if filepath.Base(f.RelPath) == "package.json" && filepath.Dir(f.RelPath) == "." {
			if err := json.Unmarshal([]byte(f.Content), &manifest); err == nil {
				found = true
			}
			break
		}
	}
	if !found {
		// Go and Python projects carry their runner in the toolchain.
		for _, f := range files.Files {
			base := filepath.Base(f.RelPath)
			if base == "go.mod" || base == "pyproject.toml" || base == "setup.py" {
				return domain.CheckResult{
					Name: "Test Runner", Status: domain.StatusPass,
					Message: "toolchain-native test runner",
				}
			}
		}
		return domain.CheckResult{
			Name: "Test Runner", Status: domain.StatusWarning,
			Message: "no manifest declaring a test runner",
		}
	}

	details := domain.PresenceDetails{}
	if _, ok := manifest.Scripts["test"]; ok {
		details.Indicators = append(details.Indicators, "scripts.test")
	}
	framework := ""
	for name := range testFrameworks {
		if _, ok := manifest.Dependencies[name]; ok {
			framework = name
		}
		if _, ok := manifest.DevDependencies[name]; ok {
			framework = name
		}
	}
	if framework != "" {
		details.Indicators = append(details.Indicators, framework)
		for _, f := range files.Files {
			for _, cfg := range testFrameworks[framework] {
				if filepath.Base(f.RelPath) == cfg {
					details.Indicators = append(details.Indicators, cfg)
				}
			}
		}
	}

	details.Found = len(details.Indicators) >= 2
	if details.Found {
		return domain.CheckResult{
			Name: "Test Runner", Status: domain.StatusPass,
			Message: fmt.Sprintf("test runner configured (%s)", strings.Join(details.Indicators, ", ")),
			Details: &details,
		}
	}
	details.Hint = "declare a test script and a test framework dependency"
	return domain.CheckResult{
		Name: "Test Runner", Status: domain.StatusWarning,
		Message: "manifest does not fully configure a test runner",
		Details: &details,
	}
}
