package analysis

import (
	"regexp"
	"strings"
)

// Function is one extracted function: name, starting line (1-based), an
// approximate body, and whether a comment immediately precedes it.
type Function struct {
	Name       string
	Line       int
	Body       string
	Documented bool
}

// functionHeaders match function declarations across the supported
// languages. Line-based, so nested and inline declarations may be missed;
// approximate by design.
var functionHeaders = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+(\w+)\s*\(`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?(?:function\b|\([^)]*\)\s*=>|\w+\s*=>)`),
	regexp.MustCompile(`^\s*def\s+(\w+)\s*[\(:]?`),
	regexp.MustCompile(`^func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(`),
	regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?[\w<>\[\],\s]+?\s(\w+)\s*\([^)]*\)\s*\{`),
}

// maxBodyLines caps how far a body extends when no following declaration
// terminates it.
const maxBodyLines = 200

// ExtractFunctions finds function declarations in content. A function's
// body runs until the next declaration at the same or lower indent, capped
// at maxBodyLines.
func ExtractFunctions(content string) []Function {
	lines := strings.Split(content, "\n")

	var starts []int
	var names []string
	for i, line := range lines {
		if name := matchHeader(line); name != "" {
			starts = append(starts, i)
			names = append(names, name)
		}
	}

	var fns []Function
	for idx, start := range starts {
		end := len(lines)
		if idx+1 < len(starts) {
			end = starts[idx+1]
		}
		if end-start > maxBodyLines {
			end = start + maxBodyLines
		}

		fns = append(fns, Function{
			Name:       names[idx],
			Line:       start + 1,
			Body:       strings.Join(lines[start:end], "\n"),
			Documented: precededByComment(lines, start),
		})
	}
	return fns
}

func matchHeader(line string) string {
	for _, p := range functionHeaders {
		if m := p.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func precededByComment(lines []string, idx int) bool {
	for i := idx - 1; i >= 0 && i >= idx-2; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		return IsCommentLine(trimmed)
	}
	return false
}

// classPatterns match class-like declarations.
var classPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:export\s+)?(?:abstract\s+)?class\s+(\w+)`),
	regexp.MustCompile(`^type\s+(\w+)\s+struct\b`),
}

// ExtractClasses returns declared class/struct names.
func ExtractClasses(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		for _, p := range classPatterns {
			if m := p.FindStringSubmatch(line); m != nil {
				out = append(out, m[1])
			}
		}
	}
	return out
}

// RoutePatterns match HTTP route registrations.
var RoutePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:app|router|r|server)\.(?:get|post|put|delete|patch|all|use)\s*\(\s*["'\x60]`),
	regexp.MustCompile(`\bhttp\.HandleFunc\s*\(`),
	regexp.MustCompile(`@(?:Get|Post|Put|Delete|Patch|Request)Mapping`),
	regexp.MustCompile(`@(?:app|router)\.(?:get|post|put|delete|patch)\s*\(`),
}

// ExtractRoutes returns matches for route registrations.
func ExtractRoutes(content string) []Match {
	return FindPattern(content, RoutePatterns)
}

// TestBlockPatterns match test grouping/case declarations.
var TestBlockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:describe|context|suite)\s*\(`),
	regexp.MustCompile(`\b(?:it|test)\s*\(`),
	regexp.MustCompile(`^func Test\w+\s*\(`),
	regexp.MustCompile(`^\s*def test_\w+`),
}

// SetupTeardownPatterns match test setup/teardown hooks.
var SetupTeardownPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:beforeEach|beforeAll|afterEach|afterAll|setUp|tearDown)\s*\(`),
	regexp.MustCompile(`\bt\.Cleanup\s*\(`),
	regexp.MustCompile(`\bTestMain\s*\(`),
}
