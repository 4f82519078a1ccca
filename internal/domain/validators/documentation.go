package validators

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/analysis"
)

// DocumentationValidator grades documentation completeness across the
// README, API comments, in-code docs, setup instructions, spec files, and
// overall documentation structure.
type DocumentationValidator struct {
	scanner    domain.ProjectScanner
	thresholds domain.Thresholds
	specDir    string
}

func NewDocumentation(scanner domain.ProjectScanner, t domain.Thresholds, specDir string) *DocumentationValidator {
	if specDir == "" {
		specDir = DefaultSpecDir
	}
	return &DocumentationValidator{scanner: scanner, thresholds: t, specDir: specDir}
}

func (v *DocumentationValidator) Key() domain.ValidatorKey { return domain.KeyDocumentation }

func (v *DocumentationValidator) Validate(projectPath string) (*domain.ValidatorReport, error) {
	if !dirExists(projectPath) {
		return missingPathReport(v.Key(), projectPath), nil
	}
	files, err := v.scanner.Scan(projectPath)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", projectPath, err)
	}

	checks := []domain.CheckResult{
		v.checkReadme(files),
		v.checkAPIDocs(files),
		v.checkCodeComments(files),
		v.checkSetupInstructions(files),
		v.checkSpecDocs(projectPath),
		v.checkStructure(files),
	}
	return Aggregate(v.Key(), projectPath, checks), nil
}

// readmeSections are required README sections with completeness weights.
var readmeSections = []struct {
	Name    string
	Pattern *regexp.Regexp
	Weight  float64
}{
	{"title", regexp.MustCompile(`(?m)^#\s+\S`), 0.15},
	{"description", regexp.MustCompile(`(?im)^(?:#{1,3}\s*(?:description|about|overview)\b|\S.{40,})`), 0.20},
	{"installation", regexp.MustCompile(`(?im)^#{1,3}\s*(?:installation|install|getting started|setup)\b`), 0.25},
	{"usage", regexp.MustCompile(`(?im)^#{1,3}\s*(?:usage|quick start|examples?)\b`), 0.25},
	{"license", regexp.MustCompile(`(?im)^#{1,3}\s*licen[cs]e\b`), 0.15},
}

func findReadme(files *domain.FileSet) *domain.FileRecord {
	for i, f := range files.Files {
		if strings.EqualFold(filepath.Base(f.RelPath), "readme.md") && filepath.Dir(f.RelPath) == "." {
			return &files.Files[i]
		}
	}
	return nil
}

func (v *DocumentationValidator) checkReadme(files *domain.FileSet) domain.CheckResult {
	readme := findReadme(files)
	if readme == nil {
		det := domain.RatioDetails{Threshold: v.thresholds.PassRatio}
		det.Hint = "add a README.md with installation and usage sections"
		return domain.CheckResult{
			Name: "README Completeness", Status: domain.StatusFail,
			Message: "no README.md found",
			Details: &det,
		}
	}

	details := domain.RatioDetails{Threshold: v.thresholds.PassRatio}
	var score float64
	for _, s := range readmeSections {
		if s.Pattern.MatchString(readme.Content) {
			score += s.Weight
		} else {
			details.Items = append(details.Items, "missing: "+s.Name)
		}
	}
	details.Ratio = score

	status := v.thresholds.RatioStatus(score)
	if status != domain.StatusPass {
		details.Hint = "fill in the missing README sections"
	}
	return domain.CheckResult{
		Name: "README Completeness", Status: status,
		Message: fmt.Sprintf("README %.0f%% complete", score*100),
		Details: &details,
	}
}

// checkAPIDocs verifies each route registration has a comment within the
// preceding window of lines.
func (v *DocumentationValidator) checkAPIDocs(files *domain.FileSet) domain.CheckResult {
	window := v.thresholds.APIDocWindow
	var total, documented int
	details := domain.EvidenceDetails{}

	for _, f := range files.ByCategory(domain.CategoryCode) {
		lines := strings.Split(f.Content, "\n")
		for _, route := range analysis.ExtractRoutes(f.Content) {
			total++
			if hasCommentBefore(lines, route.Line-1, window) {
				documented++
			} else {
				details.Violations = append(details.Violations, domain.Violation{
					File: f.RelPath, Line: route.Line, Excerpt: route.Text,
				})
			}
		}
	}

	if total == 0 {
		return domain.CheckResult{
			Name: "API Documentation", Status: domain.StatusPass,
			Message: "no routes to document",
		}
	}

	ratio := float64(documented) / float64(total)
	status := v.thresholds.RatioStatus(ratio)
	if status != domain.StatusPass {
		details.Hint = "document each route with a preceding comment"
	}
	return domain.CheckResult{
		Name: "API Documentation", Status: status,
		Message: fmt.Sprintf("%d of %d route(s) documented", documented, total),
		Details: &details,
	}
}

// hasCommentBefore looks back up to window lines for a comment line.
func hasCommentBefore(lines []string, idx, window int) bool {
	for i := idx - 1; i >= 0 && i >= idx-window; i-- {
		if analysis.IsCommentLine(lines[i]) {
			return true
		}
	}
	return false
}

func (v *DocumentationValidator) checkCodeComments(files *domain.FileSet) domain.CheckResult {
	t := v.thresholds
	code := files.ByCategory(domain.CategoryCode)
	if len(code) == 0 {
		return domain.CheckResult{
			Name: "Code Comments", Status: domain.StatusPass,
			Message: "no code files to inspect",
		}
	}

	details := domain.CommentDetails{}
	var okFiles, totalFns, documentedFns int
	for _, f := range code {
		if analysis.CommentRatio(f.Content) >= t.MinCommentRatio {
			okFiles++
		} else {
			details.SparseFiles = append(details.SparseFiles, f.RelPath)
		}
		for _, fn := range analysis.ExtractFunctions(f.Content) {
			totalFns++
			if fn.Documented {
				documentedFns++
			}
		}
	}
	details.CommentRatio = float64(okFiles) / float64(len(code))
	details.TotalFunctions = totalFns
	if totalFns > 0 {
		details.DocumentedFns = float64(documentedFns) / float64(totalFns)
	}

	ratio := details.CommentRatio
	if totalFns > 0 {
		ratio = (details.CommentRatio + details.DocumentedFns) / 2
	}
	status := v.thresholds.RatioStatus(ratio)
	if status != domain.StatusPass {
		details.Hint = "comment sparse files and document functions"
	}
	return domain.CheckResult{
		Name: "Code Comments", Status: status,
		Message: fmt.Sprintf("%d of %d file(s) meet the comment ratio, %.0f%% of functions documented",
			okFiles, len(code), details.DocumentedFns*100),
		Details: &details,
	}
}

var setupKeywords = []string{"install", "npm install", "go install", "pip install", "usage", "run"}

func (v *DocumentationValidator) checkSetupInstructions(files *domain.FileSet) domain.CheckResult {
	readme := findReadme(files)
	details := domain.PresenceDetails{}
	if readme != nil {
		lower := strings.ToLower(readme.Content)
		for _, kw := range setupKeywords {
			if strings.Contains(lower, kw) {
				details.Indicators = appendUnique(details.Indicators, kw)
			}
		}
	}

	details.Found = len(details.Indicators) >= 2
	if details.Found {
		return domain.CheckResult{
			Name: "Setup Instructions", Status: domain.StatusPass,
			Message: "install and usage instructions present",
			Details: &details,
		}
	}
	details.Hint = "document how to install and run the project"
	return domain.CheckResult{
		Name: "Setup Instructions", Status: domain.StatusWarning,
		Message: "setup instructions are missing or incomplete",
		Details: &details,
	}
}

// requiredSpecFiles must exist in every spec directory.
var requiredSpecFiles = []string{"spec.md", "tasks.md", "status.md", filepath.Join("design", "technical-spec.md")}

// requiredSpecHeadings must appear in every spec.md.
var requiredSpecHeadings = []*regexp.Regexp{
	overviewHeading, specScopeHeading, deliverablesHeading,
}

func (v *DocumentationValidator) checkSpecDocs(projectPath string) domain.CheckResult {
	specPath := filepath.Join(projectPath, v.specDir)
	specs, err := loadSpecs(specPath)
	if err != nil || len(specs) == 0 {
		return domain.CheckResult{
			Name: "Spec Documentation", Status: domain.StatusPass,
			Message: "no spec directories to inspect",
		}
	}

	details := domain.EvidenceDetails{}
	for _, s := range specs {
		dir := filepath.Join(specPath, s.Name)
		for _, req := range requiredSpecFiles {
			if readFileOrEmpty(filepath.Join(dir, req)) == "" {
				details.Violations = append(details.Violations, domain.Violation{
					File: filepath.Join(v.specDir, s.Name), Excerpt: "missing " + req,
				})
			}
		}
		content := readFileOrEmpty(filepath.Join(dir, "spec.md"))
		for _, h := range requiredSpecHeadings {
			if !h.MatchString(content) {
				details.Violations = append(details.Violations, domain.Violation{
					File: filepath.Join(v.specDir, s.Name, "spec.md"), Excerpt: "missing section " + h.String(),
				})
			}
		}
	}

	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "Spec Documentation", Status: domain.StatusPass,
			Message: fmt.Sprintf("all %d spec(s) carry their required files and sections", len(specs)),
		}
	}
	details.Hint = "complete the spec directories: every spec needs its files and sections"
	return domain.CheckResult{
		Name: "Spec Documentation", Status: domain.StatusWarning,
		Message: fmt.Sprintf("%d spec documentation gap(s)", len(details.Violations)),
		Details: &details,
	}
}

func (v *DocumentationValidator) checkStructure(files *domain.FileSet) domain.CheckResult {
	docs := files.ByCategory(domain.CategoryDocumentation)
	details := domain.CountDetails{Count: len(docs), Threshold: v.thresholds.DocsDirFileCount}

	var scattered int
	hasDocsDir := false
	for _, f := range docs {
		top := strings.Split(filepath.ToSlash(f.RelPath), "/")[0]
		if top == "docs" || top == "doc" {
			hasDocsDir = true
			continue
		}
		if filepath.Dir(f.RelPath) == "." {
			scattered++
		}
		if f.Lines < v.thresholds.OrphanDocMinLines && !strings.EqualFold(filepath.Base(f.RelPath), "readme.md") {
			details.Items = append(details.Items, "orphaned: "+f.RelPath)
		}
	}

	switch {
	case len(details.Items) > 0:
		details.Hint = "merge or expand suspiciously short documents"
		return domain.CheckResult{
			Name: "Documentation Structure", Status: domain.StatusWarning,
			Message: fmt.Sprintf("%d orphaned document(s) found", len(details.Items)),
			Details: &details,
		}
	case !hasDocsDir && scattered > v.thresholds.DocsDirFileCount:
		details.Hint = "move scattered documents into a docs/ directory"
		return domain.CheckResult{
			Name: "Documentation Structure", Status: domain.StatusWarning,
			Message: fmt.Sprintf("%d top-level document(s) without a docs/ directory", scattered),
			Details: &details,
		}
	default:
		return domain.CheckResult{
			Name: "Documentation Structure", Status: domain.StatusPass,
			Message: "documentation layout is tidy",
		}
	}
}
