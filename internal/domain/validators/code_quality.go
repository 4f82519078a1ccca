package validators

import (
	"fmt"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/analysis"
)

// CodeQualityValidator grades maintainability: file size, function
// complexity, duplication, naming, and comment quality.
type CodeQualityValidator struct {
	scanner    domain.ProjectScanner
	thresholds domain.Thresholds
}

func NewCodeQuality(scanner domain.ProjectScanner, t domain.Thresholds) *CodeQualityValidator {
	return &CodeQualityValidator{scanner: scanner, thresholds: t}
}

func (v *CodeQualityValidator) Key() domain.ValidatorKey { return domain.KeyCodeQuality }

func (v *CodeQualityValidator) Validate(projectPath string) (*domain.ValidatorReport, error) {
	if !dirExists(projectPath) {
		return missingPathReport(v.Key(), projectPath), nil
	}
	files, err := v.scanner.Scan(projectPath)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", projectPath, err)
	}

	checks := []domain.CheckResult{
		v.checkFileSize(files),
		v.checkComplexity(files),
		v.checkDuplication(files),
		v.checkNaming(files),
		v.checkCommentQuality(files),
	}
	return Aggregate(v.Key(), projectPath, checks), nil
}

// sizeLimit returns the line limit for a file. Test, configuration, and
// documentation files get higher allowances; comment-heavy code files get
// double the code limit.
func (v *CodeQualityValidator) sizeLimit(f domain.FileRecord) (limit int, exception string) {
	t := v.thresholds
	switch f.Category {
	case domain.CategoryTest:
		return t.MaxTestFileLines, ""
	case domain.CategoryDocumentation:
		return t.MaxDocFileLines, ""
	case domain.CategoryConfiguration:
		return t.MaxConfigFileLines, ""
	}
	if analysis.CommentRatio(f.Content) >= t.CommentHeavyRatio {
		return t.MaxCodeFileLines * 2, "comment-heavy"
	}
	return t.MaxCodeFileLines, ""
}

func (v *CodeQualityValidator) checkFileSize(files *domain.FileSet) domain.CheckResult {
	details := domain.FileSizeDetails{}
	for _, f := range files.Files {
		if f.Category == domain.CategoryOther {
			continue
		}
		limit, exception := v.sizeLimit(f)
		if f.Lines > limit {
			details.Oversized = append(details.Oversized, domain.FileSizeEntry{
				File: f.RelPath, Lines: f.Lines, Limit: limit, Exception: exception,
			})
		}
	}

	if len(details.Oversized) == 0 {
		return domain.CheckResult{
			Name: "File Size", Status: domain.StatusPass,
			Message: "all files within size limits",
		}
	}
	details.Hint = "split oversized files into focused modules"
	return domain.CheckResult{
		Name: "File Size", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d file(s) exceed their size limit", len(details.Oversized)),
		Details: &details,
	}
}

func (v *CodeQualityValidator) checkComplexity(files *domain.FileSet) domain.CheckResult {
	limit := v.thresholds.MaxComplexity
	details := domain.ComplexityDetails{Limit: limit}
	total := 0
	for _, f := range files.ByCategory(domain.CategoryCode) {
		for _, fn := range analysis.ExtractFunctions(f.Content) {
			total++
			if c := analysis.CyclomaticComplexity(fn.Body); c > limit {
				details.Functions = append(details.Functions, domain.ComplexityEntry{
					File: f.RelPath, Function: fn.Name, Complexity: c,
				})
			}
		}
	}

	if len(details.Functions) == 0 {
		return domain.CheckResult{
			Name: "Function Complexity", Status: domain.StatusPass,
			Message: fmt.Sprintf("all %d functions within complexity limit %d", total, limit),
		}
	}

	status := domain.StatusFail
	if total > 0 {
		compliant := float64(total-len(details.Functions)) / float64(total)
		if compliant >= v.thresholds.PassRatio {
			status = domain.StatusWarning
		}
	}
	details.Hint = "break complex functions into smaller units"
	return domain.CheckResult{
		Name: "Function Complexity", Status: status,
		Message: fmt.Sprintf("%d of %d functions exceed complexity limit %d", len(details.Functions), total, limit),
		Details: &details,
	}
}

func (v *CodeQualityValidator) checkDuplication(files *domain.FileSet) domain.CheckResult {
	var bodies []analysis.NamedBody
	for _, f := range files.ByCategory(domain.CategoryCode) {
		for _, fn := range analysis.ExtractFunctions(f.Content) {
			bodies = append(bodies, analysis.NamedBody{
				Name: f.RelPath + ":" + fn.Name,
				Body: fn.Body,
			})
		}
	}

	groups := analysis.FindDuplicates(bodies, v.thresholds.DuplicateSimilarity)
	if len(groups) == 0 {
		return domain.CheckResult{
			Name: "Code Duplication", Status: domain.StatusPass,
			Message: "no near-duplicate functions found",
		}
	}

	details := domain.DuplicationDetails{}
	for _, g := range groups {
		dg := domain.DuplicateGroup{Similarity: v.thresholds.DuplicateSimilarity}
		for _, nb := range g {
			dg.Functions = append(dg.Functions, nb.Name)
		}
		details.Groups = append(details.Groups, dg)
	}
	details.Hint = "extract duplicated logic into shared helpers"

	status := domain.StatusWarning
	if len(groups) >= 3 {
		status = domain.StatusFail
	}
	return domain.CheckResult{
		Name: "Code Duplication", Status: status,
		Message: fmt.Sprintf("%d group(s) of near-duplicate functions", len(groups)),
		Details: &details,
	}
}

// loopVars are conventional short names exempt from the length heuristic.
var loopVars = map[string]bool{
	"i": true, "j": true, "k": true, "n": true, "x": true, "y": true,
	"id": true, "ok": true, "err": true, "fs": true, "db": true,
}

func (v *CodeQualityValidator) checkNaming(files *domain.FileSet) domain.CheckResult {
	details := domain.NamingDetails{}
	total := 0
	for _, f := range files.ByCategory(domain.CategoryCode) {
		for _, fn := range analysis.ExtractFunctions(f.Content) {
			total++
			if reason := namingProblem(fn.Name); reason != "" {
				details.Violations = append(details.Violations, domain.NamingEntry{
					File: f.RelPath, Identifier: fn.Name, Reason: reason,
				})
			}
		}
	}

	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "Naming Conventions", Status: domain.StatusPass,
			Message: fmt.Sprintf("all %d function names follow conventions", total),
		}
	}

	status := domain.StatusWarning
	if total > 0 && float64(total-len(details.Violations))/float64(total) < v.thresholds.WarnRatio {
		status = domain.StatusFail
	}
	details.Hint = "use descriptive multi-word identifiers"
	return domain.CheckResult{
		Name: "Naming Conventions", Status: status,
		Message: fmt.Sprintf("%d of %d function names break conventions", len(details.Violations), total),
		Details: &details,
	}
}

func (v *CodeQualityValidator) checkCommentQuality(files *domain.FileSet) domain.CheckResult {
	t := v.thresholds
	var totalCode, totalComments, totalFns, documentedFns int
	details := domain.CommentDetails{}

	for _, f := range files.ByCategory(domain.CategoryCode) {
		_, code, comments := analysis.CountLines(f.Content)
		totalCode += code
		totalComments += comments
		if code > 0 && float64(comments)/float64(code+comments) < t.MinCommentRatio/2 {
			details.SparseFiles = append(details.SparseFiles, f.RelPath)
		}
		for _, fn := range analysis.ExtractFunctions(f.Content) {
			totalFns++
			if fn.Documented {
				documentedFns++
			}
		}
	}

	if totalCode == 0 {
		return domain.CheckResult{
			Name: "Comment Quality", Status: domain.StatusPass,
			Message: "no code lines to evaluate",
		}
	}

	details.CommentRatio = float64(totalComments) / float64(totalCode+totalComments)
	details.TotalFunctions = totalFns
	if totalFns > 0 {
		details.DocumentedFns = float64(documentedFns) / float64(totalFns)
	}

	ratioOK := details.CommentRatio >= t.MinCommentRatio
	docsOK := totalFns == 0 || details.DocumentedFns >= t.MinDocumentedFns

	var status domain.Status
	switch {
	case ratioOK && docsOK:
		status = domain.StatusPass
	case ratioOK || docsOK:
		status = domain.StatusWarning
		details.Hint = "document exported functions and sparse files"
	default:
		status = domain.StatusFail
		details.Hint = "add comments: both density and function docs are low"
	}
	return domain.CheckResult{
		Name: "Comment Quality", Status: status,
		Message: fmt.Sprintf("comment ratio %.0f%%, %.0f%% of functions documented",
			details.CommentRatio*100, details.DocumentedFns*100),
		Details: &details,
	}
}
