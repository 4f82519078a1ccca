package validators

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/analysis"
)

// DefaultSpecDir is the conventional spec directory inside a project.
const DefaultSpecDir = "specs"

// SpecAdherenceValidator matches spec requirements against implementation
// evidence via keyword overlap. It is the only dual-path validator: a spec
// directory and an implementation directory.
type SpecAdherenceValidator struct {
	scanner    domain.ProjectScanner
	thresholds domain.Thresholds
	specDir    string
}

func NewSpecAdherence(scanner domain.ProjectScanner, t domain.Thresholds, specDir string) *SpecAdherenceValidator {
	if specDir == "" {
		specDir = DefaultSpecDir
	}
	return &SpecAdherenceValidator{scanner: scanner, thresholds: t, specDir: specDir}
}

func (v *SpecAdherenceValidator) Key() domain.ValidatorKey { return domain.KeySpecAdherence }

// SpecDirFor returns the conventional spec directory for a project.
func (v *SpecAdherenceValidator) SpecDirFor(projectPath string) string {
	return filepath.Join(projectPath, v.specDir)
}

// Validate uses the conventional specs/ layout inside the project.
func (v *SpecAdherenceValidator) Validate(projectPath string) (*domain.ValidatorReport, error) {
	return v.ValidatePair(v.SpecDirFor(projectPath), projectPath)
}

// ValidatePair analyzes a spec directory against an implementation
// directory. Unlike the single-directory validators it returns an error
// before any analysis when either directory is absent; callers wanting a
// non-throwing contract must pre-validate the paths.
func (v *SpecAdherenceValidator) ValidatePair(specPath, implPath string) (*domain.ValidatorReport, error) {
	if !dirExists(specPath) {
		return nil, fmt.Errorf("spec directory %s does not exist", specPath)
	}
	if !dirExists(implPath) {
		return nil, fmt.Errorf("implementation directory %s does not exist", implPath)
	}

	specs, err := loadSpecs(specPath)
	if err != nil {
		return nil, fmt.Errorf("loading specs from %s: %w", specPath, err)
	}

	files, err := v.scanner.Scan(implPath)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", implPath, err)
	}
	corpus := buildEvidenceCorpus(files)

	checks := []domain.CheckResult{
		v.checkItems("Spec Requirements", collectItems(specs, func(s parsedSpec) []string { return s.Scope }), corpus, true),
		v.checkItems("User Stories", collectItems(specs, func(s parsedSpec) []string { return s.UserStories }), corpus, false),
		v.checkItems("Expected Deliverables", collectItems(specs, func(s parsedSpec) []string { return s.Deliverables }), corpus, false),
		v.checkScopeCreep(specs, corpus),
		v.checkTasks(specs),
	}
	return Aggregate(v.Key(), implPath, checks), nil
}

// parsedSpec holds the extracted sections of one spec directory.
type parsedSpec struct {
	Name         string
	Overview     string
	UserStories  []string
	Scope        []string
	OutOfScope   []string
	Deliverables []string
	TasksTotal   int
	TasksDone    int
}

// sectionHeading matches markdown section headings case-insensitively.
func sectionHeading(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^#{1,3}\s*` + name + `\s*$`)
}

var (
	overviewHeading     = sectionHeading("Overview")
	userStoriesHeading  = sectionHeading("User Stories")
	specScopeHeading    = sectionHeading("Spec Scope")
	outOfScopeHeading   = sectionHeading("Out of Scope")
	deliverablesHeading = sectionHeading("Expected Deliverables")
	anyHeading          = regexp.MustCompile(`(?m)^#{1,3}\s`)
	listItem            = regexp.MustCompile(`(?m)^\s*(?:[-*]|\d+\.)\s+(.+)$`)
	taskCheckbox        = regexp.MustCompile(`(?m)^\s*[-*]\s+\[([ xX])\]`)
)

// extractSection returns the text between a heading and the next heading.
// A missing section yields an empty extraction, never an error.
func extractSection(content string, heading *regexp.Regexp) string {
	loc := heading.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	rest := content[loc[1]:]
	if next := anyHeading.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	return strings.TrimSpace(rest)
}

// extractListItems pulls bullet or numbered items out of a section body.
func extractListItems(section string) []string {
	var items []string
	for _, m := range listItem.FindAllStringSubmatch(section, -1) {
		item := strings.TrimSpace(m[1])
		if item != "" && !strings.HasPrefix(item, "[") {
			items = append(items, item)
		}
	}
	return items
}

// loadSpecs reads every spec directory under specPath. Directories without
// a spec.md are skipped; unreadable files are treated as empty.
func loadSpecs(specPath string) ([]parsedSpec, error) {
	entries, err := os.ReadDir(specPath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var specs []parsedSpec
	for _, name := range names {
		dir := filepath.Join(specPath, name)
		content := readFileOrEmpty(filepath.Join(dir, "spec.md"))
		if content == "" {
			continue
		}

		spec := parsedSpec{
			Name:         name,
			Overview:     extractSection(content, overviewHeading),
			UserStories:  extractListItems(extractSection(content, userStoriesHeading)),
			Scope:        extractListItems(extractSection(content, specScopeHeading)),
			OutOfScope:   extractListItems(extractSection(content, outOfScopeHeading)),
			Deliverables: extractListItems(extractSection(content, deliverablesHeading)),
		}

		tasks := readFileOrEmpty(filepath.Join(dir, "tasks.md"))
		for _, m := range taskCheckbox.FindAllStringSubmatch(tasks, -1) {
			spec.TasksTotal++
			if m[1] != " " {
				spec.TasksDone++
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func readFileOrEmpty(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// buildEvidenceCorpus concatenates implementation text and identifier
// names into one searchable blob.
func buildEvidenceCorpus(files *domain.FileSet) string {
	var b strings.Builder
	for _, f := range files.CodeAndTests() {
		b.WriteString(f.RelPath)
		b.WriteString("\n")
		b.WriteString(f.Content)
		b.WriteString("\n")
		for _, fn := range analysis.ExtractFunctions(f.Content) {
			b.WriteString(fn.Name)
			b.WriteString("\n")
		}
		for _, cls := range analysis.ExtractClasses(f.Content) {
			b.WriteString(cls)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func collectItems(specs []parsedSpec, pick func(parsedSpec) []string) []string {
	var items []string
	for _, s := range specs {
		items = append(items, pick(s)...)
	}
	return items
}

// checkItems performs keyword-overlap evidence search for each item.
// An item with zero matched keywords is missing. failOnMissing controls
// whether any missing item fails the check (requirements) or degrades it
// by ratio (stories, deliverables).
func (v *SpecAdherenceValidator) checkItems(name string, items []string, corpus string, failOnMissing bool) domain.CheckResult {
	if len(items) == 0 {
		return domain.CheckResult{
			Name: name, Status: domain.StatusPass,
			Message: "no items declared",
		}
	}

	details := domain.SpecMatchDetails{Total: len(items)}
	for _, item := range items {
		keywords := analysis.ExtractKeywords(item)
		if len(keywords) == 0 || len(analysis.FindMatches(keywords, corpus)) > 0 {
			details.Matched++
			continue
		}
		details.Missing = append(details.Missing, item)
	}
	details.MissingCount = len(details.Missing)

	if details.MissingCount == 0 {
		return domain.CheckResult{
			Name: name, Status: domain.StatusPass,
			Message: fmt.Sprintf("all %d item(s) have implementation evidence", details.Total),
			Details: &details,
		}
	}

	status := v.thresholds.RatioStatus(float64(details.Matched) / float64(details.Total))
	if failOnMissing {
		status = domain.StatusFail
	}
	details.Hint = fmt.Sprintf("implement or re-scope the %d unmatched item(s)", details.MissingCount)
	return domain.CheckResult{
		Name: name, Status: status,
		Message: fmt.Sprintf("%d of %d item(s) lack implementation evidence", details.MissingCount, details.Total),
		Details: &details,
	}
}

// checkScopeCreep flags implementation evidence matching declared
// out-of-scope items. Always WARNING, never FAIL.
func (v *SpecAdherenceValidator) checkScopeCreep(specs []parsedSpec, corpus string) domain.CheckResult {
	details := domain.ScopeCreepDetails{}
	for _, s := range specs {
		for _, item := range s.OutOfScope {
			keywords := analysis.ExtractKeywords(item)
			if len(keywords) == 0 {
				continue
			}
			// Creep needs stronger evidence than presence: most keywords found.
			matched := analysis.FindMatches(keywords, corpus)
			if float64(len(matched))/float64(len(keywords)) >= 0.75 {
				details.Items = append(details.Items, item)
			}
		}
	}
	if len(details.Items) == 0 {
		return domain.CheckResult{
			Name: "Scope Creep", Status: domain.StatusPass,
			Message: "no out-of-scope implementation evidence",
		}
	}
	details.Hint = "remove or re-scope work on declared out-of-scope items"
	return domain.CheckResult{
		Name: "Scope Creep", Status: domain.StatusWarning,
		Message: fmt.Sprintf("%d out-of-scope item(s) show implementation evidence", len(details.Items)),
		Details: &details,
	}
}

func (v *SpecAdherenceValidator) checkTasks(specs []parsedSpec) domain.CheckResult {
	var total, done int
	for _, s := range specs {
		total += s.TasksTotal
		done += s.TasksDone
	}
	if total == 0 {
		return domain.CheckResult{
			Name: "Task Completion", Status: domain.StatusPass,
			Message: "no task lists declared",
		}
	}

	ratio := float64(done) / float64(total)
	status := v.thresholds.RatioStatus(ratio)
	details := domain.RatioDetails{Ratio: ratio, Threshold: v.thresholds.PassRatio}
	if status != domain.StatusPass {
		details.Hint = "complete or prune the open tasks in tasks.md"
	}
	return domain.CheckResult{
		Name: "Task Completion", Status: status,
		Message: fmt.Sprintf("%d of %d task(s) complete", done, total),
		Details: &details,
	}
}
