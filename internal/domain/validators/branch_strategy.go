package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/specguard/specguard/internal/domain"
)

// BranchStrategyValidator checks branch and commit hygiene through the
// read-only GitInspector collaborator. It never mutates the repository.
type BranchStrategyValidator struct {
	git        domain.GitInspector
	thresholds domain.Thresholds
	specDir    string
	now        func() time.Time
}

func NewBranchStrategy(git domain.GitInspector, t domain.Thresholds, specDir string) *BranchStrategyValidator {
	if specDir == "" {
		specDir = DefaultSpecDir
	}
	return &BranchStrategyValidator{git: git, thresholds: t, specDir: specDir, now: time.Now}
}

func (v *BranchStrategyValidator) Key() domain.ValidatorKey { return domain.KeyBranchStrategy }

// commitLogDepth bounds how much history the message checks inspect.
const commitLogDepth = 20

var (
	mainBranches      = map[string]bool{"main": true, "master": true, "develop": true}
	branchNamePattern = regexp.MustCompile(`^(?:feature|fix|bugfix|hotfix|chore|release|docs|spec)/[a-z0-9][a-z0-9._-]*$`)
	conventionalCommit = regexp.MustCompile(`^(?:feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(?:\([\w./-]+\))?!?: .+`)
	mergeCommit       = regexp.MustCompile(`^Merge (?:branch|pull request|remote)`)
)

func (v *BranchStrategyValidator) Validate(projectPath string) (*domain.ValidatorReport, error) {
	if !dirExists(projectPath) {
		return missingPathReport(v.Key(), projectPath), nil
	}
	if !v.git.IsRepo(projectPath) {
		return &domain.ValidatorReport{
			Validator: string(v.Key()),
			Path:      projectPath,
			Status:    domain.StatusFail,
			Checks: []domain.CheckResult{{
				Name:    "Git Repository",
				Status:  domain.StatusFail,
				Message: fmt.Sprintf("%s is not a git repository", projectPath),
			}},
			Summary: domain.ReportSummary{Total: 1, Failed: 1},
		}, nil
	}

	branches, err := v.git.Branches(projectPath)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	current, err := v.git.CurrentBranch(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving current branch: %w", err)
	}
	log, err := v.git.Log(projectPath, commitLogDepth)
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}

	checks := []domain.CheckResult{
		v.checkBranchNaming(branches),
		v.checkTracking(branches),
		v.checkStaleness(branches),
		v.checkSpecAlignment(current, projectPath),
		v.checkCommitMessages(log),
		v.checkMainHygiene(current, log, projectPath),
	}
	return Aggregate(v.Key(), projectPath, checks), nil
}

func (v *BranchStrategyValidator) checkBranchNaming(branches []domain.BranchInfo) domain.CheckResult {
	details := domain.BranchDetails{}
	local := 0
	for _, b := range branches {
		if b.IsRemote {
			continue
		}
		local++
		if mainBranches[b.Name] || branchNamePattern.MatchString(b.Name) {
			continue
		}
		details.Branches = append(details.Branches, b.Name)
	}
	if len(details.Branches) == 0 {
		return domain.CheckResult{
			Name: "Branch Naming", Status: domain.StatusPass,
			Message: fmt.Sprintf("all %d local branch(es) follow the naming pattern", local),
		}
	}
	details.Hint = "name branches <type>/<description>, e.g. feature/report-export"
	return domain.CheckResult{
		Name: "Branch Naming", Status: domain.StatusWarning,
		Message: fmt.Sprintf("%d branch(es) break the naming pattern", len(details.Branches)),
		Details: &details,
	}
}

func (v *BranchStrategyValidator) checkTracking(branches []domain.BranchInfo) domain.CheckResult {
	remote := make(map[string]bool)
	for _, b := range branches {
		if b.IsRemote {
			// origin/feature/x tracks local feature/x
			name := b.Name
			if idx := strings.Index(name, "/"); idx >= 0 {
				name = name[idx+1:]
			}
			remote[name] = true
		}
	}
	if len(remote) == 0 {
		return domain.CheckResult{
			Name: "Tracking Hygiene", Status: domain.StatusPass,
			Message: "no remote branches to compare against",
		}
	}

	details := domain.BranchDetails{}
	for _, b := range branches {
		if !b.IsRemote && !mainBranches[b.Name] && !remote[b.Name] {
			details.Branches = append(details.Branches, b.Name)
		}
	}
	if len(details.Branches) == 0 {
		return domain.CheckResult{
			Name: "Tracking Hygiene", Status: domain.StatusPass,
			Message: "all local branches have remote counterparts",
		}
	}
	details.Hint = "push or prune local-only branches"
	return domain.CheckResult{
		Name: "Tracking Hygiene", Status: domain.StatusWarning,
		Message: fmt.Sprintf("%d local branch(es) have no remote counterpart", len(details.Branches)),
		Details: &details,
	}
}

func (v *BranchStrategyValidator) checkStaleness(branches []domain.BranchInfo) domain.CheckResult {
	cutoff := v.now().AddDate(0, 0, -v.thresholds.StaleBranchDays)
	details := domain.BranchDetails{}
	for _, b := range branches {
		if b.IsRemote || mainBranches[b.Name] || b.LastCommit.IsZero() {
			continue
		}
		if b.LastCommit.Before(cutoff) {
			details.Branches = append(details.Branches, b.Name)
		}
	}
	if len(details.Branches) == 0 {
		return domain.CheckResult{
			Name: "Branch Staleness", Status: domain.StatusPass,
			Message: fmt.Sprintf("no branches idle longer than %d days", v.thresholds.StaleBranchDays),
		}
	}
	details.Hint = "merge or delete stale branches"
	return domain.CheckResult{
		Name: "Branch Staleness", Status: domain.StatusWarning,
		Message: fmt.Sprintf("%d branch(es) idle longer than %d days", len(details.Branches), v.thresholds.StaleBranchDays),
		Details: &details,
	}
}

// checkSpecAlignment verifies a feature branch maps to a spec directory.
func (v *BranchStrategyValidator) checkSpecAlignment(current, projectPath string) domain.CheckResult {
	if mainBranches[current] {
		return domain.CheckResult{
			Name: "Spec Alignment", Status: domain.StatusPass,
			Message: fmt.Sprintf("on %s, no feature spec expected", current),
		}
	}

	slug := current
	if idx := strings.Index(slug, "/"); idx >= 0 {
		slug = slug[idx+1:]
	}
	specPath := strings.Join([]string{projectPath, v.specDir, slug}, "/")
	if dirExists(specPath) {
		return domain.CheckResult{
			Name: "Spec Alignment", Status: domain.StatusPass,
			Message: fmt.Sprintf("branch %s matches spec directory %s/%s", current, v.specDir, slug),
		}
	}
	details := domain.BranchDetails{Branches: []string{current}}
	details.Hint = fmt.Sprintf("create %s/%s or rename the branch to match its spec", v.specDir, slug)
	return domain.CheckResult{
		Name: "Spec Alignment", Status: domain.StatusWarning,
		Message: fmt.Sprintf("branch %s has no matching %s/%s directory", current, v.specDir, slug),
		Details: &details,
	}
}

func (v *BranchStrategyValidator) checkCommitMessages(log []domain.CommitInfo) domain.CheckResult {
	if len(log) == 0 {
		return domain.CheckResult{
			Name: "Commit Messages", Status: domain.StatusPass,
			Message: "no commits to inspect",
		}
	}

	details := domain.CommitDetails{}
	for _, c := range log {
		subject, _, _ := strings.Cut(c.Message, "\n")
		if mergeCommit.MatchString(subject) {
			continue
		}
		switch {
		case !conventionalCommit.MatchString(subject):
			details.BadCommits = append(details.BadCommits, fmt.Sprintf("%.7s %s (not conventional)", c.Hash, subject))
		case len(subject) > v.thresholds.CommitSubjectMax:
			details.BadCommits = append(details.BadCommits, fmt.Sprintf("%.7s subject is %d chars", c.Hash, len(subject)))
		}
	}

	if len(details.BadCommits) == 0 {
		return domain.CheckResult{
			Name: "Commit Messages", Status: domain.StatusPass,
			Message: fmt.Sprintf("last %d commit(s) follow conventional format", len(log)),
		}
	}

	ratio := float64(len(log)-len(details.BadCommits)) / float64(len(log))
	details.Hint = "use conventional commits: type(scope): summary"
	return domain.CheckResult{
		Name: "Commit Messages", Status: v.thresholds.RatioStatus(ratio),
		Message: fmt.Sprintf("%d of %d commit(s) break conventional format", len(details.BadCommits), len(log)),
		Details: &details,
	}
}

// checkMainHygiene flags direct work on the main branch: feature-style
// commits landing on main without a merge, or uncommitted changes there.
func (v *BranchStrategyValidator) checkMainHygiene(current string, log []domain.CommitInfo, projectPath string) domain.CheckResult {
	if !mainBranches[current] {
		return domain.CheckResult{
			Name: "Main Branch Hygiene", Status: domain.StatusPass,
			Message: fmt.Sprintf("working on %s, not the main branch", current),
		}
	}

	details := domain.CommitDetails{}
	for _, c := range log {
		subject, _, _ := strings.Cut(c.Message, "\n")
		if !mergeCommit.MatchString(subject) {
			details.BadCommits = append(details.BadCommits, fmt.Sprintf("%.7s %s", c.Hash, subject))
		}
	}

	dirty, err := v.git.HasUncommittedChanges(projectPath)
	if err == nil && dirty {
		details.BadCommits = append(details.BadCommits, "uncommitted changes on "+current)
	}

	if len(details.BadCommits) == 0 {
		return domain.CheckResult{
			Name: "Main Branch Hygiene", Status: domain.StatusPass,
			Message: "main branch contains only merges",
		}
	}
	details.Hint = "do feature work on branches and merge into " + current
	return domain.CheckResult{
		Name: "Main Branch Hygiene", Status: domain.StatusWarning,
		Message: fmt.Sprintf("%d direct change(s) on %s", len(details.BadCommits), current),
		Details: &details,
	}
}
