package validators_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/validators"
)

// fakeGit serves canned repository state to the branch validator.
type fakeGit struct {
	isRepo   bool
	branches []domain.BranchInfo
	current  string
	log      []domain.CommitInfo
	dirty    bool
	err      error
}

func (g *fakeGit) IsRepo(string) bool { return g.isRepo }

func (g *fakeGit) Branches(string) ([]domain.BranchInfo, error) { return g.branches, g.err }

func (g *fakeGit) CurrentBranch(string) (string, error) { return g.current, g.err }

func (g *fakeGit) Log(string, int) ([]domain.CommitInfo, error) { return g.log, g.err }

func (g *fakeGit) HasUncommittedChanges(string) (bool, error) { return g.dirty, nil }

func conventionalLog() []domain.CommitInfo {
	return []domain.CommitInfo{
		{Hash: "aaaaaaaa", Message: "feat(export): add JSON report writer"},
		{Hash: "bbbbbbbb", Message: "fix: handle empty report sets"},
		{Hash: "cccccccc", Message: "Merge branch 'feature/report-export'"},
	}
}

func TestBranchStrategy_NotARepositoryFails(t *testing.T) {
	v := validators.NewBranchStrategy(&fakeGit{isRepo: false}, domain.DefaultThresholds(), "")
	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFail, report.Status)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, "Git Repository", report.Checks[0].Name)
}

func TestBranchStrategy_CleanFeatureBranchPasses(t *testing.T) {
	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, "specs", "report-export"), 0755))

	now := time.Now()
	git := &fakeGit{
		isRepo:  true,
		current: "feature/report-export",
		branches: []domain.BranchInfo{
			{Name: "main", LastCommit: now},
			{Name: "feature/report-export", IsCurrent: true, LastCommit: now},
			{Name: "origin/main", IsRemote: true, LastCommit: now},
			{Name: "origin/feature/report-export", IsRemote: true, LastCommit: now},
		},
		log: conventionalLog(),
	}
	v := validators.NewBranchStrategy(git, domain.DefaultThresholds(), "")

	report, err := v.Validate(project)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPass, report.Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Branch Naming").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Tracking Hygiene").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Spec Alignment").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Commit Messages").Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, "Main Branch Hygiene").Status)
}

func TestBranchStrategy_BadBranchNameWarns(t *testing.T) {
	git := &fakeGit{
		isRepo:   true,
		current:  "main",
		branches: []domain.BranchInfo{{Name: "main"}, {Name: "janky_stuff"}},
		log:      []domain.CommitInfo{{Hash: "cccccccc", Message: "Merge branch 'feature/x'"}},
	}
	v := validators.NewBranchStrategy(git, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "Branch Naming")
	assert.Equal(t, domain.StatusWarning, check.Status)
	details := check.Details.(*domain.BranchDetails)
	assert.Equal(t, []string{"janky_stuff"}, details.Branches)
}

func TestBranchStrategy_StaleBranchWarns(t *testing.T) {
	stale := time.Now().AddDate(0, 0, -60)
	git := &fakeGit{
		isRepo:  true,
		current: "main",
		branches: []domain.BranchInfo{
			{Name: "main", LastCommit: time.Now()},
			{Name: "feature/old-idea", LastCommit: stale},
		},
		log: []domain.CommitInfo{{Hash: "cccccccc", Message: "Merge branch 'feature/x'"}},
	}
	v := validators.NewBranchStrategy(git, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "Branch Staleness")
	assert.Equal(t, domain.StatusWarning, check.Status)
	details := check.Details.(*domain.BranchDetails)
	assert.Equal(t, []string{"feature/old-idea"}, details.Branches)
}

func TestBranchStrategy_DirectWorkOnMainWarns(t *testing.T) {
	git := &fakeGit{
		isRepo:   true,
		current:  "main",
		branches: []domain.BranchInfo{{Name: "main"}},
		log: []domain.CommitInfo{
			{Hash: "aaaaaaaa", Message: "feat: quick hack straight onto main"},
		},
		dirty: true,
	}
	v := validators.NewBranchStrategy(git, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "Main Branch Hygiene")
	assert.Equal(t, domain.StatusWarning, check.Status)
	details := check.Details.(*domain.CommitDetails)
	assert.Len(t, details.BadCommits, 2) // the direct commit and the dirty worktree
}

func TestBranchStrategy_UnconventionalCommitsFlagged(t *testing.T) {
	git := &fakeGit{
		isRepo:   true,
		current:  "main",
		branches: []domain.BranchInfo{{Name: "main"}},
		log: []domain.CommitInfo{
			{Hash: "aaaaaaaa", Message: "feat: add exporter"},
			{Hash: "bbbbbbbb", Message: "wip"},
			{Hash: "cccccccc", Message: "more stuff"},
		},
	}
	v := validators.NewBranchStrategy(git, domain.DefaultThresholds(), "")

	report, err := v.Validate(t.TempDir())
	require.NoError(t, err)

	check := findCheck(t, report, "Commit Messages")
	assert.Equal(t, domain.StatusFail, check.Status) // 1 of 3 conventional
	details := check.Details.(*domain.CommitDetails)
	assert.Len(t, details.BadCommits, 2)
}

func TestBranchStrategy_GitErrorPropagates(t *testing.T) {
	git := &fakeGit{isRepo: true, err: errors.New("object store corrupt")}
	v := validators.NewBranchStrategy(git, domain.DefaultThresholds(), "")
	_, err := v.Validate(t.TempDir())
	assert.Error(t, err)
}
