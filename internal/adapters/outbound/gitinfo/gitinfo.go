// Package gitinfo implements domain.GitInspector using go-git. Every
// operation is a pure query; the repository is never mutated.
package gitinfo

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/specguard/specguard/internal/domain"
)

type GitInspectorAdapter struct{}

func New() *GitInspectorAdapter {
	return &GitInspectorAdapter{}
}

func (g *GitInspectorAdapter) IsRepo(projectPath string) bool {
	_, err := git.PlainOpen(projectPath)
	return err == nil
}

func (g *GitInspectorAdapter) CurrentBranch(projectPath string) (string, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return head.Hash().String(), nil // detached HEAD
	}
	return head.Name().Short(), nil
}

// Branches lists local and remote branches with per-branch last-commit
// dates.
func (g *GitInspectorAdapter) Branches(projectPath string) ([]domain.BranchInfo, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	current := ""
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		current = head.Name().Short()
	}

	var branches []domain.BranchInfo
	collect := func(ref *plumbing.Reference, remote bool) {
		name := ref.Name().Short()
		if remote && strings.HasSuffix(name, "/HEAD") {
			return
		}
		info := domain.BranchInfo{
			Name:      name,
			IsCurrent: !remote && name == current,
			IsRemote:  remote,
		}
		if commit, err := repo.CommitObject(ref.Hash()); err == nil {
			info.LastCommit = commit.Committer.When
		}
		branches = append(branches, info)
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		collect(ref, false)
		return nil
	})

	refs, err := repo.References()
	if err != nil {
		return branches, nil
	}
	_ = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsRemote() {
			collect(ref, true)
		}
		return nil
	})

	return branches, nil
}

// Log returns up to limit commits from HEAD, newest first.
func (g *GitInspectorAdapter) Log(projectPath string, limit int) ([]domain.CommitInfo, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, nil // empty repository, no commits yet
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	var commits []domain.CommitInfo
	for len(commits) < limit {
		c, err := iter.Next()
		if err != nil {
			break
		}
		commits = append(commits, domain.CommitInfo{
			Hash:    c.Hash.String(),
			Message: c.Message,
			When:    c.Committer.When,
		})
	}
	return commits, nil
}

func (g *GitInspectorAdapter) HasUncommittedChanges(projectPath string) (bool, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return false, fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}
	return !status.IsClean(), nil
}
