package domain

import "time"

// ProjectScanner walks a project directory and returns classified files.
type ProjectScanner interface {
	Scan(projectPath string, excludePaths ...string) (*FileSet, error)
}

// ConfigLoader reads project-level configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// GitInspector is the read-only version-control collaborator consumed by
// the branch strategy validator. Implementations never mutate the repo.
type GitInspector interface {
	IsRepo(projectPath string) bool
	Branches(projectPath string) ([]BranchInfo, error)
	CurrentBranch(projectPath string) (string, error)
	Log(projectPath string, limit int) ([]CommitInfo, error)
	HasUncommittedChanges(projectPath string) (bool, error)
}

// BranchInfo describes one branch of the inspected repository.
type BranchInfo struct {
	Name       string    `json:"name"`
	IsCurrent  bool      `json:"is_current"`
	IsRemote   bool      `json:"is_remote"`
	LastCommit time.Time `json:"last_commit"`
}

// CommitInfo describes one commit from the log.
type CommitInfo struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	When    time.Time `json:"when"`
}

// RunHistory persists run entries between invocations (best-effort).
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}
