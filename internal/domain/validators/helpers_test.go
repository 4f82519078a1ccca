package validators_test

import (
	"strings"
	"testing"

	"github.com/specguard/specguard/internal/domain"
)

// fakeScanner serves a fixed in-memory file set, so validator logic is
// tested without touching the filesystem.
type fakeScanner struct {
	files *domain.FileSet
	err   error
}

func (s *fakeScanner) Scan(projectPath string, excludePaths ...string) (*domain.FileSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.files, nil
}

func rec(relPath, content string) domain.FileRecord {
	return domain.FileRecord{
		Path:     relPath,
		RelPath:  relPath,
		Category: domain.Classify(relPath),
		Content:  content,
		Lines:    strings.Count(content, "\n") + 1,
	}
}

func fileSet(records ...domain.FileRecord) *fakeScanner {
	return &fakeScanner{files: &domain.FileSet{Files: records}}
}

// findCheck fails the test when the named check is absent.
func findCheck(t *testing.T, report *domain.ValidatorReport, name string) domain.CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %s report", name, report.Validator)
	return domain.CheckResult{}
}
