// Package scanner implements domain.ProjectScanner by walking the
// filesystem and classifying every regular file.
package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/specguard/specguard/internal/domain"
)

// maxReadSize caps how much of a file is read for analysis.
const maxReadSize = 256 * 1024

// FileScanner walks a project tree depth-first, skipping denylisted
// directories, and yields classified FileRecords. Reads are read-only;
// the target tree is never mutated.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

func (s *FileScanner) Scan(projectPath string, excludePaths ...string) (*domain.FileSet, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	result := &domain.FileSet{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absPath && (domain.ShouldSkipDir(d.Name()) || extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		result.Files = append(result.Files, domain.FileRecord{
			Path:     path,
			RelPath:  filepath.ToSlash(relPath),
			Category: domain.Classify(path),
			Content:  readContent(path),
		})
		rec := &result.Files[len(result.Files)-1]
		if rec.Content != "" {
			rec.Lines = strings.Count(rec.Content, "\n") + 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// readContent returns a file's text, or "" for unreadable or binary
// content: analysis treats those as empty rather than failing the scan.
func readContent(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if len(data) > maxReadSize {
		data = data[:maxReadSize]
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "" // binary
	}
	return string(data)
}
