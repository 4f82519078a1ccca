package domain

import (
	"path/filepath"
	"strings"
)

// Category classifies a file for analysis purposes.
type Category string

const (
	CategoryCode          Category = "code"
	CategoryTest          Category = "test"
	CategoryDocumentation Category = "documentation"
	CategoryConfiguration Category = "configuration"
	CategoryOther         Category = "other"
)

var (
	codeExtensions = map[string]bool{
		".js": true, ".ts": true, ".jsx": true, ".tsx": true,
		".py": true, ".rb": true, ".php": true, ".java": true,
		".cs": true, ".go": true,
	}
	docExtensions = map[string]bool{
		".md": true, ".txt": true, ".rst": true, ".adoc": true,
	}
	configExtensions = map[string]bool{
		".json": true, ".yaml": true, ".yml": true,
	}
	skipDirs = map[string]bool{
		"node_modules": true,
		"vendor":       true,
		".git":         true,
		".svn":         true,
		".hg":          true,
		"dist":         true,
		"build":        true,
		"out":          true,
		"bin":          true,
		"coverage":     true,
		".next":        true,
		"__pycache__":  true,
	}
)

// Classify maps a path to exactly one category. Test markers in the
// filename take precedence over the extension; unrecognized paths are
// CategoryOther.
func Classify(path string) Category {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	if codeExtensions[ext] || docExtensions[ext] || configExtensions[ext] {
		switch {
		case strings.Contains(name, ".test."),
			strings.Contains(name, ".spec."),
			strings.HasPrefix(name, "test-"),
			strings.HasPrefix(stem, "test_"),
			strings.HasSuffix(stem, "_test"):
			return CategoryTest
		}
	}

	switch {
	case docExtensions[ext]:
		return CategoryDocumentation
	case configExtensions[ext]:
		return CategoryConfiguration
	case codeExtensions[ext]:
		return CategoryCode
	default:
		return CategoryOther
	}
}

// ShouldSkipDir reports whether traversal must not descend into the
// named directory (dependency caches, VCS metadata, build output).
func ShouldSkipDir(dirName string) bool {
	return skipDirs[dirName]
}

// FileRecord is one scanned file: path, classification, and content.
// Records live only for the duration of a single validator invocation.
type FileRecord struct {
	Path     string
	RelPath  string
	Category Category
	Content  string
	Lines    int
}

// FileSet is the result of scanning a project tree.
type FileSet struct {
	RootPath string
	Files    []FileRecord
}

// ByCategory returns the records of one category, in scan order.
func (fs *FileSet) ByCategory(c Category) []FileRecord {
	var out []FileRecord
	for _, f := range fs.Files {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

// CodeAndTests returns code files followed by test files.
func (fs *FileSet) CodeAndTests() []FileRecord {
	var out []FileRecord
	for _, f := range fs.Files {
		if f.Category == CategoryCode || f.Category == CategoryTest {
			out = append(out, f)
		}
	}
	return out
}
