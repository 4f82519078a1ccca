package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specguard/specguard/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want domain.Category
	}{
		{"src/app.js", domain.CategoryCode},
		{"src/Component.tsx", domain.CategoryCode},
		{"server/main.py", domain.CategoryCode},
		{"internal/runner.go", domain.CategoryCode},
		{"README.md", domain.CategoryDocumentation},
		{"docs/guide.txt", domain.CategoryDocumentation},
		{"config.yaml", domain.CategoryConfiguration},
		{"package.json", domain.CategoryConfiguration},
		{"logo.png", domain.CategoryOther},
		{"Makefile", domain.CategoryOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.Classify(tc.path), tc.path)
	}
}

func TestClassify_TestMarkersPrecedeExtension(t *testing.T) {
	cases := []string{
		"src/component.test.js",
		"src/component.spec.ts",
		"tests/test-login.js",
		"tests/test_utils.py",
		"internal/runner_test.go",
	}
	for _, path := range cases {
		assert.Equal(t, domain.CategoryTest, domain.Classify(path), path)
	}
}

func TestShouldSkipDir(t *testing.T) {
	for _, dir := range []string{"node_modules", "vendor", ".git", "dist", "coverage", "__pycache__"} {
		assert.True(t, domain.ShouldSkipDir(dir), dir)
	}
	for _, dir := range []string{"src", "internal", "specs", "docs"} {
		assert.False(t, domain.ShouldSkipDir(dir), dir)
	}
}

func TestFileSet_ByCategory(t *testing.T) {
	fs := &domain.FileSet{Files: []domain.FileRecord{
		{RelPath: "a.js", Category: domain.CategoryCode},
		{RelPath: "a.test.js", Category: domain.CategoryTest},
		{RelPath: "README.md", Category: domain.CategoryDocumentation},
		{RelPath: "b.js", Category: domain.CategoryCode},
	}}

	code := fs.ByCategory(domain.CategoryCode)
	assert.Len(t, code, 2)
	assert.Equal(t, "a.js", code[0].RelPath)
	assert.Equal(t, "b.js", code[1].RelPath)

	both := fs.CodeAndTests()
	assert.Len(t, both, 3)
}
