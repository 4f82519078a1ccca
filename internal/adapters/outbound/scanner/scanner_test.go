package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/adapters/outbound/scanner"
	"github.com/specguard/specguard/internal/domain"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	fp := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, content, 0644))
}

func TestScan_ClassifiesAndSkips(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.js", []byte("const x = 1;\nconst y = 2;\n"))
	writeFile(t, root, "src/app.test.js", []byte("it('adds values correctly', () => {});\n"))
	writeFile(t, root, "README.md", []byte("# App\n"))
	writeFile(t, root, "config.yaml", []byte("debug: false\n"))
	writeFile(t, root, "node_modules/lib/index.js", []byte("module.exports = {};\n"))

	set, err := scanner.New().Scan(root)
	require.NoError(t, err)

	byRel := make(map[string]domain.FileRecord)
	for _, f := range set.Files {
		byRel[f.RelPath] = f
	}

	require.Len(t, byRel, 4, "node_modules must be skipped")
	assert.Equal(t, domain.CategoryCode, byRel["src/app.js"].Category)
	assert.Equal(t, domain.CategoryTest, byRel["src/app.test.js"].Category)
	assert.Equal(t, domain.CategoryDocumentation, byRel["README.md"].Category)
	assert.Equal(t, domain.CategoryConfiguration, byRel["config.yaml"].Category)

	assert.Equal(t, 3, byRel["src/app.js"].Lines)
	assert.Contains(t, byRel["src/app.js"].Content, "const x")
}

func TestScan_BinaryContentIsEmptied(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "assets/logo.png", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0x02})

	set, err := scanner.New().Scan(root)
	require.NoError(t, err)

	require.Len(t, set.Files, 1)
	assert.Empty(t, set.Files[0].Content)
	assert.Zero(t, set.Files[0].Lines)
}

func TestScan_ExcludePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.js", []byte("const x = 1;\n"))
	writeFile(t, root, "generated/out.js", []byte("var g = 1;\n"))

	set, err := scanner.New().Scan(root, "generated/")
	require.NoError(t, err)

	require.Len(t, set.Files, 1)
	assert.Equal(t, "src/app.js", set.Files[0].RelPath)
}

func TestScan_MissingRootFails(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
