package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/domain/analysis"
)

func TestFindSecrets_FlagsLiterals(t *testing.T) {
	content := "const config = {};\nconst API_KEY = \"sk-1234567890abcdef\";\n"
	matches := analysis.FindSecrets(content, 8)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Line)
	assert.Contains(t, matches[0].Text, "API_KEY")
}

func TestFindSecrets_EnvSourcedIsSafe(t *testing.T) {
	for _, line := range []string{
		`const apiKey = process.env.API_KEY;`,
		`password = os.environ["DB_PASSWORD"]`,
		`token := os.Getenv("TOKEN")`,
	} {
		assert.Empty(t, analysis.FindSecrets(line, 8), line)
	}
}

func TestFindSecrets_PlaceholdersAndShortValuesSkipped(t *testing.T) {
	for _, line := range []string{
		`password: "changeme"`,
		`api_key: "<your-key-here>"`,
		`password: ""`,
		`password: "short"`, // below minimum length
	} {
		assert.Empty(t, analysis.FindSecrets(line, 8), line)
	}
}

func TestFindPattern_DangerousCalls(t *testing.T) {
	content := "eval(userInput);\nconsole.log('fine');\nel.innerHTML = data;"
	matches := analysis.FindPattern(content, analysis.DangerousPatterns)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Line)
	assert.Equal(t, 3, matches[1].Line)
}

func TestFindSQLConcat(t *testing.T) {
	flagged := `const q = "SELECT * FROM users WHERE id=" + userId;`
	require.Len(t, analysis.FindSQLConcat(flagged), 1)

	parameterized := `db.query("SELECT * FROM users WHERE id = $1" + suffix);`
	assert.Empty(t, analysis.FindSQLConcat(parameterized), "placeholders mark the query as parameterized")

	unrelated := `const msg = "hello " + name;`
	assert.Empty(t, analysis.FindSQLConcat(unrelated))
}

func TestFindInsecureURLs(t *testing.T) {
	content := "fetch('http://api.example.com/v1')\nfetch('http://localhost:3000')\nfetch('https://api.example.com')"
	matches := analysis.FindInsecureURLs(content)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Line)
	assert.Contains(t, matches[0].Text, "api.example.com")
}
