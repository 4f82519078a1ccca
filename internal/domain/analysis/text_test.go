package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specguard/specguard/internal/domain/analysis"
)

func TestExtractKeywords(t *testing.T) {
	got := analysis.ExtractKeywords("The Export-Report feature should render a summary!")
	assert.Equal(t, []string{"export", "report", "feature", "render", "summary"}, got)
}

func TestExtractKeywords_DropsShortAndStopWords(t *testing.T) {
	got := analysis.ExtractKeywords("as a user I want to be able to do it")
	assert.Equal(t, []string{"want"}, got)
}

func TestExtractKeywords_Dedupes(t *testing.T) {
	got := analysis.ExtractKeywords("report report REPORT")
	assert.Equal(t, []string{"report"}, got)
}

func TestFindMatches(t *testing.T) {
	corpus := "function renderQualityReport() { exportJSON(); }"
	got := analysis.FindMatches([]string{"render", "report", "pdf"}, corpus)
	assert.Equal(t, []string{"render", "report"}, got)

	assert.Nil(t, analysis.FindMatches([]string{"pdf"}, corpus))
}

func TestCyclomaticComplexity(t *testing.T) {
	assert.Equal(t, 1, analysis.CyclomaticComplexity("return a + b;"))

	// 1 + if + for + && = 4
	code := "if (a && b) {\n  for (let i = 0; i < n; i++) {}\n}"
	assert.Equal(t, 4, analysis.CyclomaticComplexity(code))

	// case counts once per occurrence
	sw := "switch (x) {\ncase 1:\ncase 2:\n}"
	assert.Equal(t, 3, analysis.CyclomaticComplexity(sw))
}

func TestIsCommentLine(t *testing.T) {
	assert.True(t, analysis.IsCommentLine("// comment"))
	assert.True(t, analysis.IsCommentLine("   # python comment"))
	assert.True(t, analysis.IsCommentLine("/* block */"))
	assert.True(t, analysis.IsCommentLine(" * continuation"))
	assert.False(t, analysis.IsCommentLine("x := 1"))
	assert.False(t, analysis.IsCommentLine(""))
}

func TestCountLines(t *testing.T) {
	content := "// header\n\nx := 1\ny := 2\n# note"
	total, code, comments := analysis.CountLines(content)
	assert.Equal(t, 5, total)
	assert.Equal(t, 2, code)
	assert.Equal(t, 2, comments)
}

func TestCommentRatio(t *testing.T) {
	assert.Equal(t, 0.0, analysis.CommentRatio(""))
	assert.Equal(t, 0.5, analysis.CommentRatio("// a\nx := 1"))
	assert.Equal(t, 0.0, analysis.CommentRatio("x := 1\ny := 2"))
}
