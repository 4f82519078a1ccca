// Package analysis holds the stateless text heuristics shared by the
// validators: keyword extraction, pattern matching, an approximate
// cyclomatic complexity measure, and function extraction. Everything here
// is a pure function of its input so each heuristic can be tested without
// file I/O.
package analysis

import (
	"regexp"
	"strings"
)

// stopWords are filler tokens dropped during keyword extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"was": true, "one": true, "our": true, "has": true, "have": true,
	"this": true, "that": true, "with": true, "from": true, "they": true,
	"will": true, "would": true, "there": true, "their": true, "what": true,
	"about": true, "which": true, "when": true, "then": true, "them": true,
	"these": true, "than": true, "into": true, "should": true, "must": true,
	"able": true, "been": true, "its": true, "also": true, "each": true,
	"may": true, "any": true, "user": true, "users": true,
}

var nonWord = regexp.MustCompile(`[^a-z0-9\s]+`)

// ExtractKeywords tokenizes text into a deduplicated set of lowercase
// keywords: non-word characters stripped, tokens of length <= 2 and stop
// words dropped. Used to fuzzily link spec prose to implementation text.
func ExtractKeywords(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	seen := make(map[string]bool)
	var keywords []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
	}
	return keywords
}

// FindMatches returns the subset of keywords contained (case-insensitive)
// in content, preserving keyword order.
func FindMatches(keywords []string, content string) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// branchPatterns are the constructs counted by CyclomaticComplexity.
// "else if" is matched by the bare "if" pattern, matching the source
// tool's line-based counting.
var branchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bif\b`),
	regexp.MustCompile(`\bfor\b`),
	regexp.MustCompile(`\bwhile\b`),
	regexp.MustCompile(`\bcase\b`),
	regexp.MustCompile(`\bcatch\b`),
	regexp.MustCompile(`&&`),
	regexp.MustCompile(`\|\|`),
	regexp.MustCompile(`\?`),
}

// CyclomaticComplexity approximates the cyclomatic complexity of a code
// block: 1 plus one per branching or looping construct. It is a token
// count, not an AST measure, and may overcount occurrences inside string
// or comment literals; that imprecision is a documented limitation.
func CyclomaticComplexity(code string) int {
	complexity := 1
	for _, p := range branchPatterns {
		complexity += len(p.FindAllStringIndex(code, -1))
	}
	return complexity
}

// commentPrefixes mark full-line comments across the supported languages.
var commentPrefixes = []string{"//", "#", "/*", "*", "*/", "'''", `"""`}

// IsCommentLine reports whether a trimmed line is a comment line.
func IsCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// CountLines splits content into total, code, and comment line counts.
// Blank lines count toward total only.
func CountLines(content string) (total, code, comments int) {
	for _, line := range strings.Split(content, "\n") {
		total++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if IsCommentLine(trimmed) {
			comments++
		} else {
			code++
		}
	}
	return total, code, comments
}

// CommentRatio returns comment lines over non-blank lines, 0 when empty.
func CommentRatio(content string) float64 {
	_, code, comments := CountLines(content)
	if code+comments == 0 {
		return 0
	}
	return float64(comments) / float64(code+comments)
}
