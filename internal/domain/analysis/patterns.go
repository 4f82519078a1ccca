package analysis

import (
	"regexp"
	"strings"
)

// SecretPatterns match literal assignments that look like credentials.
// A hit is a violation unless the value is sourced from the environment
// or is an empty/null placeholder.
var SecretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[:=]\s*["'][^"']+["']`),
	regexp.MustCompile(`(?i)(?:api[_-]?key|apikey)\s*[:=]\s*["'][^"']+["']`),
	regexp.MustCompile(`(?i)(?:secret|token)\s*[:=]\s*["'][^"']+["']`),
	regexp.MustCompile(`(?i)(?:access[_-]?key|private[_-]?key)\s*[:=]\s*["'][^"']+["']`),
	regexp.MustCompile(`(?i)bearer\s+[a-z0-9\-._~+/]{20,}`),
	regexp.MustCompile(`sk-[a-zA-Z0-9]{8,}`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
}

// DangerousPatterns flag call sites that execute or inject arbitrary
// content; they are reported regardless of argument.
var DangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\beval\s*\(`),
	regexp.MustCompile(`\bexec\s*\(`),
	regexp.MustCompile(`\.innerHTML\s*=`),
	regexp.MustCompile(`document\.write\s*\(`),
	regexp.MustCompile(`dangerouslySetInnerHTML`),
	regexp.MustCompile(`child_process`),
	regexp.MustCompile(`new\s+Function\s*\(`),
}

// SQLConcatPatterns flag string construction that feeds SQL keywords.
var SQLConcatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)["'](?:select|insert|update|delete)\b[^"']*["']\s*\+`),
	regexp.MustCompile(`(?i)\+\s*["'][^"']*\b(?:from|where|values|set)\b`),
	regexp.MustCompile("(?i)`[^`]*(?:select|insert|update|delete)[^`]*\\$\\{"),
	regexp.MustCompile(`(?i)(?:query|execute)\s*\(\s*["'][^"']*["']\s*\+`),
}

// sqlPlaceholders recognize parameterized queries, which are safe.
var sqlPlaceholders = regexp.MustCompile(`(?:\?|\$\d+|:[a-zA-Z_]\w*)`)

// XSSSinkPatterns flag request data flowing into DOM-write or HTML
// rendering sinks without escaping.
var XSSSinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.innerHTML\s*=\s*[^"'\n]*(?:req\.|request\.|params|query|body)`),
	regexp.MustCompile(`document\.write\s*\([^)]*(?:req\.|request\.|params|query|body)`),
	regexp.MustCompile(`res\.send\s*\([^)]*\+\s*(?:req\.|request\.)`),
	regexp.MustCompile(`\$\{\s*(?:req|request)\.[^}]*\}`),
}

// InsecureURLPattern flags plain-HTTP literals; localhost is exempt.
var InsecureURLPattern = regexp.MustCompile(`http://[^\s"'<>\)]+`)

// localURL reports whether a URL points at a local development host.
func localURL(url string) bool {
	return strings.Contains(url, "localhost") ||
		strings.Contains(url, "127.0.0.1") ||
		strings.Contains(url, "0.0.0.0")
}

// envSourced reports whether a line derives its value from environment
// variables rather than a literal.
var envSourced = regexp.MustCompile(`(?i)(?:process\.env|os\.environ|os\.getenv|os\.Getenv|ENV\[|getenv\()`)

// emptyLiteral matches assignments to empty, null, or placeholder values.
var emptyLiteral = regexp.MustCompile(`(?i)[:=]\s*(?:["']\s*["']|null|none|nil|undefined|["']\s*(?:your|xxx+|changeme|placeholder|example|<[^>]*>)[^"']*["'])\s*[,;]?\s*$`)

// FindSecrets scans content line by line and returns the offending lines
// (1-based) with their text. Environment-sourced values and empty or
// placeholder literals are not violations.
func FindSecrets(content string, minLength int) []Match {
	var out []Match
	for i, line := range strings.Split(content, "\n") {
		for _, p := range SecretPatterns {
			hit := p.FindString(line)
			if hit == "" {
				continue
			}
			if envSourced.MatchString(line) || emptyLiteral.MatchString(line) {
				break
			}
			if literalTooShort(hit, minLength) {
				break
			}
			out = append(out, Match{Line: i + 1, Text: strings.TrimSpace(line)})
			break
		}
	}
	return out
}

// literalTooShort extracts the quoted value of a hit and reports whether
// it is below the minimum length that counts as a real secret.
func literalTooShort(hit string, minLength int) bool {
	start := strings.IndexAny(hit, `"'`)
	if start < 0 {
		return false
	}
	quote := hit[start]
	rest := hit[start+1:]
	end := strings.IndexByte(rest, quote)
	if end < 0 {
		return false
	}
	return len(rest[:end]) < minLength
}

// Match is one pattern hit inside file content.
type Match struct {
	Line int
	Text string
}

// FindPattern returns every line matching any of the given patterns.
func FindPattern(content string, patterns []*regexp.Regexp) []Match {
	var out []Match
	for i, line := range strings.Split(content, "\n") {
		for _, p := range patterns {
			if p.MatchString(line) {
				out = append(out, Match{Line: i + 1, Text: strings.TrimSpace(line)})
				break
			}
		}
	}
	return out
}

// FindSQLConcat flags SQL built by concatenation or interpolation.
// Lines using parameterized placeholders are treated as safe.
func FindSQLConcat(content string) []Match {
	var out []Match
	for i, line := range strings.Split(content, "\n") {
		for _, p := range SQLConcatPatterns {
			if !p.MatchString(line) {
				continue
			}
			if sqlPlaceholders.MatchString(line) {
				break
			}
			out = append(out, Match{Line: i + 1, Text: strings.TrimSpace(line)})
			break
		}
	}
	return out
}

// FindInsecureURLs flags http:// literals outside local hosts.
func FindInsecureURLs(content string) []Match {
	var out []Match
	for i, line := range strings.Split(content, "\n") {
		for _, url := range InsecureURLPattern.FindAllString(line, -1) {
			if localURL(url) {
				continue
			}
			out = append(out, Match{Line: i + 1, Text: url})
		}
	}
	return out
}

// RiskyDependencies lists package names flagged by the dependency
// security check when present in a manifest.
var RiskyDependencies = map[string]string{
	"event-stream":  "compromised in a 2018 supply-chain attack",
	"flatmap-stream": "malicious payload package",
	"request":       "deprecated, unmaintained",
	"node-uuid":     "deprecated, use uuid",
	"left-pad":      "trivial dependency, inline it",
}

// WildcardVersion matches manifest version ranges that accept anything.
var WildcardVersion = regexp.MustCompile(`"\s*(?:\*|latest|>=?\s*0(?:\.0)*(?:\.0)?)\s*"`)
