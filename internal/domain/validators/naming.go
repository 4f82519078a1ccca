package validators

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

const maxIdentifierLength = 40

// namingProblem applies identifier heuristics to a function name and
// returns a reason string, or "" when the name is acceptable.
func namingProblem(name string) string {
	if loopVars[strings.ToLower(name)] {
		return ""
	}
	if len(name) <= 2 {
		return "too short"
	}
	if len(name) > maxIdentifierLength {
		return "too long"
	}
	if strings.Contains(name, "_") && hasUpper(name) {
		return "mixes snake_case and camelCase"
	}
	if words := camelcase.Split(strings.ReplaceAll(name, "_", "")); len(words) > 6 {
		return "too many words"
	}
	return ""
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
