package analysis

import (
	"regexp"
	"strings"
)

var tokenSplit = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// normalizeBody strips comments, collapses whitespace, and lowercases a
// function body so near-duplicates with renamed locals still align.
func normalizeBody(body string) []string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || IsCommentLine(trimmed) {
			continue
		}
		kept = append(kept, strings.ToLower(trimmed))
	}
	return tokenSplit.Split(strings.Join(kept, " "), -1)
}

// bigrams builds the token-bigram multiset of a normalized body.
func bigrams(tokens []string) map[string]int {
	grams := make(map[string]int)
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i] == "" || tokens[i+1] == "" {
			continue
		}
		grams[tokens[i]+" "+tokens[i+1]]++
	}
	return grams
}

// BodySimilarity returns the Sørensen–Dice coefficient of two function
// bodies over token bigrams, in [0,1]. Identical bodies score 1.0.
func BodySimilarity(a, b string) float64 {
	ga := bigrams(normalizeBody(a))
	gb := bigrams(normalizeBody(b))
	if len(ga) == 0 || len(gb) == 0 {
		return 0
	}

	var overlap, sizeA, sizeB int
	for g, ca := range ga {
		sizeA += ca
		if cb, ok := gb[g]; ok {
			overlap += min(ca, cb)
		}
	}
	for _, cb := range gb {
		sizeB += cb
	}
	return 2 * float64(overlap) / float64(sizeA+sizeB)
}

// minDuplicateTokens filters out trivially small bodies that would match
// each other by accident.
const minDuplicateTokens = 8

// FindDuplicates groups functions whose bodies exceed the similarity
// threshold. Each function appears in at most one group.
func FindDuplicates(fns []NamedBody, threshold float64) [][]NamedBody {
	used := make([]bool, len(fns))
	var groups [][]NamedBody

	for i := range fns {
		if used[i] || len(normalizeBody(fns[i].Body)) < minDuplicateTokens {
			continue
		}
		group := []NamedBody{fns[i]}
		for j := i + 1; j < len(fns); j++ {
			if used[j] {
				continue
			}
			if BodySimilarity(fns[i].Body, fns[j].Body) >= threshold {
				group = append(group, fns[j])
				used[j] = true
			}
		}
		if len(group) > 1 {
			used[i] = true
			groups = append(groups, group)
		}
	}
	return groups
}

// NamedBody pairs a qualified function name with its body text.
type NamedBody struct {
	Name string
	Body string
}
