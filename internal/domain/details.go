package domain

// CheckDetails is the evidence attached to a CheckResult. Each check kind
// uses its own concrete struct so renderers and tests see typed fields
// instead of an open map.
type CheckDetails interface {
	Recommendation() string
}

// hint provides the shared recommendation field; empty means no
// recommendation for the check.
type hint struct {
	Hint string `json:"recommendation,omitempty"`
}

func (h hint) Recommendation() string { return h.Hint }

// Violation points at one offending location in the scanned tree.
type Violation struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

// FileSizeDetails reports files exceeding their category's line limit.
type FileSizeDetails struct {
	hint
	Oversized []FileSizeEntry `json:"oversized,omitempty"`
}

type FileSizeEntry struct {
	File      string `json:"file"`
	Lines     int    `json:"lines"`
	Limit     int    `json:"limit"`
	Exception string `json:"exception,omitempty"`
}

// ComplexityDetails reports functions above the complexity ceiling.
type ComplexityDetails struct {
	hint
	Limit     int               `json:"limit"`
	Functions []ComplexityEntry `json:"functions,omitempty"`
}

type ComplexityEntry struct {
	File       string `json:"file"`
	Function   string `json:"function"`
	Complexity int    `json:"complexity"`
}

// DuplicationDetails reports groups of near-duplicate function bodies.
type DuplicationDetails struct {
	hint
	Groups []DuplicateGroup `json:"groups,omitempty"`
}

type DuplicateGroup struct {
	Functions  []string `json:"functions"`
	Similarity float64  `json:"similarity"`
}

// NamingDetails reports identifiers breaking naming heuristics.
type NamingDetails struct {
	hint
	Violations []NamingEntry `json:"violations,omitempty"`
}

type NamingEntry struct {
	File       string `json:"file"`
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// CommentDetails reports comment density and function documentation rates.
type CommentDetails struct {
	hint
	CommentRatio   float64  `json:"comment_ratio"`
	DocumentedFns  float64  `json:"documented_functions"`
	SparseFiles    []string `json:"sparse_files,omitempty"`
	TotalFunctions int      `json:"total_functions"`
}

// SecretDetails reports hardcoded-secret findings.
type SecretDetails struct {
	hint
	Violations []Violation `json:"violations,omitempty"`
}

// EvidenceDetails is the common shape for pattern-hit checks (insecure
// functions, SQL injection, XSS, insecure URLs, config and env findings).
type EvidenceDetails struct {
	hint
	Violations []Violation `json:"violations,omitempty"`
}

// PresenceDetails reports whether expected supporting signals were found
// (validation library, auth middleware, test runner config, TDD tasks).
type PresenceDetails struct {
	hint
	Found      bool     `json:"found"`
	Indicators []string `json:"indicators,omitempty"`
}

// CoverageDetails reports the code-file to test-file pairing ratio.
type CoverageDetails struct {
	hint
	CodeFiles   int      `json:"code_files"`
	TestedFiles int      `json:"tested_files"`
	Ratio       float64  `json:"ratio"`
	Untested    []string `json:"untested,omitempty"`
}

// SpecMatchDetails reports requirement-to-evidence matching for one
// category of spec items (scope, user stories, deliverables).
type SpecMatchDetails struct {
	hint
	Total        int      `json:"total"`
	Matched      int      `json:"matched"`
	MissingCount int      `json:"missingCount"`
	Missing      []string `json:"missing,omitempty"`
}

// ScopeCreepDetails reports implementation evidence for out-of-scope items.
type ScopeCreepDetails struct {
	hint
	Items []string `json:"items,omitempty"`
}

// BranchDetails reports branch-hygiene findings.
type BranchDetails struct {
	hint
	Branches []string `json:"branches,omitempty"`
}

// CommitDetails reports commit-message findings.
type CommitDetails struct {
	hint
	BadCommits []string `json:"bad_commits,omitempty"`
}

// RatioDetails is the generic numerator/denominator evidence used by
// structure-style checks (test structure, readme completeness, docs).
type RatioDetails struct {
	hint
	Ratio     float64  `json:"ratio"`
	Threshold float64  `json:"threshold"`
	Items     []string `json:"items,omitempty"`
}

// CountDetails reports a plain count against a threshold.
type CountDetails struct {
	hint
	Count     int      `json:"count"`
	Threshold int      `json:"threshold"`
	Items     []string `json:"items,omitempty"`
}
