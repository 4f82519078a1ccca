package domain

import "fmt"

// ValidatorKey identifies one of the built-in validators. The set is
// fixed at compile time; the runner's registry is keyed by these.
type ValidatorKey string

const (
	KeyCodeQuality    ValidatorKey = "code-quality"
	KeySecurity       ValidatorKey = "security"
	KeyTesting        ValidatorKey = "testing"
	KeySpecAdherence  ValidatorKey = "spec-adherence"
	KeyBranchStrategy ValidatorKey = "branch-strategy"
	KeyDocumentation  ValidatorKey = "documentation"
)

// ValidatorKeys lists every validator in declared run order.
var ValidatorKeys = []ValidatorKey{
	KeyCodeQuality, KeySecurity, KeyTesting,
	KeySpecAdherence, KeyBranchStrategy, KeyDocumentation,
}

// Tier1 holds the critical quality gates, Tier2 the workflow and process
// checks. Tier order defines run order, not result priority.
var (
	Tier1 = []ValidatorKey{KeyCodeQuality, KeySecurity, KeyTesting}
	Tier2 = []ValidatorKey{KeySpecAdherence, KeyBranchStrategy, KeyDocumentation}
)

// TierOf returns the validators of the given tier (1 or 2).
func TierOf(n int) ([]ValidatorKey, error) {
	switch n {
	case 1:
		return Tier1, nil
	case 2:
		return Tier2, nil
	default:
		return nil, fmt.Errorf("unknown tier %d (valid: 1, 2)", n)
	}
}

// IsValidKey reports whether s names a built-in validator.
func IsValidKey(s string) bool {
	for _, k := range ValidatorKeys {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Thresholds centralizes every numeric cutoff used by the validators so
// they are tunable from one place instead of scattered literals.
type Thresholds struct {
	MaxCodeFileLines   int     `yaml:"max_code_file_lines"`
	MaxTestFileLines   int     `yaml:"max_test_file_lines"`
	MaxDocFileLines    int     `yaml:"max_doc_file_lines"`
	MaxConfigFileLines int     `yaml:"max_config_file_lines"`
	CommentHeavyRatio  float64 `yaml:"comment_heavy_ratio"`
	MaxComplexity      int     `yaml:"max_complexity"`
	DuplicateSimilarity float64 `yaml:"duplicate_similarity"`
	MinCommentRatio    float64 `yaml:"min_comment_ratio"`
	MinDocumentedFns   float64 `yaml:"min_documented_functions"`
	PassRatio          float64 `yaml:"pass_ratio"`
	WarnRatio          float64 `yaml:"warn_ratio"`
	StaleBranchDays    int     `yaml:"stale_branch_days"`
	CommitSubjectMax   int     `yaml:"commit_subject_max"`
	MinTestsForTypes   int     `yaml:"min_tests_for_types"`
	SecretMinLength    int     `yaml:"secret_min_length"`
	APIDocWindow       int     `yaml:"api_doc_window"`
	OrphanDocMinLines  int     `yaml:"orphan_doc_min_lines"`
	DocsDirFileCount   int     `yaml:"docs_dir_file_count"`
}

// DefaultThresholds returns the built-in cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxCodeFileLines:    300,
		MaxTestFileLines:    500,
		MaxDocFileLines:     800,
		MaxConfigFileLines:  500,
		CommentHeavyRatio:   0.20,
		MaxComplexity:       10,
		DuplicateSimilarity: 0.85,
		MinCommentRatio:     0.10,
		MinDocumentedFns:    0.50,
		PassRatio:           0.80,
		WarnRatio:           0.60,
		StaleBranchDays:     30,
		CommitSubjectMax:    72,
		MinTestsForTypes:    5,
		SecretMinLength:     8,
		APIDocWindow:        3,
		OrphanDocMinLines:   5,
		DocsDirFileCount:    5,
	}
}

// RatioStatus maps a 0-1 ratio to PASS/WARNING/FAIL using the shared
// pass/warn boundaries.
func (t Thresholds) RatioStatus(ratio float64) Status {
	switch {
	case ratio >= t.PassRatio:
		return StatusPass
	case ratio >= t.WarnRatio:
		return StatusWarning
	default:
		return StatusFail
	}
}

// ProjectConfig holds project-level configuration loaded from
// .specguard.yaml. Zero value changes nothing.
type ProjectConfig struct {
	Skip         []string            `yaml:"skip"          json:"skip,omitempty"`
	ExcludePaths []string            `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	SpecDir      string              `yaml:"spec_dir"      json:"spec_dir,omitempty"`
	Thresholds   *ThresholdOverrides `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
}

// ThresholdOverrides lets users override individual cutoffs. Pointer
// fields distinguish "not specified" from zero.
type ThresholdOverrides struct {
	MaxCodeFileLines    *int     `yaml:"max_code_file_lines,omitempty"`
	MaxTestFileLines    *int     `yaml:"max_test_file_lines,omitempty"`
	MaxComplexity       *int     `yaml:"max_complexity,omitempty"`
	DuplicateSimilarity *float64 `yaml:"duplicate_similarity,omitempty"`
	MinCommentRatio     *float64 `yaml:"min_comment_ratio,omitempty"`
	PassRatio           *float64 `yaml:"pass_ratio,omitempty"`
	WarnRatio           *float64 `yaml:"warn_ratio,omitempty"`
	StaleBranchDays     *int     `yaml:"stale_branch_days,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// EffectiveThresholds merges the config's overrides onto the defaults.
func (c ProjectConfig) EffectiveThresholds() Thresholds {
	t := DefaultThresholds()
	o := c.Thresholds
	if o == nil {
		return t
	}
	if o.MaxCodeFileLines != nil {
		t.MaxCodeFileLines = *o.MaxCodeFileLines
	}
	if o.MaxTestFileLines != nil {
		t.MaxTestFileLines = *o.MaxTestFileLines
	}
	if o.MaxComplexity != nil {
		t.MaxComplexity = *o.MaxComplexity
	}
	if o.DuplicateSimilarity != nil {
		t.DuplicateSimilarity = *o.DuplicateSimilarity
	}
	if o.MinCommentRatio != nil {
		t.MinCommentRatio = *o.MinCommentRatio
	}
	if o.PassRatio != nil {
		t.PassRatio = *o.PassRatio
	}
	if o.WarnRatio != nil {
		t.WarnRatio = *o.WarnRatio
	}
	if o.StaleBranchDays != nil {
		t.StaleBranchDays = *o.StaleBranchDays
	}
	return t
}

// IsSkipped reports whether the named validator is excluded by config.
func (c ProjectConfig) IsSkipped(key string) bool {
	for _, s := range c.Skip {
		if s == key {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values.
func (c ProjectConfig) Validate() error {
	for _, s := range c.Skip {
		if !IsValidKey(s) {
			return fmt.Errorf("unknown validator %q in skip (valid: %v)", s, ValidatorKeys)
		}
	}
	if len(c.Skip) >= len(ValidatorKeys) {
		return fmt.Errorf("cannot skip all validators (must have at least one active)")
	}

	o := c.Thresholds
	if o == nil {
		return nil
	}
	intFields := map[string]*int{
		"max_code_file_lines": o.MaxCodeFileLines,
		"max_test_file_lines": o.MaxTestFileLines,
		"max_complexity":      o.MaxComplexity,
		"stale_branch_days":   o.StaleBranchDays,
	}
	for name, ptr := range intFields {
		if ptr != nil && *ptr <= 0 {
			return fmt.Errorf("thresholds.%s must be > 0 (got %d)", name, *ptr)
		}
	}
	ratioFields := map[string]*float64{
		"duplicate_similarity": o.DuplicateSimilarity,
		"min_comment_ratio":    o.MinCommentRatio,
		"pass_ratio":           o.PassRatio,
		"warn_ratio":           o.WarnRatio,
	}
	for name, ptr := range ratioFields {
		if ptr != nil && (*ptr < 0.0 || *ptr > 1.0) {
			return fmt.Errorf("thresholds.%s must be between 0.0 and 1.0 (got %.2f)", name, *ptr)
		}
	}
	if o.PassRatio != nil && o.WarnRatio != nil && *o.WarnRatio > *o.PassRatio {
		return fmt.Errorf("thresholds.warn_ratio (%.2f) must not exceed pass_ratio (%.2f)", *o.WarnRatio, *o.PassRatio)
	}
	return nil
}
