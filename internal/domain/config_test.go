package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/domain"
)

func TestTierOf(t *testing.T) {
	tier1, err := domain.TierOf(1)
	require.NoError(t, err)
	assert.Equal(t, domain.Tier1, tier1)

	tier2, err := domain.TierOf(2)
	require.NoError(t, err)
	assert.Equal(t, domain.Tier2, tier2)

	_, err = domain.TierOf(3)
	assert.Error(t, err)
}

func TestValidatorKeys_CoverBothTiers(t *testing.T) {
	assert.Len(t, domain.ValidatorKeys, len(domain.Tier1)+len(domain.Tier2))
	for _, key := range domain.ValidatorKeys {
		assert.True(t, domain.IsValidKey(string(key)))
	}
	assert.False(t, domain.IsValidKey("linting"))
}

func TestRatioStatus(t *testing.T) {
	thresholds := domain.DefaultThresholds()
	assert.Equal(t, domain.StatusPass, thresholds.RatioStatus(1.0))
	assert.Equal(t, domain.StatusPass, thresholds.RatioStatus(0.80))
	assert.Equal(t, domain.StatusWarning, thresholds.RatioStatus(0.79))
	assert.Equal(t, domain.StatusWarning, thresholds.RatioStatus(0.60))
	assert.Equal(t, domain.StatusFail, thresholds.RatioStatus(0.59))
	assert.Equal(t, domain.StatusFail, thresholds.RatioStatus(0))
}

func TestEffectiveThresholds_Overrides(t *testing.T) {
	maxLines := 150
	passRatio := 0.9
	cfg := domain.ProjectConfig{Thresholds: &domain.ThresholdOverrides{
		MaxCodeFileLines: &maxLines,
		PassRatio:        &passRatio,
	}}

	merged := cfg.EffectiveThresholds()
	assert.Equal(t, 150, merged.MaxCodeFileLines)
	assert.Equal(t, 0.9, merged.PassRatio)
	// Untouched fields keep their defaults.
	defaults := domain.DefaultThresholds()
	assert.Equal(t, defaults.MaxTestFileLines, merged.MaxTestFileLines)
	assert.Equal(t, defaults.WarnRatio, merged.WarnRatio)
}

func TestProjectConfig_Validate(t *testing.T) {
	assert.NoError(t, domain.ProjectConfig{}.Validate())
	assert.NoError(t, domain.ProjectConfig{Skip: []string{"security"}}.Validate())

	assert.Error(t, domain.ProjectConfig{Skip: []string{"bogus"}}.Validate())

	all := make([]string, len(domain.ValidatorKeys))
	for i, k := range domain.ValidatorKeys {
		all[i] = string(k)
	}
	assert.Error(t, domain.ProjectConfig{Skip: all}.Validate(), "skipping every validator must be rejected")

	negative := -1
	assert.Error(t, domain.ProjectConfig{Thresholds: &domain.ThresholdOverrides{MaxComplexity: &negative}}.Validate())

	tooBig := 1.5
	assert.Error(t, domain.ProjectConfig{Thresholds: &domain.ThresholdOverrides{PassRatio: &tooBig}}.Validate())

	pass, warn := 0.7, 0.9
	assert.Error(t, domain.ProjectConfig{Thresholds: &domain.ThresholdOverrides{PassRatio: &pass, WarnRatio: &warn}}.Validate(),
		"warn_ratio above pass_ratio must be rejected")
}

func TestProjectConfig_IsSkipped(t *testing.T) {
	cfg := domain.ProjectConfig{Skip: []string{"documentation"}}
	assert.True(t, cfg.IsSkipped("documentation"))
	assert.False(t, cfg.IsSkipped("security"))
}
