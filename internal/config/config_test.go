package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FUNDWISE_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8010, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 70.0, cfg.Advisor.WeightImbalance)
	assert.Equal(t, 30.0, cfg.Advisor.WeightDiscount)
	assert.True(t, cfg.Advisor.SequentialAllocation)
	assert.Equal(t, 1.0, cfg.MinContribution)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FUNDWISE_DATA_DIR", t.TempDir())
	t.Setenv("FUNDWISE_PORT", "9100")
	t.Setenv("ADVISOR_WEIGHT_IMBALANCE", "55")
	t.Setenv("ADVISOR_WEIGHT_DISCOUNT", "45")
	t.Setenv("ADVISOR_SEQUENTIAL", "false")
	t.Setenv("MIN_CONTRIBUTION", "250")
	t.Setenv("MAX_CONTRIBUTION", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 55.0, cfg.Advisor.WeightImbalance)
	assert.Equal(t, 45.0, cfg.Advisor.WeightDiscount)
	assert.False(t, cfg.Advisor.SequentialAllocation)
	assert.Equal(t, 250.0, cfg.MinContribution)
	assert.Equal(t, 5000.0, cfg.MaxContribution)
}

func TestLoad_RejectsInvalidBounds(t *testing.T) {
	t.Setenv("FUNDWISE_DATA_DIR", t.TempDir())
	t.Setenv("MIN_CONTRIBUTION", "1000")
	t.Setenv("MAX_CONTRIBUTION", "10")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CONTRIBUTION")
}

func TestLoad_RejectsInvalidAdvisorDefaults(t *testing.T) {
	t.Setenv("FUNDWISE_DATA_DIR", t.TempDir())
	t.Setenv("ADVISOR_WEIGHT_IMBALANCE", "150")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "advisor defaults")
}
