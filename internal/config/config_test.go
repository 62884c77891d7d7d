package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Pool.Concurrency)
	assert.Equal(t, []string{"google", "bing"}, cfg.Search.Engines)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 2000, cfg.Search.EngineDelayMin)
	assert.Equal(t, 4000, cfg.Search.EngineDelayMax)
	assert.Equal(t, 1000, cfg.Fetch.DelayMin)
	assert.Equal(t, 3000, cfg.Fetch.DelayMax)
	assert.InDelta(t, 0.3, cfg.Score.Threshold, 0.0001)
	assert.InDelta(t, 0.4, cfg.Score.EmailNameToken, 0.0001)
	assert.InDelta(t, -0.2, cfg.Score.EmailGenericPenalty, 0.0001)
	assert.InDelta(t, 0.5, cfg.Score.PhoneVerbatim, 0.0001)
	assert.Equal(t, "https://r.jina.ai", cfg.Jina.BaseURL)
	assert.Equal(t, "outreach.db", cfg.Store.Path)
	assert.True(t, cfg.Debug.Annex)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OUTREACH_POOL_CONCURRENCY", "8")
	t.Setenv("OUTREACH_SCORE_THRESHOLD", "0.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Pool.Concurrency)
	assert.InDelta(t, 0.5, cfg.Score.Threshold, 0.0001)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	require.Error(t, err)
}
