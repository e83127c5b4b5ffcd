package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.CheckInterval)
	assert.Equal(t, 4*time.Hour, cfg.CooldownWindow)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2, cfg.MaxAlertsPerRun)
	assert.Equal(t, 8, cfg.BatchSize)
	assert.NotEmpty(t, cfg.RedditSubreddits)
	assert.NotEmpty(t, cfg.YahooTickers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHECK_INTERVAL", "30m")
	t.Setenv("MAX_ALERTS_PER_RUN", "5")
	t.Setenv("REDDIT_SUBREDDITS", "stocks, investing ,")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.CheckInterval)
	assert.Equal(t, 5, cfg.MaxAlertsPerRun)
	assert.Equal(t, []string{"stocks", "investing"}, cfg.RedditSubreddits)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CHECK_INTERVAL", "soon")
	t.Setenv("MAX_ALERTS_PER_RUN", "many")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.CheckInterval)
	assert.Equal(t, 2, cfg.MaxAlertsPerRun)
}
