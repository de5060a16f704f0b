package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "journal.db", cfg.Database.DSN)
	assert.Equal(t, []float64{1, 1.5, 2}, cfg.Journal.RiskPercents)
	assert.Equal(t, 30, cfg.Alerts.PollInterval)
	assert.Equal(t, 20, cfg.News.MaxItems)
	assert.Equal(t, "https://api.binance.com/api/v3", cfg.Market.BaseURL)
}

func TestLoadConfig_FileValues(t *testing.T) {
	dir := writeConfig(t, `
database:
  dsn: "file::memory:"
logger:
  level: debug
  format: json
journal:
  risk_percents: [0.5, 1]
  break_even_tolerance: 0.01
news:
  sources:
    - name: desk
      url: http://example.com/news
      item_selector: article
      title_selector: h2
      link_selector: a
`)

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, "file::memory:", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, []float64{0.5, 1}, cfg.Journal.RiskPercents)
	assert.InDelta(t, 0.01, cfg.Journal.BreakEvenTolerance, 1e-12)
	require.Len(t, cfg.News.Sources, 1)
	assert.Equal(t, "desk", cfg.News.Sources[0].Name)
	assert.Equal(t, "article", cfg.News.Sources[0].ItemSelector)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "TradeJournal", cfg.Alerts.BotName)
	assert.Zero(t, cfg.Journal.BreakEvenTolerance)
}
