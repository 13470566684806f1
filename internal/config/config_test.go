package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
catalog:
  base_url: http://localhost:8080/
  timeout: 5s
store:
  path: ""
ui:
  default_view: favorites
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "", cfg.Store.Path)
	assert.Equal(t, ViewFavorites, cfg.UI.DefaultView)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "default", cfg.UI.Theme)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TVSHELF_CATALOG_BASE_URL", "https://catalog.example.com")
	t.Setenv("TVSHELF_LOGGING_LEVEL", "DEBUG")

	cfg, err := Load(writeConfig(t, "ui:\n  theme: dark\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com", cfg.Catalog.BaseURL)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Zero(t, cfg.Catalog.Timeout)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad scheme", "catalog:\n  base_url: ftp://api.tvmaze.com\n"},
		{"no host", "catalog:\n  base_url: https://\n"},
		{"unknown view", "ui:\n  default_view: grid\n"},
		{"negative timeout", "catalog:\n  timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSave_RoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.Timeout = 10 * time.Second
	cfg.UI.DefaultView = ViewSearch
	cfg.UI.Browser = "firefox"
	cfg.UI.BrowserArgs = []string{"--new-tab"}
	cfg.Store.Path = filepath.Join(t.TempDir(), "favs.db")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
