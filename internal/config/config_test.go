package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := &Config{
		VibeAPIURL:          "http://localhost:52948",
		SyncIntervalSeconds: 120,
		IssueLimit:          50,
		Projects: []ProjectMapping{
			{GitHubRepo: "octocat/hello-world", VibeProjectID: "p-1"},
			{GitHubRepo: "octocat/spoon-knife", VibeProjectID: "p-2"},
		},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_DefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"projects":[]}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.VibeAPIURL)
	assert.Equal(t, DefaultIntervalSeconds, cfg.SyncIntervalSeconds)
	assert.Equal(t, DefaultIssueLimit, cfg.IssueLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VIBESYNC_API_URL", "http://localhost:8080")
	t.Setenv("VIBESYNC_INTERVAL_SECONDS", "15")
	t.Setenv("VIBESYNC_ISSUE_LIMIT", "not-a-number")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vibe_api_url":"http://localhost:3000","issue_limit":25}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.VibeAPIURL)
	assert.Equal(t, 15, cfg.SyncIntervalSeconds)
	assert.Equal(t, 25, cfg.IssueLimit, "invalid override is ignored")
}

func TestResolvePath_FlagWins(t *testing.T) {
	path, err := ResolvePath("/tmp/custom.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", path)
}
