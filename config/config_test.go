package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jfrag.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 100, cfg.Server.History)
	assert.Equal(t, "text", cfg.Output.Format)
	require.NotNil(t, cfg.Output.Color)
	assert.True(t, *cfg.Output.Color)
	assert.Nil(t, cfg.LogPath())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"

[log]
verbosity = 2
file = "/tmp/jfrag.log"

[output]
format = "yaml"
color = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 100, cfg.Server.History)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	require.NotNil(t, cfg.LogPath())
	assert.Equal(t, "/tmp/jfrag.log", *cfg.LogPath())
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.False(t, *cfg.Output.Color)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[server\naddr = 1", "failed to parse config"},
		{"unknown key", "[server]\nport = 80", "unknown config key"},
		{"bad format", "[output]\nformat = \"xml\"", "output format"},
		{"negative history", "[server]\nhistory = -1", "history"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestResolveFromEnv(t *testing.T) {
	path := writeConfig(t, "[server]\naddr = \":9999\"")
	t.Setenv(EnvPath, path)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestResolveExplicitPathWins(t *testing.T) {
	t.Setenv(EnvPath, writeConfig(t, "[server]\naddr = \":1\""))
	path := writeConfig(t, "[server]\naddr = \":2\"")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, ":2", cfg.Server.Addr)
}

func TestResolveWithoutFile(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
