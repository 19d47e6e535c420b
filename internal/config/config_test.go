package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := loadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data-file = "~/todo/tasks.json"
theme = "neon"
no-color = true
`), 0o644))

	cfg, err := loadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "~/todo/tasks.json", cfg.DataFile)
	assert.Equal(t, "neon", cfg.Theme)
	assert.True(t, cfg.NoColor)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = [broken"), 0o644))

	_, err := loadFile(path)
	assert.Error(t, err)
}

func TestResolveDataFile_Precedence(t *testing.T) {
	cfg := &Config{DataFile: "/from/config.json"}

	// Flag wins over everything.
	t.Setenv(EnvDataFile, "/from/env.json")
	got, err := cfg.ResolveDataFile("/from/flag.json")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.json", got)

	// Env wins over config.
	got, err = cfg.ResolveDataFile("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", got)

	// Config wins over the default.
	t.Setenv(EnvDataFile, "")
	got, err = cfg.ResolveDataFile("")
	require.NoError(t, err)
	assert.Equal(t, "/from/config.json", got)
}

func TestResolveDataFile_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv(EnvDataFile, "")
	cfg := &Config{DataFile: "~/todo/tasks.json"}
	got, err := cfg.ResolveDataFile("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "todo", "tasks.json"), got)
}
