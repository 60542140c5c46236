package cliapp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, cfg.ImportPaths)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.CoreAPI)
}

func TestLoadReadsProjectConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	content := "log_level: debug\ncore_api: false\nimport_path:\n  - vendor\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kush.yaml"), []byte(content), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.CoreAPI)
	assert.Equal(t, []string{"vendor"}, cfg.ImportPaths)
}

func TestLoadHonorsImportPathEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("KUSHC_IMPORT_PATH", "a:b:c")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.ImportPaths)
}
