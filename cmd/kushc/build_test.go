package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKushFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// withCoreAPISuppressed toggles the --core-api flag's backing variable
// for a single test, restoring it afterward. runBuild reads the
// package-level flag vars directly rather than through cobra's parser
// when called from a test, so tests that don't exercise kush.core
// resolution suppress the auto-import this way.
func withCoreAPISuppressed(t *testing.T) {
	t.Helper()
	buildCoreAPI = true
	t.Cleanup(func() { buildCoreAPI = false })
}

func TestRunBuildSucceedsAndWritesC(t *testing.T) {
	withCoreAPISuppressed(t)
	dir := t.TempDir()
	old, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(old)

	path := writeKushFile(t, dir, "main.kush", `
		i32 add(i32 a, i32 b) {
			return a + b;
		}
	`)

	err := runBuild([]string{path})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "main.c"))
	assert.FileExists(t, filepath.Join(dir, "kush_runtime.c"))
}

func TestRunBuildReportsErrorForBadSource(t *testing.T) {
	withCoreAPISuppressed(t)
	dir := t.TempDir()
	old, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(old)

	path := writeKushFile(t, dir, "bad.kush", `broken( i32 {`)

	err := runBuild([]string{path})
	assert.Error(t, err)
}

func TestRunBuildReportsErrorForMissingFile(t *testing.T) {
	withCoreAPISuppressed(t)
	dir := t.TempDir()
	old, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(old)

	err := runBuild([]string{filepath.Join(dir, "missing.kush")})
	assert.Error(t, err)
}
