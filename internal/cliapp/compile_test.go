package cliapp

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/moduleloader"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.kush")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// writeEmptyCoreArtifact drops a well-formed, symbol-free kush.core.am
// under dir so tests that don't exercise import resolution itself can
// still compile through the (now wired) default auto-import.
func writeEmptyCoreArtifact(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "kush"), 0o755))

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0x4B555348))
	binary.Write(&buf, binary.BigEndian, uint16(1))
	binary.Write(&buf, binary.BigEndian, uint16(0))
	binary.Write(&buf, binary.BigEndian, uint32(0))
	binary.Write(&buf, binary.BigEndian, uint32(0))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kush", "core.am"), buf.Bytes(), 0o644))
	return dir
}

func TestCompileSuccessWritesOutput(t *testing.T) {
	path := writeSource(t, `
		i32 add(i32 a, i32 b) {
			return a + b;
		}
	`)

	loader := moduleloader.New([]string{writeEmptyCoreArtifact(t)}, errors.NewHandler(nil))
	outcome, err := Compile(path, loader, Options{})
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Handler.HasErrors())
	assert.Contains(t, outcome.COutput, "int32_t add(int32_t a, int32_t b)")

	require.NoError(t, WriteOutput(outcome))
	dir := filepath.Dir(path)
	assert.FileExists(t, filepath.Join(dir, "main.c"))
	assert.FileExists(t, filepath.Join(dir, "kush_runtime.h"))
	assert.FileExists(t, filepath.Join(dir, "kush_runtime.c"))
}

func TestCompileSyntaxErrorSkipsAnalysisAndEmission(t *testing.T) {
	path := writeSource(t, `
		broken( i32 {
	`)

	loader := moduleloader.New(nil, errors.NewHandler(nil))
	outcome, err := Compile(path, loader, Options{})
	require.NoError(t, err)
	assert.True(t, outcome.Handler.HasSyntacticErrors())
	assert.Empty(t, outcome.COutput)
}

func TestCompileSemanticErrorSkipsEmission(t *testing.T) {
	path := writeSource(t, `
		void run() {
			i32 x = undefined_name;
		}
	`)

	loader := moduleloader.New([]string{writeEmptyCoreArtifact(t)}, errors.NewHandler(nil))
	outcome, err := Compile(path, loader, Options{})
	require.NoError(t, err)
	assert.True(t, outcome.Handler.HasSemanticErrors())
	assert.Empty(t, outcome.COutput)
}

func TestCompileAutoImportsCoreUnlessSuppressed(t *testing.T) {
	path := writeSource(t, `
		void run() {
			return;
		}
	`)

	coreDir := writeEmptyCoreArtifact(t)
	withCore, err := Compile(path, moduleloader.New([]string{coreDir}, errors.NewHandler(nil)), Options{CoreAPI: false})
	require.NoError(t, err)
	assert.False(t, withCore.Handler.HasErrors())

	withoutCore, err := Compile(path, moduleloader.New(nil, errors.NewHandler(nil)), Options{CoreAPI: true})
	require.NoError(t, err)
	assert.False(t, withoutCore.Handler.HasErrors())
}

func TestCompileUnsuppressedCoreImportReportsUnknownModuleWhenMissing(t *testing.T) {
	path := writeSource(t, `
		void run() {
			return;
		}
	`)

	loader := moduleloader.New(nil, errors.NewHandler(nil))
	outcome, err := Compile(path, loader, Options{CoreAPI: false})
	require.NoError(t, err)
	require.True(t, outcome.Handler.HasGeneralErrors())
	assert.Equal(t, errors.UnknownModule, outcome.Handler.Errors()[0].Code)
}

func TestCompileMissingFileReturnsError(t *testing.T) {
	loader := moduleloader.New(nil, errors.NewHandler(nil))
	_, err := Compile(filepath.Join(t.TempDir(), "missing.kush"), loader, Options{})
	assert.Error(t, err)
}
