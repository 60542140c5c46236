package cliapp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kush-lang/kushc/compiler/analyzer"
	"github.com/kush-lang/kushc/compiler/ast"
	"github.com/kush-lang/kushc/compiler/emitter"
	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/lexer"
	"github.com/kush-lang/kushc/compiler/moduleloader"
	"github.com/kush-lang/kushc/compiler/parser"
	"github.com/kush-lang/kushc/compiler/token"
	"github.com/kush-lang/kushc/compiler/types"
)

// Options controls one Compile invocation, threading every §6 flag the
// driver exposes down into the pipeline.
type Options struct {
	DumpTokens       bool
	DumpNodes        bool
	DumpFootprint    bool
	DumpInstructions bool
	CoreAPI          bool
	Logger           *zap.Logger
}

// Outcome reports one file's compile result for the driver to act on
// (print diagnostics, decide the process exit code, or proceed to
// `kushc run`'s invoke-the-toolchain step).
type Outcome struct {
	File       string
	COutput    string
	Handler    *errors.Handler
	RuntimeDir string
}

// Compile runs the full lexer -> parser -> analyzer -> emitter pipeline
// for one source file, skipping later phases once an earlier one
// reports a diagnostic of the class that phase depends on (spec §7):
// syntactic errors skip analysis, semantic errors skip emission.
func Compile(path string, loader *moduleloader.Loader, opts Options) (*Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	handler := errors.NewHandler(logger)
	outcome := &Outcome{File: path, Handler: handler}

	l := lexer.New(string(source), path, handler)
	tokens := l.ScanAll()
	if opts.DumpTokens {
		dumpTokens(tokens)
	}
	if handler.HasLexicalErrors() {
		logger.Debug("parsing despite lexical errors", zap.String("file", path))
	}

	p := parser.New(tokens, path, handler)
	mod := p.ParseModule()
	if opts.DumpNodes {
		dumpNodes(mod)
	}

	if handler.HasSyntacticErrors() {
		logger.Debug("skipping analysis: syntactic errors present", zap.String("file", path))
		return outcome, nil
	}

	if !opts.CoreAPI {
		autoImportCore(mod)
	}

	registry := types.NewPrimitives()
	a := analyzer.New(registry, loader, handler, logger)
	result := a.Analyze(mod)

	if handler.HasSemanticErrors() {
		logger.Debug("skipping emission: semantic errors present", zap.String("file", path))
		return outcome, nil
	}

	em := emitter.New(result)
	outcome.COutput = em.Emit()
	outcome.RuntimeDir = filepath.Dir(path)
	return outcome, nil
}

// autoImportCore prepends the implicit kush.core import unless the
// caller passed --core-api to suppress it (SPEC_FULL.md §2, §6).
func autoImportCore(mod *ast.Module) {
	for _, imp := range mod.Imports {
		if imp.Descriptor == "kush.core" {
			return
		}
	}
	mod.Imports = append([]*ast.Import{{Descriptor: "kush.core", Wildcard: true, Start: mod.Start, DescriptorEnd: mod.Start}}, mod.Imports...)
}

func dumpTokens(tokens []token.Token) {
	for _, t := range tokens {
		fmt.Println(t.String())
	}
}

// dumpNodes prints a flat, indented outline of the module's top-level
// declarations for the --nodes flag. It is a debugging aid, not the
// artifact format the module loader reads.
func dumpNodes(mod *ast.Module) {
	for _, imp := range mod.Imports {
		fmt.Printf("Import %s\n", imp.Descriptor)
	}
	for _, st := range mod.Structures {
		fmt.Printf("Structure %s\n", st.Name)
		for _, m := range st.Members {
			fmt.Printf("  Member %s: %s\n", m.Name, m.Type.Name)
		}
	}
	for _, fn := range mod.Functions {
		ret := "void"
		if fn.ReturnType != nil {
			ret = fn.ReturnType.Name
		}
		fmt.Printf("Function %s (native=%v) -> %s\n", fn.Name, fn.Native, ret)
	}
	for _, v := range mod.Variables {
		for _, d := range v.Declarators {
			fmt.Printf("Variable %s\n", d.Name)
		}
	}
}

// WriteOutput writes the emitted C translation unit and the minimal
// runtime shims next to it.
func WriteOutput(outcome *Outcome) error {
	base := strings.TrimSuffix(filepath.Base(outcome.File), filepath.Ext(outcome.File))
	dir := outcome.RuntimeDir
	if dir == "" {
		dir = "."
	}

	cPath := filepath.Join(dir, base+".c")
	if err := os.WriteFile(cPath, []byte(outcome.COutput), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cPath, err)
	}

	header, source := emitter.RuntimeFiles()
	if err := os.WriteFile(filepath.Join(dir, "kush_runtime.h"), []byte(header), 0o644); err != nil {
		return fmt.Errorf("writing kush_runtime.h: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "kush_runtime.c"), []byte(source), 0o644); err != nil {
		return fmt.Errorf("writing kush_runtime.c: %w", err)
	}
	return nil
}
