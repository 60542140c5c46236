package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <files...> [-- args...]",
	Short: "Build and execute Kush source files",
	Long:  "Builds the given files via the host C toolchain and execs the resulting binary, out of core scope per spec (the compiler's job ends at emitted C; this collaborates with cc at the boundary).",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sep := cmd.ArgsLenAtDash()
		var files, runArgs []string
		if sep < 0 {
			files = args
		} else {
			files = args[:sep]
			runArgs = args[sep:]
		}
		return runAndExec(files, runArgs)
	},
}

func runAndExec(files, runArgs []string) error {
	if err := runBuild(files); err != nil {
		return err
	}

	var cObjects []string
	for _, file := range files {
		dir := filepath.Dir(file)
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		cObjects = append(cObjects, filepath.Join(dir, base+".c"))
	}
	runtimeDir := filepath.Dir(files[0])
	cObjects = append(cObjects, filepath.Join(runtimeDir, "kush_runtime.c"))

	binary := filepath.Join(runtimeDir, "kush_out")
	cc := ccCompiler()
	ccArgs := append([]string{"-o", binary}, cObjects...)

	build := exec.Command(cc, ccArgs...)
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", cc, err)
	}

	run := exec.Command(binary, runArgs...)
	run.Stdout = os.Stdout
	run.Stderr = os.Stderr
	run.Stdin = os.Stdin
	if err := run.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("running %s: %w", binary, err)
	}
	return nil
}

func ccCompiler() string {
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	return "cc"
}
