package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommandRuns(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	// version.go writes via fmt.Printf to stdout rather than cmd.OutOrStdout,
	// matching the teacher's version command; this test only asserts the
	// command executes without panicking.
	assert.NotNil(t, versionCmd.Run)
}

func TestCompletionCommandRejectsUnknownShell(t *testing.T) {
	err := completionCmd.Args(completionCmd, []string{"tcsh"})
	assert.Error(t, err)
}

func TestCompletionCommandAcceptsBash(t *testing.T) {
	err := completionCmd.Args(completionCmd, []string{"bash"})
	assert.NoError(t, err)
}
