package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCCCompilerDefaultsToCC(t *testing.T) {
	old, had := os.LookupEnv("CC")
	os.Unsetenv("CC")
	defer func() {
		if had {
			os.Setenv("CC", old)
		}
	}()

	assert.Equal(t, "cc", ccCompiler())
}

func TestCCCompilerHonorsEnv(t *testing.T) {
	old, had := os.LookupEnv("CC")
	os.Setenv("CC", "clang")
	defer func() {
		if had {
			os.Setenv("CC", old)
		} else {
			os.Unsetenv("CC")
		}
	}()

	assert.Equal(t, "clang", ccCompiler())
}
