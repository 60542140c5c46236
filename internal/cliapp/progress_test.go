package cliapp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarAdvanceReachesFull(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 2)
	bar.Advance("a.kush")
	bar.Advance("b.kush")
	bar.Finish()

	out := buf.String()
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "b.kush")
}

func TestProgressBarClampsPastTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 1)
	bar.Advance("a.kush")
	bar.Advance("a.kush")
	assert.Equal(t, 1, bar.current)
}
