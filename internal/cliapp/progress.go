package cliapp

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar renders a determinate progress bar across a multi-file
// `kushc build` invocation, adapted from the teacher's CLI progress
// indicator (trimmed to the synchronous, no-goroutine case: this
// driver compiles one file at a time, so there is no concurrent
// writer to guard against).
type ProgressBar struct {
	writer  io.Writer
	total   int
	current int
	width   int
}

// NewProgressBar builds a bar over total steps, writing to w.
func NewProgressBar(w io.Writer, total int) *ProgressBar {
	return &ProgressBar{writer: w, total: total, width: 30}
}

// Advance marks one more file compiled and redraws the bar, labelling
// the line with the file just finished.
func (p *ProgressBar) Advance(file string) {
	p.current++
	if p.current > p.total {
		p.current = p.total
	}
	p.render(file)
}

// Finish completes the bar and moves to a fresh line.
func (p *ProgressBar) Finish() {
	fmt.Fprintln(p.writer)
}

func (p *ProgressBar) render(file string) {
	if p.total == 0 {
		return
	}

	percent := float64(p.current) / float64(p.total)
	filled := int(float64(p.width) * percent)

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)

	var bar strings.Builder
	bar.WriteString("[")
	cyan.Fprint(&bar, strings.Repeat("=", filled))
	gray.Fprint(&bar, strings.Repeat(".", p.width-filled))
	bar.WriteString("]")

	fmt.Fprintf(p.writer, "\r%s %3d%% %s", bar.String(), int(percent*100), file)
}
