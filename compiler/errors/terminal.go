package errors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	severityColor = color.New(color.FgRed, color.Bold)
	locationColor = color.New(color.FgHiBlack)
	codeColor     = color.New(color.FgYellow)
)

// WriteTerminal renders every diagnostic in h to w, one per line, colored
// when the process's stdout is a terminal, whatever w is (fatih/color
// auto-detects via its own NoColor logic; this package never overrides
// it, matching the rest of the pack leaving color detection to the
// library).
func (h *Handler) WriteTerminal(w io.Writer) {
	for _, e := range h.errors {
		severityColor.Fprint(w, "[error]")
		fmt.Fprint(w, " ")
		if e.Token.File != "" {
			locationColor.Fprintf(w, "%s:%d:%d", e.Token.File, e.Token.Start.Line, e.Token.Start.Column)
			fmt.Fprint(w, ": ")
		}
		codeColor.Fprintf(w, "%s", e.Code)
		fmt.Fprintf(w, ": %s\n", e.text())
	}
}
