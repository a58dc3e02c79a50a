package parsec

import (
	"fmt"
	"strings"
)

// formatDiagnostic assembles the standard failure report:
//
//	input.calc:1:3: error: expected number
//	  1 | 1+
//	    |   ^
//	  most recently parsed token was `+` at 2..3
//
// The excerpt block is omitted when the witness has no source text.
func formatDiagnostic(name string, pos Position, excerpt string, hasExcerpt bool, msg, context string) string {
	var b strings.Builder

	if name != "" {
		b.WriteString(name)
		b.WriteString(":")
	}
	fmt.Fprintf(&b, "%d:%d: error: %s", pos.Line, pos.Column, msg)

	if hasExcerpt {
		lineNo := fmt.Sprintf("%d", pos.Line)
		gutter := strings.Repeat(" ", len(lineNo))
		fmt.Fprintf(&b, "\n  %s | %s", lineNo, excerpt)
		fmt.Fprintf(&b, "\n  %s | %s^", gutter, strings.Repeat(" ", pos.Column-1))
	}

	if context != "" {
		b.WriteString("\n  ")
		b.WriteString(context)
	}
	return b.String()
}
