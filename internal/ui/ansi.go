package ui

import (
	"fmt"
	"io"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

// OK prints a success line.
func (t Theme) OK(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Success.Render(symCheck+" "+msg))
}

// Fail prints an error line.
func (t Theme) Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Error.Render(symCross+" "+msg))
}

// Hint prints a muted follow-up line.
func (t Theme) Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Muted.Render("Hint: "+msg))
}
