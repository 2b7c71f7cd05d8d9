package render

import (
	"fmt"
	"io"

	"github.com/vovakirdan/wallrow/internal/core"
	"github.com/vovakirdan/wallrow/internal/state"
)

// ConsoleWriter prints the plain-text board after every notification.
// It implements match.Observer.
type ConsoleWriter struct {
	w io.Writer
}

// NewConsoleWriter creates an observer writing to w.
func NewConsoleWriter(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{w: w}
}

// Observe implements match.Observer.
func (c *ConsoleWriter) Observe(v state.View) {
	fmt.Fprintln(c.w, Text(v))
	fmt.Fprintln(c.w)
}

// Text returns the board of v as plain text without colors.
func Text(v state.View) string {
	w, h := Size(v)
	scr := core.NewScreen(w, h)
	Draw(scr, v, nil)
	return scr.String()
}
