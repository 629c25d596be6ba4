// internal/progress/progress.go

// Package progress writes a status line that is overwritten in place,
// for long batched operations on an interactive stream.
package progress

import (
	"fmt"
	"io"
	"strings"
)

// lineWidth pads every status line to a fixed width so a shorter update
// fully overwrites its predecessor.
const lineWidth = 96

// Line renders in-place status updates to w. A nil writer disables output,
// which keeps callers free of conditionals.
type Line struct {
	w      io.Writer
	active bool
}

// New returns a Line writing to w.
func New(w io.Writer) *Line {
	return &Line{w: w}
}

// Statusf overwrites the current status line.
func (l *Line) Statusf(format string, args ...any) {
	if l.w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if len(msg) < lineWidth {
		msg += strings.Repeat(" ", lineWidth-len(msg))
	}
	fmt.Fprintf(l.w, "%s\r", msg)
	l.active = true
}

// Done terminates the status line with a newline, if one was written.
func (l *Line) Done() {
	if l.w == nil || !l.active {
		return
	}
	fmt.Fprintln(l.w)
	l.active = false
}
