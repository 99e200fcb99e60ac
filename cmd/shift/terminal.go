package main

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminal holds the standard streams of a command and whether each one is
// attached to a terminal.
type terminal struct {
	in     io.Reader
	out    io.Writer
	inTTY  bool
	outTTY bool
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{
		in:     in,
		out:    out,
		inTTY:  isTerminal(in),
		outTTY: isTerminal(out),
	}
}

// piped reports whether input is being piped in, as in `echo abc | shift`.
func (t *terminal) piped() bool {
	return !t.inTTY
}

func (t *terminal) readAll() (string, error) {
	b, err := io.ReadAll(t.in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// write prints s, followed by a newline only when output goes to a terminal.
func (t *terminal) write(s string) error {
	if t.outTTY {
		s += "\n"
	}
	_, err := io.WriteString(t.out, s)
	return err
}
