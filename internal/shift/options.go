package shift

import (
	"fmt"
	"strings"
)

// Direction is the direction of a shift.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "forward" or "backward" (or "f"/"b"), ignoring case.
// The empty string is Forward.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "f", "forward":
		return Forward, nil
	case "b", "backward", "backwards":
		return Backward, nil
	default:
		return 0, fmt.Errorf("shift: unknown direction %q", s)
	}
}

// Options describes a single alphanumeric transform.
type Options struct {
	Positions int
	Direction Direction
	Ignore    Ignore
}

// Transform applies ForwardAlphanumeric or BackwardAlphanumeric to text
// according to opts.
func (s *Shifter) Transform(text string, opts Options) (string, error) {
	switch opts.Direction {
	case Forward:
		return s.ForwardAlphanumeric(text, opts.Positions, opts.Ignore)
	case Backward:
		return s.BackwardAlphanumeric(text, opts.Positions, opts.Ignore)
	default:
		return "", fmt.Errorf("shift: transform: invalid direction %v", opts.Direction)
	}
}
