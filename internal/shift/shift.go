// Package shift implements a stateful Caesar-style shifter for ASCII letters
// and decimal numbers.
//
// A Shifter remembers the last letter and the last number it produced, so
// NextLetter, PreviousLetter, NextNumber and PreviousNumber continue from
// the most recent result. Letter state and number state are independent.
//
// A Shifter is not safe for concurrent use.
package shift

import (
	"errors"
	"fmt"

	"shift/internal/rot"
)

// ErrNotLetter is returned when a state holds something other than an ASCII letter.
var ErrNotLetter = errors.New("not an ASCII letter")

const (
	defaultLetter = 'z'
	defaultNumber = 0
)

// State is a snapshot of the continuation state of a Shifter.
type State struct {
	Letter rune `json:"letter"`
	Number int  `json:"number"`
}

// DefaultState is the state of a freshly constructed Shifter.
func DefaultState() State {
	return State{Letter: defaultLetter, Number: defaultNumber}
}

type Shifter struct {
	letter rune
	number int
	rng    *Range
}

// New returns a Shifter. A nil rng means numbers shift with plain integer
// arithmetic.
func New(rng *Range) *Shifter {
	return &Shifter{
		letter: defaultLetter,
		number: defaultNumber,
		rng:    rng,
	}
}

// Range returns the numeric range of s, or nil.
func (s *Shifter) Range() *Range {
	return s.rng
}

func (s *Shifter) State() State {
	return State{Letter: s.letter, Number: s.number}
}

// Restore replaces the continuation state of s.
func (s *Shifter) Restore(st State) error {
	if !rot.IsLetter(st.Letter) {
		return fmt.Errorf("shift: restore letter %q: %w", st.Letter, ErrNotLetter)
	}
	s.letter = st.Letter
	s.number = st.Number
	return nil
}

// ForwardLetter shifts r forward by positions, preserving case.
// r must be an ASCII letter.
func (s *Shifter) ForwardLetter(r rune, positions int) rune {
	return s.shiftLetter(r, positions, false)
}

// BackwardLetter shifts r backward by positions, preserving case.
// r must be an ASCII letter.
func (s *Shifter) BackwardLetter(r rune, positions int) rune {
	return s.shiftLetter(r, positions, true)
}

func (s *Shifter) NextLetter() rune {
	return s.ForwardLetter(s.letter, 1)
}

func (s *Shifter) PreviousLetter() rune {
	return s.BackwardLetter(s.letter, 1)
}

// ForwardNumber shifts n forward by positions. With a range configured, n
// must be a member of it and the result wraps within the range.
func (s *Shifter) ForwardNumber(n, positions int) (int, error) {
	return s.shiftNumber(n, positions, false)
}

// BackwardNumber shifts n backward by positions. With a range configured, n
// must be a member of it and the result wraps within the range.
func (s *Shifter) BackwardNumber(n, positions int) (int, error) {
	return s.shiftNumber(n, positions, true)
}

func (s *Shifter) NextNumber() (int, error) {
	return s.ForwardNumber(s.number, 1)
}

func (s *Shifter) PreviousNumber() (int, error) {
	return s.BackwardNumber(s.number, 1)
}

// shiftLetter reduces positions before negating it, so any int is exact.
func (s *Shifter) shiftLetter(r rune, positions int, backward bool) rune {
	if backward {
		positions = rot.Neg(positions, rot.AlphabetLen)
	}
	s.letter = rot.Letter(r, positions)
	return s.letter
}

// shiftNumber without a range uses plain int arithmetic, which wraps on overflow.
func (s *Shifter) shiftNumber(n, positions int, backward bool) (int, error) {
	if s.rng == nil {
		if backward {
			s.number = n - positions
		} else {
			s.number = n + positions
		}
		return s.number, nil
	}

	v, err := s.rng.shift(n, positions, backward)
	if err != nil {
		return 0, err
	}
	s.number = v
	return s.number, nil
}
