package shift

import (
	"strconv"
	"strings"

	"shift/internal/rot"
)

// Ignore selects character classes that an alphanumeric shift leaves untouched.
type Ignore uint8

const (
	IgnoreNumbers Ignore = 1 << iota
	IgnoreLetters
)

func (i Ignore) has(flag Ignore) bool {
	return i&flag != 0
}

type class int

const (
	classOther class = iota
	classDigit
	classLetter
)

func classify(r rune) class {
	switch {
	case rot.IsDigit(r):
		return classDigit
	case rot.IsLetter(r):
		return classLetter
	default:
		return classOther
	}
}

// ForwardAlphanumeric shifts every digit and letter of text forward by
// positions. Each digit is shifted as its own number and replaced by the
// decimal form of the result. Other characters are copied as is.
//
// The state of s is updated by every shifted character, so it ends on the
// last shifted digit and letter of text. If a digit is not in the configured
// range, the scan stops and the error is returned with no output.
func (s *Shifter) ForwardAlphanumeric(text string, positions int, ignore Ignore) (string, error) {
	return s.alphanumeric(text, positions, false, ignore)
}

// BackwardAlphanumeric is the inverse of ForwardAlphanumeric.
func (s *Shifter) BackwardAlphanumeric(text string, positions int, ignore Ignore) (string, error) {
	return s.alphanumeric(text, positions, true, ignore)
}

func (s *Shifter) alphanumeric(text string, positions int, backward bool, ignore Ignore) (string, error) {
	out := &strings.Builder{}
	out.Grow(len(text))

	for _, r := range text {
		switch classify(r) {
		case classDigit:
			if ignore.has(IgnoreNumbers) {
				break
			}
			n, err := s.shiftNumber(int(r-'0'), positions, backward)
			if err != nil {
				return "", err
			}
			out.WriteString(strconv.Itoa(n))
			continue

		case classLetter:
			if ignore.has(IgnoreLetters) {
				break
			}
			out.WriteRune(s.shiftLetter(r, positions, backward))
			continue
		}

		out.WriteRune(r)
	}
	return out.String(), nil
}
