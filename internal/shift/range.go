package shift

import (
	"errors"
	"fmt"
	"slices"

	"shift/internal/rot"
)

var (
	// ErrNotInRange is returned when a number is shifted over a range it is not a member of.
	ErrNotInRange = errors.New("value not in range")

	// ErrDuplicate is returned when a range lists the same value twice.
	ErrDuplicate = errors.New("duplicate value in range")
)

// Range is a fixed cyclic domain of integers. Shifting moves along the
// insertion order of the values, wrapping at both ends.
type Range struct {
	values []int
	index  map[int]int
}

// NewRange builds a Range from values. It returns nil for an empty list,
// which a Shifter treats as "no range".
func NewRange(values []int) (*Range, error) {
	if len(values) == 0 {
		return nil, nil
	}

	index := make(map[int]int, len(values))
	for i, v := range values {
		if _, ok := index[v]; ok {
			return nil, fmt.Errorf("shift: range value %d: %w", v, ErrDuplicate)
		}
		index[v] = i
	}

	return &Range{
		values: slices.Clone(values),
		index:  index,
	}, nil
}

// Len returns the number of values in the range.
func (r *Range) Len() int {
	if r == nil {
		return 0
	}
	return len(r.values)
}

// Values returns a copy of the range values in cycle order.
func (r *Range) Values() []int {
	if r == nil {
		return nil
	}
	return slices.Clone(r.values)
}

// Contains reports whether v is a member of the range.
func (r *Range) Contains(v int) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[v]
	return ok
}

func (r *Range) shift(v, positions int, backward bool) (int, error) {
	i, ok := r.index[v]
	if !ok {
		return 0, fmt.Errorf("shift: %d: %w", v, ErrNotInRange)
	}

	m := len(r.values)
	var d int
	if backward {
		d = rot.Neg(positions, m)
	} else {
		d = rot.Mod(positions, m)
	}
	return r.values[(i+d)%m], nil
}
