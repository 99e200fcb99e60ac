package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shift/internal/shift"
)

func TestLines(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = fmt.Sprintf("abc-%d", i%10)
	}

	out, err := Lines(context.Background(), lines, shift.Options{Positions: 1}, nil, 8)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := len(out), len(lines); have != want {
		t.Fatalf("len = %d, want %d", have, want)
	}
	for i, line := range out {
		if have, want := line, fmt.Sprintf("bcd-%d", i%10+1); have != want {
			t.Fatalf("line %d = %q, want %q", i, have, want)
		}
	}
}

func TestLinesIndependentState(t *testing.T) {
	out, err := Lines(context.Background(), []string{"a", "b", "c"}, shift.Options{Positions: 2, Direction: shift.Backward}, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if have, want := fmt.Sprint(out), "[y z a]"; have != want {
		t.Fatalf("out = %s, want %s", have, want)
	}
}

func TestLinesError(t *testing.T) {
	rng, err := shift.NewRange([]int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	out, err := Lines(context.Background(), []string{"a1", "b2", "c7"}, shift.Options{Positions: 1}, rng, 0)
	if !errors.Is(err, shift.ErrNotInRange) {
		t.Fatalf("error = %v, want ErrNotInRange", err)
	}
	if out != nil {
		t.Fatalf("out = %v, want nil", out)
	}
}

func TestLinesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Lines(ctx, []string{"a", "b"}, shift.Options{Positions: 1}, nil, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
