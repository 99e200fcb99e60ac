// Package rec turns panics at command boundaries into errors.
package rec

import (
	"fmt"
	"runtime/debug"
)

// Panic wraps a recovered panic value together with the stack it was raised on.
type Panic struct {
	Value any
	Stack []byte
}

func (p *Panic) Error() string {
	return fmt.Sprintf("recovered panic: %v\n%s", p.Value, p.Stack)
}

func (p *Panic) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

func rec(r any) error {
	if r == nil {
		return nil
	}
	return &Panic{Value: r, Stack: debug.Stack()}
}

// Error recovers a panic and assigns it to the provided error.
// It must be called directly by defer.
func Error(err *error) {
	if r := rec(recover()); r != nil {
		*err = r
	}
}

// Wrap recovers a panic with the provided format and arguments
// and assigns it to the provided error.
// The recovered panic is appended to the end of the arguments.
// If no panic was recovered, but the error is not nil, it is wrapped
// with the provided format and arguments as well.
// It must be called directly by defer.
func Wrap(err *error, format string, a ...any) {
	if r := rec(recover()); r != nil {
		*err = fmt.Errorf(format, append(a, r)...)
	} else if *err != nil {
		*err = fmt.Errorf(format, append(a, *err)...)
	}
}
