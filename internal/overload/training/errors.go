package training

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError lists every rejected field of a request.
type InvalidInputError struct {
	Problems error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Problems)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *InvalidInputError) Unwrap() error {
	return e.Problems
}

// Validator collects input problems, so the caller gets all of them at once.
type Validator struct {
	problems error
}

func (v *Validator) Check(ok bool, format string, args ...any) {
	if !ok {
		v.problems = multierr.Append(v.problems, fmt.Errorf(format, args...))
	}
}

// Err returns nil when no check failed.
func (v *Validator) Err() error {
	if v.problems == nil {
		return nil
	}
	return &InvalidInputError{Problems: v.problems}
}

func NewInvalidInput(format string, args ...any) error {
	return &InvalidInputError{Problems: fmt.Errorf(format, args...)}
}
