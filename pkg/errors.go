package tinyc

import (
	"errors"
	"fmt"
)

var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrIndexOutOfRange   = errors.New("array index out of range")
	ErrDimensionMismatch = errors.New("wrong number of array indices")
	ErrArrayTooLarge     = errors.New("array too large")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrNotAssignable     = errors.New("expression is not assignable")
	ErrNotAValue         = errors.New("expression has no value")
	ErrNegativeShift     = errors.New("negative shift count")
	ErrFeedExhausted     = errors.New("input feed exhausted")
	ErrCallDepth         = errors.New("maximum call depth exceeded")
)

// ParseError is raised when the next lexeme is not the one the grammar requires.
type ParseError struct {
	Loc      *Location
	Expected string
	Found    Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Loc, e.Expected, e.Found)
}

type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: want %d arguments, got %d", e.Name, e.Want, e.Got)
}

// RuntimeError ties an evaluation failure to the function it happened in.
type RuntimeError struct {
	Func string
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("in %s: %s", e.Func, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
