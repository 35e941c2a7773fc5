package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/joltage/matrix"
	"github.com/katalvlaran/joltage/propagate"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrOverflow aliases matrix.ErrOverflow.
	ErrOverflow = matrix.ErrOverflow

	// ErrUnsatisfiable aliases propagate.ErrUnsatisfiable.
	ErrUnsatisfiable = propagate.ErrUnsatisfiable

	// ErrInvariantViolation reports an internal consistency failure.
	ErrInvariantViolation = errors.New("solver: invariant violation")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")
)

const (
	opSolve    = "Solve"
	opMinimize = "Minimize"
	opVerify   = "Verify"
	opSolveAll = "SolveAll"
)

// InvariantError reports a candidate with an unset column. Column is -1 when
// the failure is not tied to one column.
type InvariantError struct {
	Candidate int
	Column    int
	Reason    string
}

func (e *InvariantError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("solver: candidate %d: %s", e.Candidate, e.Reason)
	}

	return fmt.Sprintf("solver: candidate %d column %d: %s", e.Candidate, e.Column, e.Reason)
}

// Is reports whether target is ErrInvariantViolation.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// solverErrorf wraps err with an operation tag.
func solverErrorf(tag string, err error) error {
	return fmt.Errorf("solver.%s: %w", tag, err)
}
