package solver

import (
	"fmt"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/matrix"
	"github.com/katalvlaran/joltage/propagate"
)

// Minimize returns the smallest press total in set and a copy of the first
// candidate reaching it. Every candidate must be complete.
func Minimize(set propagate.CandidateSet) (int64, propagate.ConstraintRow, error) {
	if len(set) == 0 {
		return 0, nil, solverErrorf(opMinimize, ErrUnsatisfiable)
	}

	best, winner := int64(0), -1
	for i, cand := range set {
		var sum int64
		for j, c := range cand {
			v, ok := c.Value()
			if !ok {
				return 0, nil, solverErrorf(opMinimize, &InvariantError{Candidate: i, Column: j, Reason: "unset column after propagation"})
			}
			var err error
			if sum, err = matrix.Add(sum, v); err != nil {
				return 0, nil, solverErrorf(opMinimize, err)
			}
		}
		if winner < 0 || sum < best {
			best, winner = sum, i
		}
	}

	return best, set[winner].Clone(), nil
}

// Verify substitutes presses into every counter equation of m.
func Verify(m machine.Machine, presses []int64) error {
	if len(presses) != len(m.Buttons) {
		return solverErrorf(opVerify, &InvariantError{Column: -1,
			Reason: fmt.Sprintf("%d press counts for %d buttons", len(presses), len(m.Buttons))})
	}
	for j, p := range presses {
		if p < 0 {
			return solverErrorf(opVerify, &InvariantError{Column: j, Reason: "negative press count"})
		}
	}
	for i := 0; i < m.Rows; i++ {
		var sum int64
		for j, p := range presses {
			term, err := matrix.Mul(m.Coefficient(i, j), p)
			if err != nil {
				return solverErrorf(opVerify, err)
			}
			if sum, err = matrix.Add(sum, term); err != nil {
				return solverErrorf(opVerify, err)
			}
		}
		if sum != m.Joltage[i] {
			return solverErrorf(opVerify, &InvariantError{Column: -1,
				Reason: fmt.Sprintf("counter %d reaches %d, want %d", i, sum, m.Joltage[i])})
		}
	}

	return nil
}
