// Package solver finds the minimum number of button presses for a machine
// and runs batches of machines in parallel.
//
// The joltage part runs the exact pipeline
//
//	reduce.Reduce → reduce.Compact → propagate.Propagate → Minimize → Verify
//
// on a copy of the machine. The indicator part delegates to
// indicator.MinPresses. Solve handles one machine; SolveAll and SolveText
// handle many, keeping input order and recording each machine's error
// without stopping the others.
//
// Errors
//
//   - ErrOverflow: an intermediate value left int64.
//   - ErrUnsatisfiable: no non-negative integer solution exists
//     (*propagate.UnsatisfiableError or reduce.ErrInconsistent).
//   - ErrInvariantViolation: a candidate that should be complete is not, or
//     the winner does not satisfy the original equations (*InvariantError).
//   - machine.ErrParse: per line, from SolveText.
package solver
