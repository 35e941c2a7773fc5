// Package machine models a button-and-counter machine and parses the
// puzzle text that describes it.
//
// What
//
//   - Vector: a fixed 16-lane int64 vector. Lanes past the active length stay zero.
//   - Machine: indicator goal, button columns (input order preserved) and the
//     joltage target vector with its active row count.
//   - Parse / ParseLine / ParseReader: turn puzzle lines into machines.
//
// Line format
//
//	[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//
//   - [...]  indicator goal, '.' = off, '#' = on.
//   - (...)  one button: the counter indices it increments by one per press.
//   - {...}  joltage targets, one per counter row, in row order.
//
// Errors
//
//   - ErrParse wraps every syntax problem; a *ParseError carries the line
//     number and the offending token.
//   - ErrTooManyLanes when a machine exceeds MaxLanes buttons, lights or counters.
//   - ErrLaneRange when a button references a counter outside the target vector.
//
// Machines are immutable after construction; solvers work on Clone().
package machine
