// Package propagate enumerates every non-negative integer assignment of
// button presses that satisfies a reduced equation system, row by row.
//
// A System is a list of equations over the same set of buttons plus a
// per-button upper bound. Propagate walks the equations in order and keeps a
// CandidateSet of ConstraintRows (one optional value per button):
//
//   - a single-term row fixes its button to target/coefficient, dropping
//     candidates that already hold a different value;
//   - a multi-term row enumerates all but the last button (0..bound, or only
//     the values prior candidates agree on), solves the last button exactly
//     and merges each assignment into every surviving candidate.
//
// Every row builds a new CandidateSet; earlier sets are never modified.
// A row that leaves no candidates stops the search with an
// *UnsatisfiableError.
//
// Options mirror the traversal packages: WithContext for cancellation,
// WithMaxCandidates to cap memory, WithOnRow for tracing and WithLogger for
// debug records.
package propagate
