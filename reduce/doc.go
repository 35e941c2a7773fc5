// Package reduce turns a machine's button/counter system into an equivalent
// row-echelon integer system and compacts it for the constraint search.
//
// What
//
//   - Reduce: fraction-free Gaussian elimination on the transposed system
//     (rows = counters, columns = buttons) with its target column. Pivot
//     rows are sign-normalised, other rows are cross-scaled and subtracted,
//     then every row is deflated by its gcd. No division ever loses a
//     remainder, so the integer solution set is preserved exactly.
//   - Compact: drops all-zero rows and orders the rest by ascending number
//     of nonzero coefficients so the search branches on the tightest rows
//     first.
//
// Errors
//
//   - matrix.ErrOverflow when an intermediate value leaves int64.
//   - ErrInconsistent when a row reduces to 0 = t with t ≠ 0.
//   - ErrOptionViolation for invalid options.
//
// Complexity
//
//	Reduce runs O(min(R,C) · R · C) checked operations for R rows and C
//	buttons (both ≤ 16); Compact is O(R·C + R log R).
package reduce
