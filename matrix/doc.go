// SPDX-License-Identifier: MIT

// Package matrix provides an exact integer matrix for fraction-free
// elimination.
//
// What:
//
//   - Dense: row-major int64 matrix with a flat backing slice and safe
//     At/Set accessors (ErrOutOfRange instead of panics).
//   - Row kernels: SwapRows, NegateRow, ScaleRow, SubRow, CountNonZero.
//   - Checked scalar arithmetic (Mul, Sub, Add, Neg, Abs): every kernel
//     reports ErrOverflow instead of wrapping silently.
//   - GCD deflation: RowGCD and DeflateRow divide a row together with its
//     right-hand side by their greatest common divisor. Deflation is
//     idempotent.
//
// Why:
//
//	Elimination over the integers grows magnitudes quickly. Keeping every
//	operation checked turns an otherwise silent wrap-around into a
//	reportable error, and deflating after each pass keeps entries small.
//
// Determinism:
//
//	All kernels walk rows and columns in fixed ascending order and never
//	allocate inside loops.
//
// Complexity quicksheet:
//
//   - NewDense: O(r*c); At/Set: O(1); Clone/Transpose: O(r*c).
//   - Row kernels: O(c). RowGCD/DeflateRow: O(c·log max|a|).
package matrix
