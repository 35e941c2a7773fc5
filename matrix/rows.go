// SPDX-License-Identifier: MIT

// Package matrix - in-place row kernels for elimination.
//
// Purpose:
//   - Elementary row operations over *Dense, each paired with an optional
//     right-hand side slice so the augmented column travels with its row.
//   - Every arithmetic kernel is checked; on ErrOverflow the row may be
//     partially updated and the caller must discard the matrix.
//
// Determinism:
//   - Columns are visited in ascending order; the rhs entry last.

package matrix

import "fmt"

// checkRow validates i against m and the optional rhs length.
func checkRow(m *Dense, rhs []int64, i int) error {
	if m == nil {
		return ErrNilMatrix
	}
	if i < 0 || i >= m.r {
		return fmt.Errorf("row %d: %w", i, ErrOutOfRange)
	}
	if rhs != nil && len(rhs) != m.r {
		return fmt.Errorf("rhs has %d entries, want %d: %w", len(rhs), m.r, ErrDimensionMismatch)
	}

	return nil
}

// SwapRows exchanges rows i and k of m and of rhs (when non-nil).
// Complexity: O(c).
func SwapRows(m *Dense, rhs []int64, i, k int) error {
	if err := checkRow(m, rhs, i); err != nil {
		return matrixErrorf(opSwapRows, err)
	}
	if err := checkRow(m, rhs, k); err != nil {
		return matrixErrorf(opSwapRows, err)
	}
	if i == k {
		return nil
	}
	a, b := m.row(i), m.row(k)
	for j := range a {
		a[j], b[j] = b[j], a[j]
	}
	if rhs != nil {
		rhs[i], rhs[k] = rhs[k], rhs[i]
	}

	return nil
}

// NegateRow multiplies row i (and rhs[i]) by -1.
// Complexity: O(c).
func NegateRow(m *Dense, rhs []int64, i int) error {
	if err := checkRow(m, rhs, i); err != nil {
		return matrixErrorf(opNegateRow, err)
	}
	var err error
	r := m.row(i)
	for j := range r {
		if r[j], err = Neg(r[j]); err != nil {
			return matrixErrorf(opNegateRow, err)
		}
	}
	if rhs != nil {
		if rhs[i], err = Neg(rhs[i]); err != nil {
			return matrixErrorf(opNegateRow, err)
		}
	}

	return nil
}

// ScaleRow multiplies row i (and rhs[i]) by k.
// Complexity: O(c).
func ScaleRow(m *Dense, rhs []int64, i int, k int64) error {
	if err := checkRow(m, rhs, i); err != nil {
		return matrixErrorf(opScaleRow, err)
	}
	if k == 1 {
		return nil
	}
	var err error
	r := m.row(i)
	for j := range r {
		if r[j], err = Mul(r[j], k); err != nil {
			return matrixErrorf(opScaleRow, err)
		}
	}
	if rhs != nil {
		if rhs[i], err = Mul(rhs[i], k); err != nil {
			return matrixErrorf(opScaleRow, err)
		}
	}

	return nil
}

// SubRow replaces row dst with row dst - row src (rhs likewise).
// Complexity: O(c).
func SubRow(m *Dense, rhs []int64, dst, src int) error {
	if err := checkRow(m, rhs, dst); err != nil {
		return matrixErrorf(opSubRow, err)
	}
	if err := checkRow(m, rhs, src); err != nil {
		return matrixErrorf(opSubRow, err)
	}
	var err error
	d, s := m.row(dst), m.row(src)
	for j := range d {
		if d[j], err = Sub(d[j], s[j]); err != nil {
			return matrixErrorf(opSubRow, err)
		}
	}
	if rhs != nil {
		if rhs[dst], err = Sub(rhs[dst], rhs[src]); err != nil {
			return matrixErrorf(opSubRow, err)
		}
	}

	return nil
}

// CountNonZero returns the number of nonzero entries in row i.
// Out-of-range rows count as zero.
func CountNonZero(m *Dense, i int) int {
	if m == nil || i < 0 || i >= m.r {
		return 0
	}
	n := 0
	for _, v := range m.row(i) {
		if v != 0 {
			n++
		}
	}

	return n
}

// IsZeroRow reports whether every entry of row i is zero.
func IsZeroRow(m *Dense, i int) bool {
	return CountNonZero(m, i) == 0
}

// RowGCD returns the non-negative gcd of row i and rhs[i] (when rhs is
// non-nil). An all-zero row yields 0.
// Complexity: O(c·log max|a|).
func RowGCD(m *Dense, rhs []int64, i int) (int64, error) {
	if err := checkRow(m, rhs, i); err != nil {
		return 0, matrixErrorf(opDeflate, err)
	}
	var g int64
	var err error
	for _, v := range m.row(i) {
		if g, err = GCD(g, v); err != nil {
			return 0, matrixErrorf(opDeflate, err)
		}
	}
	if rhs != nil {
		if g, err = GCD(g, rhs[i]); err != nil {
			return 0, matrixErrorf(opDeflate, err)
		}
	}

	return g, nil
}

// DeflateRow divides row i and rhs[i] by their gcd and returns it.
// MAIN DESCRIPTION:
//   - Keeps the solution set of the row equation while shrinking magnitudes.
//
// Behavior highlights:
//   - gcd 0 (zero row, zero rhs) and gcd 1 are no-ops.
//   - Idempotent: a deflated row has gcd 1 (or 0), so a second call changes nothing.
//   - Signs are preserved because the divisor is positive.
//
// Complexity:
//   - Time O(c·log max|a|), Space O(1).
func DeflateRow(m *Dense, rhs []int64, i int) (int64, error) {
	g, err := RowGCD(m, rhs, i)
	if err != nil {
		return 0, err
	}
	if g <= 1 {
		return g, nil
	}
	r := m.row(i)
	for j := range r {
		r[j] /= g
	}
	if rhs != nil {
		rhs[i] /= g
	}

	return g, nil
}
