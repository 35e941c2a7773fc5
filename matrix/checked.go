// SPDX-License-Identifier: MIT

// Package matrix - checked int64 scalar arithmetic.
//
// Purpose:
//   - Give elimination and search a single source of truth for overflow
//     detection. Every helper returns ErrOverflow (wrapped with operands)
//     instead of wrapping around.
//
// Complexity:
//   - All helpers are O(1) and allocation-free on success.

package matrix

import "math"

// Add returns a+b or ErrOverflow.
func Add(a, b int64) (int64, error) {
	s := a + b
	// Overflow iff both operands share a sign that the sum does not.
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, overflowf(opAdd, a, b)
	}

	return s, nil
}

// Sub returns a-b or ErrOverflow.
func Sub(a, b int64) (int64, error) {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return 0, overflowf(opSub, a, b)
	}

	return d, nil
}

// Mul returns a*b or ErrOverflow.
// Implementation:
//   - Stage 1: zero short-circuit.
//   - Stage 2: reject the two products that overflow without a visible
//     division mismatch (MinInt64 * -1 in either order).
//   - Stage 3: multiply and verify by division.
func Mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, overflowf(opMul, a, b)
	}
	p := a * b
	if p/b != a {
		return 0, overflowf(opMul, a, b)
	}

	return p, nil
}

// Neg returns -a or ErrOverflow for MinInt64.
func Neg(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, overflowf(opNeg, a, -1)
	}

	return -a, nil
}

// Abs returns |a| or ErrOverflow for MinInt64.
func Abs(a int64) (int64, error) {
	if a >= 0 {
		return a, nil
	}
	n, err := Neg(a)
	if err != nil {
		return 0, matrixErrorf(opAbs, err)
	}

	return n, nil
}

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(0, 0) == 0. Operands equal to MinInt64 are reported as ErrOverflow.
func GCD(a, b int64) (int64, error) {
	var err error
	if a, err = Abs(a); err != nil {
		return 0, err
	}
	if b, err = Abs(b); err != nil {
		return 0, err
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a, nil
}
