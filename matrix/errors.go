// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (possibly wrapped with operation
// context); tests match them via errors.Is. No kernel panics on user input.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// Every message is prefixed with "matrix: ..." for easy grepping. Context is
// attached with matrixErrorf/denseErrorf; callers still match with errors.Is.

var (
	// ErrInvalidDimensions indicates that requested dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes, e.g. a right-hand
	// side whose length differs from the row count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrOverflow indicates that an int64 operation left the representable range.
	ErrOverflow = errors.New("matrix: integer overflow")
)

// Operation tags for uniform error wrapping.
const (
	opMul       = "Mul"
	opAdd       = "Add"
	opSub       = "Sub"
	opNeg       = "Neg"
	opAbs       = "Abs"
	opScaleRow  = "ScaleRow"
	opSubRow    = "SubRow"
	opNegateRow = "NegateRow"
	opSwapRows  = "SwapRows"
	opDeflate   = "DeflateRow"
	opTranspose = "Transpose"
	opFromRows  = "FromRows"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// overflowf records the operands of a failed checked operation.
func overflowf(tag string, a, b int64) error {
	return fmt.Errorf("%s(%d, %d): %w", tag, a, b, ErrOverflow)
}
