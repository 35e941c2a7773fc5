// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/matrix"
)

func TestNewDense_Shapes(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	z, err := matrix.NewDense(0, 4)
	require.NoError(t, err, "zero rows are legal")
	assert.Equal(t, 0, z.Rows())

	_, err = matrix.NewDense(-1, 2)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_AtSetBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 0, 7))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	_, err = m.Row(5)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := matrix.FromRows([][]int64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTranspose(t *testing.T) {
	m, err := matrix.FromRows([][]int64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	tr, err := matrix.Transpose(m)
	require.NoError(t, err)
	want, err := matrix.FromRows([][]int64{{1, 4}, {2, 5}, {3, 6}})
	require.NoError(t, err)
	assert.True(t, matrix.Equal(want, tr), "got\n%v", tr)

	back, err := matrix.Transpose(tr)
	require.NoError(t, err)
	assert.True(t, matrix.Equal(m, back))

	_, err = matrix.Transpose(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestClone_Independent(t *testing.T) {
	m, err := matrix.FromRows([][]int64{{1, 2}})
	require.NoError(t, err)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	v, _ := m.At(0, 0)
	assert.Equal(t, int64(1), v)
}

func TestDense_String(t *testing.T) {
	m, err := matrix.FromRows([][]int64{{1, -2}, {0, 3}})
	require.NoError(t, err)
	assert.Equal(t, "[1, -2]\n[0, 3]\n", m.String())
}
