package propagate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/propagate"
)

func TestConstraintRow_Merge(t *testing.T) {
	a := propagate.ConstraintRow{propagate.Fixed(1), {}, propagate.Fixed(3)}
	b := propagate.ConstraintRow{{}, propagate.Fixed(2), propagate.Fixed(3)}

	m, ok := a.Merge(b)
	require.True(t, ok)
	assert.Equal(t, "[1 2 3]", m.String())
	assert.Equal(t, "[1 _ 3]", a.String(), "receiver untouched")

	_, ok = a.Merge(propagate.ConstraintRow{{}, {}, propagate.Fixed(4)})
	assert.False(t, ok, "disagreeing fixed column")

	_, ok = a.Merge(propagate.NewConstraintRow(2))
	assert.False(t, ok, "length mismatch")
}

func TestConstraintRow_Values(t *testing.T) {
	r := propagate.ConstraintRow{propagate.Fixed(0), propagate.Fixed(7)}
	assert.True(t, r.Complete())
	vals, ok := r.Values()
	require.True(t, ok)
	assert.Equal(t, []int64{0, 7}, vals)

	r = append(r, propagate.Cell{})
	assert.False(t, r.Complete())
	_, ok = r.Values()
	assert.False(t, ok)
}

func TestCell(t *testing.T) {
	var c propagate.Cell
	assert.False(t, c.IsSet())
	assert.Equal(t, "_", c.String())

	c = propagate.Fixed(0)
	v, ok := c.Value()
	assert.True(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, "0", c.String())
}

func TestSystem_Validate(t *testing.T) {
	ok := propagate.System{Buttons: 2, Bounds: []int64{1, 1}, Rows: []propagate.Equation{{Coeffs: []int64{1, 1}, Target: 1}}}
	require.NoError(t, ok.Validate())

	bad := []propagate.System{
		{Buttons: 2, Bounds: []int64{1}},
		{Buttons: 1, Bounds: []int64{-1}},
		{Buttons: 1, Bounds: []int64{1}, Idle: []bool{true, false}},
		{Buttons: 1, Bounds: []int64{1}, Rows: []propagate.Equation{{Coeffs: []int64{1, 1}}}},
	}
	for i, s := range bad {
		assert.ErrorIs(t, s.Validate(), propagate.ErrBadSystem, "case %d", i)
	}
}
