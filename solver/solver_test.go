package solver_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/propagate"
	"github.com/katalvlaran/joltage/solver"
)

const sample = `[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}
[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}`

func mask(t *testing.T, idx ...int) machine.Vector {
	t.Helper()
	v, err := machine.Mask(idx...)
	require.NoError(t, err)
	return v
}

func newMachine(t *testing.T, target []int64, buttons ...machine.Vector) machine.Machine {
	t.Helper()
	m, err := machine.New(buttons, target)
	require.NoError(t, err)
	return m
}

func TestSolve_Examples(t *testing.T) {
	ctx := context.Background()

	sol, err := solver.Solve(ctx, newMachine(t, []int64{3, 5}, mask(t, 0), mask(t, 1)))
	require.NoError(t, err)
	assert.Equal(t, int64(8), sol.Total)
	assert.Equal(t, []int64{3, 5}, sol.Presses)

	sol, err = solver.Solve(ctx, newMachine(t, []int64{2, 5}, mask(t, 0, 1), mask(t, 1)))
	require.NoError(t, err)
	assert.Equal(t, int64(5), sol.Total)
	assert.Equal(t, []int64{2, 3}, sol.Presses)
}

func TestSolve_SampleJoltage(t *testing.T) {
	ms, err := machine.ParseString(sample)
	require.NoError(t, err)
	want := []int64{10, 12, 11}
	for i, m := range ms {
		sol, err := solver.Solve(context.Background(), m)
		require.NoError(t, err, "machine %d", i)
		assert.Equal(t, want[i], sol.Total, "machine %d", i)
		require.NoError(t, solver.Verify(m, sol.Presses))
	}
}

func TestSolve_IdleButton(t *testing.T) {
	sol, err := solver.Solve(context.Background(),
		newMachine(t, []int64{4}, mask(t, 0), machine.Vector{}))
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 0}, sol.Presses)
}

func TestSolve_ZeroTargets(t *testing.T) {
	sol, err := solver.Solve(context.Background(),
		newMachine(t, []int64{0, 0}, mask(t, 0), mask(t, 0, 1)))
	require.NoError(t, err)
	assert.Zero(t, sol.Total)
}

func TestSolve_Unsatisfiable(t *testing.T) {
	ctx := context.Background()

	// Counter 1 has no button.
	_, err := solver.Solve(ctx, newMachine(t, []int64{1, 1}, mask(t, 0)))
	assert.ErrorIs(t, err, solver.ErrUnsatisfiable)

	// x0 + x1 = 1 and x0 = 2 force x1 = -1.
	_, err = solver.Solve(ctx, newMachine(t, []int64{1, 2}, mask(t, 0, 1), mask(t, 0)))
	require.ErrorIs(t, err, solver.ErrUnsatisfiable)
	var ue *propagate.UnsatisfiableError
	assert.True(t, errors.As(err, &ue))

	// Parity: both buttons add to both counters equally.
	_, err = solver.Solve(ctx, newMachine(t, []int64{1, 2}, mask(t, 0, 1)))
	assert.ErrorIs(t, err, solver.ErrUnsatisfiable)
}

func TestSolve_Overflow(t *testing.T) {
	m := newMachine(t, []int64{math.MaxInt64, math.MaxInt64}, mask(t, 0), mask(t, 1))
	_, err := solver.Solve(context.Background(), m)
	assert.ErrorIs(t, err, solver.ErrOverflow)

	// Two buttons share a counter at the int64 limit, so the enumerated
	// button's range has no upper end.
	m, err = machine.ParseLine("[.] (0) (0) {9223372036854775807}")
	require.NoError(t, err)
	_, err = solver.Solve(context.Background(), m)
	assert.ErrorIs(t, err, solver.ErrOverflow)
}

func TestSolve_CandidateLimit(t *testing.T) {
	m := newMachine(t, []int64{6}, mask(t, 0), mask(t, 0), mask(t, 0))
	_, err := solver.Solve(context.Background(), m, solver.WithMaxCandidates(3))
	assert.ErrorIs(t, err, propagate.ErrCandidateLimit)

	sol, err := solver.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, int64(6), sol.Total)
	assert.Equal(t, 28, sol.Candidates)
}

func TestSolve_Indicator(t *testing.T) {
	ms, err := machine.ParseString(sample)
	require.NoError(t, err)
	sol, err := solver.Solve(context.Background(), ms[0], solver.WithPart(solver.PartIndicator))
	require.NoError(t, err)
	assert.Equal(t, int64(2), sol.Total)
	assert.Equal(t, []int64{0, 1, 0, 1, 0, 0}, sol.Presses)
}

func TestSolve_BadOptions(t *testing.T) {
	m := newMachine(t, []int64{1}, mask(t, 0))
	for _, opt := range []solver.Option{
		solver.WithPart(solver.Part(9)),
		solver.WithWorkers(-1),
		solver.WithMaxCandidates(-1),
		solver.WithOrder(7),
	} {
		_, err := solver.Solve(context.Background(), m, opt)
		assert.ErrorIs(t, err, solver.ErrOptionViolation)
	}
}

func TestParsePart(t *testing.T) {
	p, err := solver.ParsePart("1")
	require.NoError(t, err)
	assert.Equal(t, solver.PartIndicator, p)
	p, err = solver.ParsePart("Joltage")
	require.NoError(t, err)
	assert.Equal(t, solver.PartJoltage, p)
	assert.Equal(t, "joltage", p.String())
	_, err = solver.ParsePart("3")
	assert.ErrorIs(t, err, solver.ErrOptionViolation)
}

func TestMinimize(t *testing.T) {
	f := propagate.Fixed
	total, winner, err := solver.Minimize(propagate.CandidateSet{
		{f(3), f(3)},
		{f(1), f(4)},
		{f(4), f(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, "[1 4]", winner.String(), "first minimum wins")

	_, _, err = solver.Minimize(nil)
	assert.ErrorIs(t, err, solver.ErrUnsatisfiable)

	_, _, err = solver.Minimize(propagate.CandidateSet{{f(1), f(1)}, {f(0), {}}})
	require.ErrorIs(t, err, solver.ErrInvariantViolation)
	var ie *solver.InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Candidate)
	assert.Equal(t, 1, ie.Column)

	_, _, err = solver.Minimize(propagate.CandidateSet{{f(math.MaxInt64), f(1)}})
	assert.ErrorIs(t, err, solver.ErrOverflow)
}

func TestVerify(t *testing.T) {
	m := newMachine(t, []int64{2, 5}, mask(t, 0, 1), mask(t, 1))
	assert.NoError(t, solver.Verify(m, []int64{2, 3}))
	assert.ErrorIs(t, solver.Verify(m, []int64{3, 2}), solver.ErrInvariantViolation)
	assert.ErrorIs(t, solver.Verify(m, []int64{2}), solver.ErrInvariantViolation)
	assert.ErrorIs(t, solver.Verify(m, []int64{-1, 6}), solver.ErrInvariantViolation)
}

func TestBounds(t *testing.T) {
	m, err := machine.ParseLine("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
	require.NoError(t, err)
	m.Buttons = append(m.Buttons, machine.Vector{})
	bounds, idle := solver.Bounds(m)
	assert.Equal(t, []int64{7, 7, 4, 7, 4, 5, 0}, bounds)
	assert.Equal(t, []bool{false, false, false, false, false, false, true}, idle)
}

