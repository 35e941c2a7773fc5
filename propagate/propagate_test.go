package propagate_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/matrix"
	"github.com/katalvlaran/joltage/propagate"
)

func eq(target int64, coeffs ...int64) propagate.Equation {
	return propagate.Equation{Coeffs: coeffs, Target: target}
}

// render turns a candidate set into comparable strings.
func render(set propagate.CandidateSet) []string {
	out := make([]string, len(set))
	for i, r := range set {
		out[i] = r.String()
	}
	return out
}

func TestPropagate_Cases(t *testing.T) {
	cases := []struct {
		name string
		sys  propagate.System
		want []string
	}{
		{
			name: "independent rows",
			sys: propagate.System{Buttons: 2, Bounds: []int64{3, 5},
				Rows: []propagate.Equation{eq(3, 1, 0), eq(5, 0, 1)}},
			want: []string{"[3 5]"},
		},
		{
			name: "enumerate and solve last",
			sys: propagate.System{Buttons: 2, Bounds: []int64{3, 3},
				Rows: []propagate.Equation{eq(3, 1, 1)}},
			want: []string{"[0 3]", "[1 2]", "[2 1]", "[3 0]"},
		},
		{
			name: "fixed values narrow the domain",
			sys: propagate.System{Buttons: 2, Bounds: []int64{5, 5},
				Rows: []propagate.Equation{eq(2, 1, 0), eq(3, 1, 1)}},
			want: []string{"[2 1]"},
		},
		{
			name: "non-unit coefficients",
			sys: propagate.System{Buttons: 2, Bounds: []int64{4, 4},
				Rows: []propagate.Equation{eq(6, 2, 1)}},
			want: []string{"[0 6]", "[1 4]", "[2 2]", "[3 0]"},
		},
		{
			name: "idle button fixed at zero",
			sys: propagate.System{Buttons: 3, Bounds: []int64{2, 2, 0}, Idle: []bool{false, false, true},
				Rows: []propagate.Equation{eq(2, 1, 1, 0)}},
			want: []string{"[0 2 0]", "[1 1 0]", "[2 0 0]"},
		},
		{
			name: "zero row with zero target is skipped",
			sys: propagate.System{Buttons: 1, Bounds: []int64{4},
				Rows: []propagate.Equation{eq(0, 0), eq(4, 1)}},
			want: []string{"[4]"},
		},
		{
			name: "single term drops disagreeing candidates",
			sys: propagate.System{Buttons: 2, Bounds: []int64{2, 2},
				Rows: []propagate.Equation{eq(2, 1, 1), eq(1, 0, 1)}},
			want: []string{"[1 1]"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := propagate.Propagate(tc.sys)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, render(set)); diff != "" {
				t.Errorf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPropagate_Unsatisfiable(t *testing.T) {
	cases := []struct {
		name string
		sys  propagate.System
		row  int
	}{
		{"indivisible", propagate.System{Buttons: 1, Bounds: []int64{3},
			Rows: []propagate.Equation{eq(3, 2)}}, 0},
		{"negative value", propagate.System{Buttons: 2, Bounds: []int64{2, 2},
			Rows: []propagate.Equation{eq(3, 1, 0), eq(1, 0, -1)}}, 1},
		{"zero row with target", propagate.System{Buttons: 1, Bounds: []int64{1},
			Rows: []propagate.Equation{eq(2, 0)}}, 0},
		{"conflicting rows", propagate.System{Buttons: 2, Bounds: []int64{3, 3},
			Rows: []propagate.Equation{eq(1, 1, 0), eq(3, 1, 1), eq(1, 0, 1)}}, 2},
		{"fixed value above bound", propagate.System{Buttons: 2, Bounds: []int64{3, 10},
			Rows: []propagate.Equation{eq(5, 1, 0), eq(7, 1, 1)}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := propagate.Propagate(tc.sys)
			require.ErrorIs(t, err, propagate.ErrUnsatisfiable)
			var ue *propagate.UnsatisfiableError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, tc.row, ue.Row)
		})
	}
}

func TestPropagate_DoesNotShareAcrossRows(t *testing.T) {
	var sizes []int
	sys := propagate.System{Buttons: 3, Bounds: []int64{2, 2, 2},
		Rows: []propagate.Equation{eq(2, 1, 1, 0), eq(2, 0, 1, 1)}}
	set, err := propagate.Propagate(sys, propagate.WithOnRow(func(_, n int) { sizes = append(sizes, n) }))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, sizes)
	assert.Equal(t, []string{"[2 0 2]", "[1 1 1]", "[0 2 0]"}, render(set))
	for _, r := range set {
		assert.True(t, r.Complete())
	}
}

func TestPropagate_CandidateLimit(t *testing.T) {
	sys := propagate.System{Buttons: 2, Bounds: []int64{3, 3}, Rows: []propagate.Equation{eq(3, 1, 1)}}
	_, err := propagate.Propagate(sys, propagate.WithMaxCandidates(2))
	assert.ErrorIs(t, err, propagate.ErrCandidateLimit)

	set, err := propagate.Propagate(sys, propagate.WithMaxCandidates(4))
	require.NoError(t, err)
	assert.Len(t, set, 4)
}

func TestPropagate_Overflow(t *testing.T) {
	sys := propagate.System{Buttons: 2, Bounds: []int64{3, 0},
		Rows: []propagate.Equation{eq(0, math.MaxInt64/2, 1)}}
	_, err := propagate.Propagate(sys)
	assert.ErrorIs(t, err, matrix.ErrOverflow)
}

func TestPropagate_BoundTooLarge(t *testing.T) {
	sys := propagate.System{Buttons: 2, Bounds: []int64{math.MaxInt64, math.MaxInt64},
		Rows: []propagate.Equation{eq(math.MaxInt64, 1, 1)}}
	_, err := propagate.Propagate(sys)
	assert.ErrorIs(t, err, matrix.ErrOverflow)
}

// A huge but representable bound is walked lazily, so the deadline stops it
// long before the range is exhausted.
func TestPropagate_HugeBoundHonoursDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	sys := propagate.System{Buttons: 2, Bounds: []int64{1 << 40, 1 << 40},
		Rows: []propagate.Equation{eq(1, 1, 1)}}
	_, err := propagate.Propagate(sys, propagate.WithContext(ctx))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPropagate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sys := propagate.System{Buttons: 1, Bounds: []int64{1}, Rows: []propagate.Equation{eq(1, 1)}}
	_, err := propagate.Propagate(sys, propagate.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPropagate_BadInput(t *testing.T) {
	_, err := propagate.Propagate(propagate.System{Buttons: 1}, propagate.WithMaxCandidates(-1))
	assert.ErrorIs(t, err, propagate.ErrOptionViolation)

	_, err = propagate.Propagate(propagate.System{Buttons: 1})
	assert.ErrorIs(t, err, propagate.ErrBadSystem)
}

func TestPropagate_NoRows(t *testing.T) {
	set, err := propagate.Propagate(propagate.System{Buttons: 2, Bounds: []int64{0, 0}, Idle: []bool{true, true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"[0 0]"}, render(set))
}
