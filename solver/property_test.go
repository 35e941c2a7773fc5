package solver

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/propagate"
	"github.com/katalvlaran/joltage/reduce"
)

// randomMachine returns a machine with 0/1 buttons whose targets come from
// a random non-negative press vector, so it is always solvable.
func randomMachine(t *testing.T, rng *rand.Rand) machine.Machine {
	t.Helper()
	rows := 1 + rng.Intn(4)
	buttons := make([]machine.Vector, 1+rng.Intn(4))
	for j := range buttons {
		for i := 0; i < rows; i++ {
			if rng.Intn(2) == 1 {
				buttons[j][i] = 1
			}
		}
	}
	target := make([]int64, rows)
	for j := range buttons {
		x := int64(rng.Intn(4))
		for i := 0; i < rows; i++ {
			target[i] += buttons[j][i] * x
		}
	}
	m, err := machine.New(buttons, target)
	require.NoError(t, err)
	return m
}

// bruteMin enumerates every press vector within Bounds.
func bruteMin(m machine.Machine) int64 {
	bounds, _ := Bounds(m)
	best := int64(-1)
	x := make([]int64, len(m.Buttons))
	var walk func(j int)
	walk = func(j int) {
		if j == len(x) {
			for i := 0; i < m.Rows; i++ {
				var s int64
				for k, v := range x {
					s += m.Buttons[k][i] * v
				}
				if s != m.Joltage[i] {
					return
				}
			}
			var sum int64
			for _, v := range x {
				sum += v
			}
			if best < 0 || sum < best {
				best = sum
			}
			return
		}
		for v := int64(0); v <= bounds[j]; v++ {
			x[j] = v
			walk(j + 1)
		}
	}
	walk(0)

	return best
}

func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		m := randomMachine(t, rng)
		sol, err := Solve(context.Background(), m)
		require.NoError(t, err, "iteration %d: %s", iter, m)
		require.Equal(t, bruteMin(m), sol.Total, "iteration %d: %s", iter, m)
	}
}

// TestPropagate_Sound substitutes every surviving candidate into the
// original equations.
func TestPropagate_Sound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		m := randomMachine(t, rng)
		r, err := reduce.Reduce(m)
		require.NoError(t, err)
		r, err = reduce.Compact(r)
		require.NoError(t, err)
		set, err := propagate.Propagate(system(r, m))
		require.NoError(t, err)
		require.NotEmpty(t, set)
		for _, cand := range set {
			presses, ok := cand.Values()
			require.True(t, ok, "iteration %d: incomplete %s", iter, cand)
			require.NoError(t, Verify(m, presses), "iteration %d: %s", iter, cand)
		}
	}
}
