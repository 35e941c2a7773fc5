package solver

import (
	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/propagate"
	"github.com/katalvlaran/joltage/reduce"
)

// Bounds returns, per button, the largest target among the counters it
// increments. A button can never be pressed more often than that. The second
// result marks buttons that touch no active counter.
func Bounds(m machine.Machine) ([]int64, []bool) {
	bounds := make([]int64, len(m.Buttons))
	idle := make([]bool, len(m.Buttons))
	for j, b := range m.Buttons {
		idle[j] = true
		for i := 0; i < m.Rows; i++ {
			if b[i] == 0 {
				continue
			}
			idle[j] = false
			if m.Joltage[i] > bounds[j] {
				bounds[j] = m.Joltage[i]
			}
		}
	}

	return bounds, idle
}

// system builds the propagation input from the compacted reduction of m.
func system(r *reduce.Reduced, m machine.Machine) propagate.System {
	bounds, idle := Bounds(m)
	sys := propagate.System{
		Buttons: len(m.Buttons),
		Bounds:  bounds,
		Idle:    idle,
		Rows:    make([]propagate.Equation, r.Rows),
	}
	for i := range sys.Rows {
		coeffs, target := r.Row(i)
		sys.Rows[i] = propagate.Equation{Coeffs: coeffs, Target: target}
	}

	return sys
}
