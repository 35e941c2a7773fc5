// Package joltage computes the fewest button presses that bring a factory
// machine into its required state.
//
// A machine line looks like
//
//	[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//
// The bracketed pattern is the indicator goal, every parenthesised list is
// one button (the counters or lights it affects), and the braced list holds
// the joltage targets.
//
// Two sub-problems are solved:
//
//   - indicator: each press toggles the button's lights; breadth-first search
//     over the 2^lights states finds the shortest press sequence;
//   - joltage: each press adds one to the button's counters; the minimum is
//     found exactly with fraction-free integer elimination followed by a
//     bounded enumeration of every non-negative integer solution.
//
// Packages, leaf first:
//
//	machine/   : Vector, Machine, puzzle-line parser
//	matrix/    : exact int64 Dense matrix, checked arithmetic, row operations
//	reduce/    : row-echelon reduction and compaction of a machine
//	propagate/ : row-by-row candidate enumeration
//	solver/    : bounds, minimisation, Solve / SolveAll / SolveText
//	indicator/ : light-pattern BFS
//	cache/     : in-memory and Redis result caches
//	cmd/joltage: command-line interface
//
// Quick start:
//
//	rep, err := solver.SolveText(ctx, strings.NewReader(input))
//	if err != nil {
//		// invalid options or cancellation
//	}
//	fmt.Println(rep.Total) // 33 for the three-machine sample
package joltage
