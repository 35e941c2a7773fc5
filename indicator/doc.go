// Package indicator solves the light-pattern part of a machine: every
// button toggles a fixed set of indicator lights, all lights start off, and
// the goal is the fewest presses that light exactly the machine's Goal
// pattern.
//
// What
//
//   - Light states are packed into a uint16 (light i → bit i); pressing a
//     button XORs its mask into the state.
//   - MinPresses runs breadth-first search from the all-off state, so the
//     first time the goal is dequeued its depth is the minimum press count.
//   - The state space has at most 2^16 states and every state is enqueued
//     once, so the search always terminates: an unreachable goal yields
//     ErrUnreachable.
//
// Options follow the traversal packages: WithContext, WithMaxDepth and
// WithOnVisit.
//
// Complexity (L = lights, B = buttons)
//
//   - Time:   O(2^L · B)
//   - Memory: O(2^L)
package indicator
