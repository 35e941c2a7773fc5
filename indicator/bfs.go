package indicator

import (
	"context"
	"fmt"

	"github.com/katalvlaran/joltage/machine"
)

// noParent marks the start state.
const noParent = -1

// queueItem pairs a light state with its depth.
type queueItem struct {
	state uint16
	depth int
}

// walker encapsulates mutable search state.
type walker struct {
	masks  []uint16
	goal   uint16
	opts   Options
	ctx    context.Context
	queue  []queueItem
	seen   []bool
	parent []int32 // previous state, noParent for the start
	via    []int8  // button pressed to reach the state
	res    *Result
}

// MinPresses returns the fewest presses turning all-off lights into m.Goal.
// Returns ErrOptionViolation for bad options, a machine validation error,
// ErrUnreachable, the context's error, or any OnVisit error.
func MinPresses(m machine.Machine, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("indicator: %w", err)
	}

	size := 1 << uint(m.Lights)
	w := &walker{
		masks:  make([]uint16, len(m.Buttons)),
		goal:   m.Goal.Bits(m.Lights),
		opts:   o,
		ctx:    o.Ctx,
		seen:   make([]bool, size),
		parent: make([]int32, size),
		via:    make([]int8, size),
		res:    &Result{},
	}
	for j, b := range m.Buttons {
		w.masks[j] = b.Bits(m.Lights)
	}

	w.enqueue(0, 0, noParent, -1)
	found, err := w.loop()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnreachable, m)
	}
	w.res.Buttons = w.path()
	w.res.Presses = len(w.res.Buttons)

	return w.res, nil
}

// enqueue marks state seen and records how it was reached.
func (w *walker) enqueue(state uint16, depth int, parent int32, button int) {
	w.seen[state] = true
	w.parent[state] = parent
	w.via[state] = int8(button)
	w.queue = append(w.queue, queueItem{state: state, depth: depth})
}

// loop processes the queue until the goal is dequeued, the queue drains,
// or an error occurs.
func (w *walker) loop() (bool, error) {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return false, w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Visited++
		if err := w.opts.OnVisit(item.state, item.depth); err != nil {
			return false, fmt.Errorf("indicator: OnVisit error at state %#04x: %w", item.state, err)
		}
		if item.state == w.goal {
			return true, nil
		}
		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for j, mask := range w.masks {
			s := item.state ^ mask
			if !w.seen[s] {
				w.enqueue(s, next, int32(item.state), j)
			}
		}
	}

	return false, nil
}

// path walks parent links back from the goal.
func (w *walker) path() []int {
	var out []int
	for s := int32(w.goal); w.parent[s] != noParent; s = w.parent[s] {
		out = append(out, int(w.via[s]))
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if out == nil {
		out = []int{}
	}

	return out
}
