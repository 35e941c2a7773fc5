package indicator

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for indicator search.
var (
	// ErrUnreachable is returned when no press sequence produces the goal.
	ErrUnreachable = errors.New("indicator: goal pattern is unreachable")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("indicator: invalid option supplied")
)

// Option configures MinPresses via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for the search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when a state is dequeued. Returning an error stops
	// the search.
	OnVisit func(state uint16, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this many presses.
	MaxDepth int

	err error
}

// DefaultOptions returns a background context, no depth limit and a no-op
// hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(uint16, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run on every dequeued state.
func WithOnVisit(fn func(state uint16, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the number of presses explored.
//
//	d > 0: limit to d presses
//	d == 0: no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result is the outcome of MinPresses.
type Result struct {
	// Presses is the minimum number of button presses.
	Presses int

	// Buttons lists one shortest press sequence by button index.
	Buttons []int

	// Visited counts dequeued states.
	Visited int
}
