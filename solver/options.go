package solver

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/joltage/cache"
	"github.com/katalvlaran/joltage/reduce"
)

// Part selects the sub-problem solved for every machine.
type Part int

const (
	// PartIndicator reaches the light pattern with toggling presses.
	PartIndicator Part = iota + 1

	// PartJoltage reaches the counter targets exactly.
	PartJoltage
)

// String returns "indicator" or "joltage".
func (p Part) String() string {
	switch p {
	case PartIndicator:
		return "indicator"
	case PartJoltage:
		return "joltage"
	default:
		return fmt.Sprintf("part(%d)", int(p))
	}
}

// ParsePart accepts "1", "2", "indicator" or "joltage".
func ParsePart(s string) (Part, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "indicator":
		return PartIndicator, nil
	case "2", "joltage":
		return PartJoltage, nil
	default:
		return 0, fmt.Errorf("%w: unknown part %q", ErrOptionViolation, s)
	}
}

// Recorder receives solve observations. internal/metrics implements it.
type Recorder interface {
	ObserveSolve(part, outcome string, elapsed time.Duration)
	ObserveCandidates(part string, n int)
	ObserveCache(part string, hit bool)
}

// Outcome labels passed to Recorder.ObserveSolve.
const (
	OutcomeSolved = "solved"
	OutcomeCached = "cached"
	OutcomeFailed = "failed"
)

type nopRecorder struct{}

func (nopRecorder) ObserveSolve(string, string, time.Duration) {}
func (nopRecorder) ObserveCandidates(string, int)              {}
func (nopRecorder) ObserveCache(string, bool)                  {}

// Option configures Solve, SolveAll and SolveText.
type Option func(*Options)

// Options holds the effective configuration.
type Options struct {
	Part          Part
	Workers       int
	MaxCandidates int
	Order         reduce.Order
	Cache         cache.Store
	Logger        logrus.FieldLogger
	Recorder      Recorder

	err error
}

// DefaultOptions solves the joltage part on GOMAXPROCS workers without a
// cache, candidate limit, logging or metrics.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{
		Part:     PartJoltage,
		Workers:  runtime.GOMAXPROCS(0),
		Order:    reduce.OrderFewestTerms,
		Logger:   l,
		Recorder: nopRecorder{},
	}
}

// WithPart selects the sub-problem.
func WithPart(p Part) Option {
	return func(o *Options) {
		if p != PartIndicator && p != PartJoltage {
			o.err = fmt.Errorf("%w: unknown part %d", ErrOptionViolation, int(p))
			return
		}
		o.Part = p
	}
}

// WithWorkers bounds batch parallelism. 0 keeps the default; negative is
// invalid.
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
		case n > 0:
			o.Workers = n
		}
	}
}

// WithMaxCandidates caps every propagation candidate set; 0 disables the cap.
func WithMaxCandidates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxCandidates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCandidates = n
	}
}

// WithOrder sets the row ordering used before propagation.
func WithOrder(ord reduce.Order) Option {
	return func(o *Options) {
		if ord != reduce.OrderFewestTerms && ord != reduce.OrderNone {
			o.err = fmt.Errorf("%w: unknown order %d", ErrOptionViolation, int(ord))
			return
		}
		o.Order = ord
	}
}

// WithCache enables result caching.
func WithCache(s cache.Store) Option {
	return func(o *Options) {
		o.Cache = s
	}
}

// WithLogger sets the logger for per-machine records.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}

func gatherOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, set := range opts {
		set(&o)
	}

	return o, o.err
}
