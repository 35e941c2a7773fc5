package solver

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/matrix"
)

// Outcome is the result of one machine in a batch.
type Outcome struct {
	// Index is the position in the batch.
	Index int

	// Line is the 1-based input line (SolveText), 0 otherwise.
	Line int

	Machine  machine.Machine
	Solution *Solution
	Err      error
}

// Report collects a batch run in input order.
type Report struct {
	Part     Part
	Outcomes []Outcome

	// Total is the sum over solved machines.
	Total int64

	Elapsed time.Duration
}

// Failed returns the outcomes that carry an error.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, oc := range r.Outcomes {
		if oc.Err != nil {
			out = append(out, oc)
		}
	}

	return out
}

// Solved returns the number of machines with a solution.
func (r *Report) Solved() int {
	return len(r.Outcomes) - len(r.Failed())
}

// SolveAll solves every machine with at most Workers in flight. A machine's
// failure is recorded in its Outcome and does not stop the others. The
// returned error is non-nil only for invalid options, cancellation of ctx or
// an overflowing Total; the report is still returned in the latter cases.
func SolveAll(ctx context.Context, machines []machine.Machine, opts ...Option) (*Report, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	outcomes := make([]Outcome, len(machines))
	for i, m := range machines {
		outcomes[i] = Outcome{Index: i, Machine: m}
	}

	return run(ctx, outcomes, o)
}

// SolveText parses r line by line and solves every valid machine. Lines that
// fail to parse become Outcomes whose Err matches machine.ErrParse.
func SolveText(ctx context.Context, r io.Reader, opts ...Option) (*Report, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	var outcomes []Outcome
	err = machine.Scan(r, func(line int, m machine.Machine, err error) error {
		outcomes = append(outcomes, Outcome{Index: len(outcomes), Line: line, Machine: m, Err: err})
		return nil
	})
	if err != nil {
		return nil, solverErrorf(opSolveAll, err)
	}

	return run(ctx, outcomes, o)
}

// run solves every outcome that has no error yet.
func run(ctx context.Context, outcomes []Outcome, o Options) (*Report, error) {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i := range outcomes {
		if outcomes[i].Err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			continue
		}
		oc := &outcomes[i]
		g.Go(func() error {
			oc.Solution, oc.Err = solve(gctx, oc.Machine, o)
			return nil
		})
	}
	_ = g.Wait()

	rep := &Report{Part: o.Part, Outcomes: outcomes, Elapsed: time.Since(start)}
	var sumErr error
	for _, oc := range outcomes {
		if oc.Err != nil {
			o.Logger.WithFields(logrus.Fields{"index": oc.Index, "line": oc.Line}).WithError(oc.Err).Warn("machine failed")
			continue
		}
		if sumErr == nil {
			rep.Total, sumErr = matrix.Add(rep.Total, oc.Solution.Total)
		}
	}
	o.Logger.WithFields(logrus.Fields{
		"part":    o.Part.String(),
		"solved":  rep.Solved(),
		"failed":  len(outcomes) - rep.Solved(),
		"total":   rep.Total,
		"elapsed": rep.Elapsed,
	}).Info("batch finished")

	if sumErr != nil {
		return rep, solverErrorf(opSolveAll, sumErr)
	}

	return rep, ctx.Err()
}
