package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/joltage/cache"
	"github.com/katalvlaran/joltage/indicator"
	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/propagate"
	"github.com/katalvlaran/joltage/reduce"
)

// Solution is the answer for one machine.
type Solution struct {
	// Total is the minimum number of presses.
	Total int64

	// Presses holds one press count per button.
	Presses []int64

	// Candidates is the size of the final candidate set (joltage part).
	Candidates int

	// Cached reports a cache hit.
	Cached bool
}

// Solve returns the minimum presses for m under the selected part.
func Solve(ctx context.Context, m machine.Machine, opts ...Option) (*Solution, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}

	return solve(ctx, m, o)
}

// solve wraps solveUncached with caching, logging and metrics.
func solve(ctx context.Context, m machine.Machine, o Options) (*Solution, error) {
	part := o.Part.String()
	start := time.Now()
	log := o.Logger.WithFields(logrus.Fields{"part": part, "buttons": len(m.Buttons), "rows": m.Rows})

	var key string
	if o.Cache != nil {
		key = cache.Key(m, part)
		e, err := o.Cache.Get(ctx, key)
		switch {
		case err == nil:
			o.Recorder.ObserveCache(part, true)
			o.Recorder.ObserveSolve(part, OutcomeCached, time.Since(start))
			log.WithField("total", e.Total).Debug("cache hit")
			return &Solution{Total: e.Total, Presses: e.Presses, Cached: true}, nil
		case errors.Is(err, cache.ErrMiss):
			o.Recorder.ObserveCache(part, false)
		default:
			log.WithError(err).Warn("cache lookup failed")
		}
	}

	sol, err := solveUncached(ctx, m, o)
	elapsed := time.Since(start)
	if err != nil {
		o.Recorder.ObserveSolve(part, OutcomeFailed, elapsed)
		log.WithError(err).Debug("machine failed")
		return nil, solverErrorf(opSolve, err)
	}
	o.Recorder.ObserveSolve(part, OutcomeSolved, elapsed)
	log.WithFields(logrus.Fields{"total": sol.Total, "elapsed": elapsed}).Debug("machine solved")

	if o.Cache != nil {
		if err = o.Cache.Put(ctx, key, cache.Entry{Total: sol.Total, Presses: sol.Presses}); err != nil {
			log.WithError(err).Warn("cache store failed")
		}
	}

	return sol, nil
}

func solveUncached(ctx context.Context, m machine.Machine, o Options) (*Solution, error) {
	if o.Part == PartIndicator {
		return solveIndicator(ctx, m)
	}

	return solveJoltage(ctx, m, o)
}

func solveIndicator(ctx context.Context, m machine.Machine) (*Solution, error) {
	res, err := indicator.MinPresses(m, indicator.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	presses := make([]int64, len(m.Buttons))
	for _, b := range res.Buttons {
		presses[b]++
	}

	return &Solution{Total: int64(res.Presses), Presses: presses}, nil
}

func solveJoltage(ctx context.Context, m machine.Machine, o Options) (*Solution, error) {
	r, err := reduce.Reduce(m, reduce.WithLogger(o.Logger))
	if err != nil {
		return nil, err
	}
	r, err = reduce.Compact(r, reduce.WithOrder(o.Order), reduce.WithLogger(o.Logger))
	if errors.Is(err, reduce.ErrInconsistent) {
		return nil, fmt.Errorf("%w: %w", ErrUnsatisfiable, err)
	}
	if err != nil {
		return nil, err
	}

	part := o.Part.String()
	set, err := propagate.Propagate(system(r, m),
		propagate.WithContext(ctx),
		propagate.WithMaxCandidates(o.MaxCandidates),
		propagate.WithLogger(o.Logger),
		propagate.WithOnRow(func(_, n int) { o.Recorder.ObserveCandidates(part, n) }),
	)
	if err != nil {
		return nil, err
	}

	total, winner, err := Minimize(set)
	if err != nil {
		return nil, err
	}
	presses, _ := winner.Values()
	if err = Verify(m, presses); err != nil {
		return nil, err
	}

	return &Solution{Total: total, Presses: presses, Candidates: len(set)}, nil
}
