package propagate

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/joltage/matrix"
)

const opPropagate = "Propagate"

// leafBatch is how many enumeration leaves pass between context checks.
const leafBatch = 1 << 10

// term is one nonzero coefficient of an equation.
type term struct {
	coef int64
	col  int
}

// stepper holds the state of one row step.
type stepper struct {
	sys    System
	opts   Options
	ctx    context.Context
	row    int
	prev   CandidateSet
	next   CandidateSet
	leaves int
}

// Propagate returns every candidate that satisfies all rows of sys, in
// enumeration order. It returns ErrBadSystem or ErrOptionViolation for
// invalid input, *UnsatisfiableError when a row eliminates every candidate,
// ErrCandidateLimit, matrix.ErrOverflow, or the context's error.
func Propagate(sys System, opts ...Option) (CandidateSet, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := sys.Validate(); err != nil {
		return nil, propagateErrorf(opPropagate, err)
	}

	set := CandidateSet{sys.seed()}
	for i, eq := range sys.Rows {
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}

		s := &stepper{sys: sys, opts: o, ctx: o.Ctx, row: i, prev: set}
		if err := s.step(eq); err != nil {
			return nil, propagateErrorf(opPropagate, err)
		}
		if len(s.next) == 0 {
			return nil, propagateErrorf(opPropagate, &UnsatisfiableError{Row: i})
		}
		set = s.next

		o.Logger.WithFields(logrus.Fields{"row": i, "candidates": len(set)}).Debug("row propagated")
		o.OnRow(i, len(set))
	}

	return set, nil
}

// step fills s.next from s.prev for one equation.
func (s *stepper) step(eq Equation) error {
	var terms []term
	for j, c := range eq.Coeffs {
		if c != 0 {
			terms = append(terms, term{coef: c, col: j})
		}
	}

	switch len(terms) {
	case 0:
		if eq.Target == 0 {
			s.next = s.prev
		}
		return nil
	case 1:
		return s.single(terms[0], eq.Target)
	default:
		return s.multi(terms, eq.Target)
	}
}

// single fixes the only button of the row to target/coef.
func (s *stepper) single(t term, target int64) error {
	if target%t.coef != 0 {
		return nil
	}
	x := target / t.coef
	if x < 0 {
		return nil
	}
	for _, cand := range s.prev {
		if v, ok := cand[t.col].Value(); ok {
			if v == x {
				if err := s.keep(cand); err != nil {
					return err
				}
			}
			continue
		}
		out := cand.Clone()
		out[t.col] = Fixed(x)
		if err := s.keep(out); err != nil {
			return err
		}
	}

	return nil
}

// multi enumerates all but the last term and solves the last one exactly.
func (s *stepper) multi(terms []term, target int64) error {
	free, last := terms[:len(terms)-1], terms[len(terms)-1]
	domains := make([]span, len(free))
	for i, t := range free {
		d, err := s.domain(t.col)
		if err != nil {
			return err
		}
		domains[i] = d
	}
	assign := NewConstraintRow(s.sys.Buttons)

	var walk func(depth int, sum int64) error
	walk = func(depth int, sum int64) error {
		if depth == len(free) {
			return s.leaf(assign, last, target, sum)
		}
		t := free[depth]
		err := domains[depth].each(func(v int64) error {
			p, err := matrix.Mul(t.coef, v)
			if err != nil {
				return err
			}
			next, err := matrix.Add(sum, p)
			if err != nil {
				return err
			}
			assign[t.col] = Fixed(v)
			return walk(depth+1, next)
		})
		assign[t.col] = Cell{}

		return err
	}

	return walk(0, 0)
}

// span is the set of values tried for one enumerated button: an explicit
// sorted list, or the range 0..hi walked lazily.
type span struct {
	vals []int64
	hi   int64
	list bool
}

// each calls fn for every value in ascending order and stops at the first
// error.
func (d span) each(fn func(v int64) error) error {
	if d.list {
		for _, v := range d.vals {
			if err := fn(v); err != nil {
				return err
			}
		}
		return nil
	}
	for v := int64(0); v <= d.hi; v++ {
		if err := fn(v); err != nil {
			return err
		}
	}

	return nil
}

// domain returns the values to try for col: the distinct values within
// 0..bound fixed by prior candidates when all of them fix it, else the range
// 0..bound. A bound of math.MaxInt64 cannot be walked and yields ErrOverflow.
func (s *stepper) domain(col int) (span, error) {
	bound := s.sys.Bounds[col]
	seen := make(map[int64]struct{})
	for _, cand := range s.prev {
		v, ok := cand[col].Value()
		if !ok {
			seen = nil
			break
		}
		if v <= bound {
			seen[v] = struct{}{}
		}
	}
	if seen != nil {
		vals := make([]int64, 0, len(seen))
		for v := range seen {
			vals = append(vals, v)
		}
		slices.Sort(vals)
		return span{vals: vals, list: true}, nil
	}

	if bound == math.MaxInt64 {
		return span{}, fmt.Errorf("%w: bound of button %d is too large to enumerate", matrix.ErrOverflow, col)
	}

	return span{hi: bound}, nil
}

// leaf computes the last button and merges the full assignment into every
// prior candidate.
func (s *stepper) leaf(assign ConstraintRow, last term, target, sum int64) error {
	s.leaves++
	if s.leaves%leafBatch == 0 {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}
	}

	rem, err := matrix.Sub(target, sum)
	if err != nil {
		return err
	}
	if rem%last.coef != 0 {
		return nil
	}
	x := rem / last.coef
	if x < 0 {
		return nil
	}
	assign[last.col] = Fixed(x)
	defer func() { assign[last.col] = Cell{} }()

	for _, cand := range s.prev {
		merged, ok := cand.Merge(assign)
		if !ok {
			continue
		}
		if err = s.keep(merged); err != nil {
			return err
		}
	}

	return nil
}

// keep appends row to the next set, enforcing MaxCandidates.
func (s *stepper) keep(row ConstraintRow) error {
	if s.opts.MaxCandidates > 0 && len(s.next) >= s.opts.MaxCandidates {
		return fmt.Errorf("%w: row %d exceeds %d candidates", ErrCandidateLimit, s.row, s.opts.MaxCandidates)
	}
	s.next = append(s.next, row)

	return nil
}
