package propagate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Sentinel errors for propagation.
var (
	// ErrUnsatisfiable is matched by *UnsatisfiableError.
	ErrUnsatisfiable = errors.New("propagate: system has no non-negative integer solution")

	// ErrCandidateLimit is returned when a row would grow the candidate set
	// beyond the configured maximum.
	ErrCandidateLimit = errors.New("propagate: candidate limit exceeded")

	// ErrBadSystem is returned for systems whose shapes disagree.
	ErrBadSystem = errors.New("propagate: malformed system")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("propagate: invalid option supplied")
)

// UnsatisfiableError reports the equation that eliminated every candidate.
type UnsatisfiableError struct {
	Row int
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("propagate: row %d leaves no candidate", e.Row)
}

// Is reports whether target is ErrUnsatisfiable.
func (e *UnsatisfiableError) Is(target error) bool {
	return target == ErrUnsatisfiable
}

// Cell is one button's value in a ConstraintRow: either unset or a fixed
// non-negative press count. The zero Cell is unset.
type Cell struct {
	value int64
	set   bool
}

// Fixed returns a Cell holding v.
func Fixed(v int64) Cell {
	return Cell{value: v, set: true}
}

// Value returns the fixed value and whether the cell is set.
func (c Cell) Value() (int64, bool) {
	return c.value, c.set
}

// IsSet reports whether the cell holds a value.
func (c Cell) IsSet() bool {
	return c.set
}

// String renders the value or "_" when unset.
func (c Cell) String() string {
	if !c.set {
		return "_"
	}

	return strconv.FormatInt(c.value, 10)
}

// ConstraintRow is a partial or complete assignment, one Cell per button.
type ConstraintRow []Cell

// NewConstraintRow returns a row of n unset cells.
func NewConstraintRow(n int) ConstraintRow {
	return make(ConstraintRow, n)
}

// Clone returns an independent copy.
func (r ConstraintRow) Clone() ConstraintRow {
	return append(ConstraintRow(nil), r...)
}

// Merge combines r and o into a new row. It fails when the rows differ in
// length or hold different values for a column fixed in both.
func (r ConstraintRow) Merge(o ConstraintRow) (ConstraintRow, bool) {
	if len(r) != len(o) {
		return nil, false
	}
	out := r.Clone()
	for j, c := range o {
		if !c.set {
			continue
		}
		if out[j].set && out[j].value != c.value {
			return nil, false
		}
		out[j] = c
	}

	return out, true
}

// Complete reports whether every cell is set.
func (r ConstraintRow) Complete() bool {
	for _, c := range r {
		if !c.set {
			return false
		}
	}

	return true
}

// Values returns the fixed values, or false when any cell is unset.
func (r ConstraintRow) Values() ([]int64, bool) {
	out := make([]int64, len(r))
	for j, c := range r {
		if !c.set {
			return nil, false
		}
		out[j] = c.value
	}

	return out, true
}

// String renders the row as "[3 _ 5]".
func (r ConstraintRow) String() string {
	parts := make([]string, len(r))
	for j, c := range r {
		parts[j] = c.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// CandidateSet is an ordered collection of candidate assignments.
type CandidateSet []ConstraintRow

// Equation is one reduced row: sum(Coeffs[j]·x[j]) = Target.
type Equation struct {
	Coeffs []int64
	Target int64
}

// System is the input of Propagate.
type System struct {
	// Buttons is the number of variables.
	Buttons int

	// Bounds[j] is the largest value button j may take.
	Bounds []int64

	// Rows are processed in order.
	Rows []Equation

	// Idle marks buttons fixed at 0 before the first row (buttons that
	// touch no counter). May be nil.
	Idle []bool
}

// Validate checks that every slice matches Buttons and bounds are
// non-negative.
func (s System) Validate() error {
	if s.Buttons < 0 {
		return fmt.Errorf("%w: negative button count %d", ErrBadSystem, s.Buttons)
	}
	if len(s.Bounds) != s.Buttons {
		return fmt.Errorf("%w: %d bounds for %d buttons", ErrBadSystem, len(s.Bounds), s.Buttons)
	}
	if s.Idle != nil && len(s.Idle) != s.Buttons {
		return fmt.Errorf("%w: %d idle flags for %d buttons", ErrBadSystem, len(s.Idle), s.Buttons)
	}
	for j, b := range s.Bounds {
		if b < 0 {
			return fmt.Errorf("%w: bound %d of button %d is negative", ErrBadSystem, b, j)
		}
	}
	for i, eq := range s.Rows {
		if len(eq.Coeffs) != s.Buttons {
			return fmt.Errorf("%w: row %d has %d coefficients, want %d", ErrBadSystem, i, len(eq.Coeffs), s.Buttons)
		}
	}

	return nil
}

// seed is the starting candidate: all unset except idle buttons.
func (s System) seed() ConstraintRow {
	row := NewConstraintRow(s.Buttons)
	for j, idle := range s.Idle {
		if idle {
			row[j] = Fixed(0)
		}
	}

	return row
}

// Option configures Propagate via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for Propagate.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxCandidates, if > 0, caps the size of every candidate set.
	MaxCandidates int

	// OnRow is called after each row with the row index and the size of
	// the new candidate set.
	OnRow func(row, candidates int)

	// Logger receives one debug record per row.
	Logger logrus.FieldLogger

	err error
}

// DefaultOptions returns a background context, no candidate cap, a no-op
// hook and a discarding logger.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{
		Ctx:    context.Background(),
		OnRow:  func(int, int) {},
		Logger: l,
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

// WithMaxCandidates limits the candidate set size.
//
//	n > 0: limit to n
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxCandidates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxCandidates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCandidates = n
	}
}

// WithOnRow registers a per-row callback.
func WithOnRow(fn func(row, candidates int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRow = fn
		}
	}
}

// WithLogger sets the logger used for row tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// propagateErrorf wraps err with an operation tag.
func propagateErrorf(tag string, err error) error {
	return fmt.Errorf("propagate.%s: %w", tag, err)
}
