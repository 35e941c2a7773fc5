package reduce

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/matrix"
)

var (
	// ErrInconsistent is returned when a row has no coefficients left but a
	// nonzero target: no assignment can satisfy it.
	ErrInconsistent = errors.New("reduce: inconsistent row")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reduce: invalid option supplied")
)

// Order selects the row ordering applied by Compact.
type Order int

const (
	// OrderFewestTerms sorts rows by ascending nonzero-coefficient count,
	// keeping elimination order for ties.
	OrderFewestTerms Order = iota

	// OrderNone keeps elimination order.
	OrderNone
)

// Reduced is a machine whose button columns and target are in row-echelon
// integer form. Rows may be smaller than the source machine's.
type Reduced struct {
	machine.Machine

	// Origin maps each row to its row index right after elimination.
	Origin []int
}

// Row returns the coefficients of row i (one per button) and its target.
func (r *Reduced) Row(i int) ([]int64, int64) {
	coeffs := make([]int64, len(r.Buttons))
	for j, b := range r.Buttons {
		coeffs[j] = b[i]
	}

	return coeffs, r.Joltage[i]
}

// String renders one equation per row, e.g. "1 0 -1 = 4".
func (r *Reduced) String() string {
	var sb strings.Builder
	for i := 0; i < r.Rows; i++ {
		coeffs, t := r.Row(i)
		for j, c := range coeffs {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatInt(c, 10))
		}
		sb.WriteString(" = ")
		sb.WriteString(strconv.FormatInt(t, 10))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Pass describes one completed elimination pass.
type Pass struct {
	Row, Col int           // pivot position
	Swapped  int           // row swapped into the pivot row, -1 when none
	Matrix   *matrix.Dense // snapshot after deflation
	Target   []int64       // snapshot of the target column
}

// Option configures Reduce and Compact.
type Option func(*Options)

// Options holds the effective configuration.
type Options struct {
	// OnPass is called after every elimination pass with a snapshot.
	OnPass func(Pass)

	// Logger receives debug records for every pass.
	Logger logrus.FieldLogger

	// Order is the row ordering applied by Compact.
	Order Order

	err error
}

// DefaultOptions returns no-op hooks, a discarding logger and
// OrderFewestTerms.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{
		OnPass: func(Pass) {},
		Logger: l,
		Order:  OrderFewestTerms,
	}
}

// WithOnPass registers a per-pass callback.
func WithOnPass(fn func(Pass)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPass = fn
		}
	}
}

// WithLogger sets the logger used for pass tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOrder selects the Compact row ordering.
func WithOrder(ord Order) Option {
	return func(o *Options) {
		switch ord {
		case OrderFewestTerms, OrderNone:
			o.Order = ord
		default:
			o.err = fmt.Errorf("%w: unknown order %d", ErrOptionViolation, ord)
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

// reduceErrorf wraps err with an operation tag.
func reduceErrorf(tag string, err error) error {
	return fmt.Errorf("reduce.%s: %w", tag, err)
}
