package reduce

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/matrix"
)

const (
	opReduce  = "Reduce"
	opCompact = "Compact"
)

// eliminator holds the mutable state of one Reduce call.
type eliminator struct {
	a      *matrix.Dense // rows = counters, cols = buttons
	target []int64       // augmented column
	div    []int64       // per-row scale, 1 between passes
	opts   Options
}

// Reduce returns the row-echelon form of m. The receiver is not modified.
//
// Each pass picks the first column at or right of the column bound with a
// nonzero entry at or below the row bound, swaps a nonzero entry into the
// pivot row if needed, makes the pivot positive and clears the column in
// every other row by cross-scaling. Rows are then deflated by their gcd and
// the scale factors reset to 1. Finally rows with a negative target are
// negated so every target is non-negative.
func Reduce(m machine.Machine, opts ...Option) (*Reduced, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err = m.Validate(); err != nil {
		return nil, reduceErrorf(opReduce, err)
	}

	rows, cols := m.Rows, len(m.Buttons)
	grid := make([][]int64, rows)
	for i := range grid {
		grid[i] = make([]int64, cols)
		for j, b := range m.Buttons {
			grid[i][j] = b[i]
		}
	}
	a, err := matrix.FromRows(grid)
	if err != nil {
		return nil, reduceErrorf(opReduce, err)
	}
	if rows == 0 {
		// FromRows infers zero columns from an empty grid.
		if a, err = matrix.NewDense(0, cols); err != nil {
			return nil, reduceErrorf(opReduce, err)
		}
	}

	e := &eliminator{
		a:      a,
		target: m.Joltage.Slice(rows),
		div:    make([]int64, rows),
		opts:   o,
	}
	for i := range e.div {
		e.div[i] = 1
	}
	if err = e.run(); err != nil {
		return nil, reduceErrorf(opReduce, err)
	}
	for i, t := range e.target {
		if t < 0 {
			if err = matrix.NegateRow(e.a, e.target, i); err != nil {
				return nil, reduceErrorf(opReduce, err)
			}
		}
	}

	return e.result(m)
}

// run performs elimination passes until the bounds leave the matrix or no
// pivot column remains.
func (e *eliminator) run() error {
	rows, cols := e.a.Shape()
	boundRow, boundCol := 0, 0
	for boundRow < rows && boundCol < cols {
		col, ok := e.pivotColumn(boundRow, boundCol)
		if !ok {
			break
		}
		swapped, err := e.bringPivot(boundRow, col)
		if err != nil {
			return err
		}
		if err = e.eliminate(boundRow, col); err != nil {
			return err
		}
		if err = e.deflate(); err != nil {
			return err
		}
		e.report(boundRow, col, swapped)

		boundRow++
		boundCol = col + 1
	}

	return nil
}

// at reads an entry whose indices the caller already bounded.
func (e *eliminator) at(i, j int) int64 {
	v, _ := e.a.At(i, j)
	return v
}

// pivotColumn finds the first column ≥ fromCol with a nonzero entry in a
// row ≥ fromRow.
func (e *eliminator) pivotColumn(fromRow, fromCol int) (int, bool) {
	rows, cols := e.a.Shape()
	for j := fromCol; j < cols; j++ {
		for i := fromRow; i < rows; i++ {
			if e.at(i, j) != 0 {
				return j, true
			}
		}
	}

	return 0, false
}

// bringPivot swaps the first lower nonzero row into the pivot row when the
// pivot cell is zero. It returns the swapped row or -1.
func (e *eliminator) bringPivot(row, col int) (int, error) {
	if e.at(row, col) != 0 {
		return -1, nil
	}
	for i := row + 1; i < e.a.Rows(); i++ {
		if e.at(i, col) == 0 {
			continue
		}
		if err := matrix.SwapRows(e.a, e.target, row, i); err != nil {
			return -1, err
		}
		e.div[row], e.div[i] = e.div[i], e.div[row]
		return i, nil
	}

	return -1, nil
}

// eliminate clears column col in every row but the pivot row.
// Invariant: for the pivot row and the row being cleared, the entry in col
// equals that row's divisor, so after cross-scaling both entries match and
// subtraction zeroes the cell.
func (e *eliminator) eliminate(pr, col int) error {
	var err error
	if e.at(pr, col) < 0 {
		if err = matrix.NegateRow(e.a, e.target, pr); err != nil {
			return err
		}
	}
	if e.div[pr], err = matrix.Mul(e.div[pr], e.at(pr, col)); err != nil {
		return err
	}

	for r := 0; r < e.a.Rows(); r++ {
		v := e.at(r, col)
		if r == pr || v == 0 {
			continue
		}
		neg := v < 0
		if neg {
			if err = matrix.NegateRow(e.a, e.target, r); err != nil {
				return err
			}
		}
		if e.div[r], err = matrix.Mul(e.div[r], e.at(r, col)); err != nil {
			return err
		}

		top, d := e.div[pr], e.div[r]
		if err = matrix.ScaleRow(e.a, e.target, pr, d); err != nil {
			return err
		}
		if e.div[pr], err = matrix.Mul(e.div[pr], d); err != nil {
			return err
		}
		if err = matrix.ScaleRow(e.a, e.target, r, top); err != nil {
			return err
		}
		if e.div[r], err = matrix.Mul(e.div[r], top); err != nil {
			return err
		}
		if err = matrix.SubRow(e.a, e.target, r, pr); err != nil {
			return err
		}
		if neg {
			if err = matrix.NegateRow(e.a, e.target, r); err != nil {
				return err
			}
		}
	}

	return nil
}

// deflate resets every divisor and divides each row by its gcd.
func (e *eliminator) deflate() error {
	for i := range e.div {
		e.div[i] = 1
		if _, err := matrix.DeflateRow(e.a, e.target, i); err != nil {
			return err
		}
	}

	return nil
}

func (e *eliminator) report(row, col, swapped int) {
	p := Pass{
		Row:     row,
		Col:     col,
		Swapped: swapped,
		Matrix:  e.a.Clone(),
		Target:  append([]int64(nil), e.target...),
	}
	e.opts.Logger.WithFields(logrus.Fields{
		"pivot_row": row,
		"pivot_col": col,
		"swapped":   swapped,
	}).Debugf("elimination pass\n%s", p.Matrix)
	e.opts.OnPass(p)
}

// result transposes the reduced matrix back into button columns.
func (e *eliminator) result(src machine.Machine) (*Reduced, error) {
	t, err := matrix.Transpose(e.a)
	if err != nil {
		return nil, reduceErrorf(opReduce, err)
	}
	out := &Reduced{Machine: src.Clone(), Origin: make([]int, len(e.target))}
	for j := range out.Buttons {
		col, err := t.Row(j)
		if err != nil {
			return nil, reduceErrorf(opReduce, err)
		}
		out.Buttons[j] = machine.Vector{}
		copy(out.Buttons[j][:], col)
	}
	out.Joltage = machine.Vector{}
	copy(out.Joltage[:], e.target)
	for i := range out.Origin {
		out.Origin[i] = i
	}

	return out, nil
}

// Compact drops all-zero rows and reorders the remaining ones. The input is
// not modified.
func Compact(r *Reduced, opts ...Option) (*Reduced, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}

	type rowInfo struct {
		index, terms int
	}
	kept := make([]rowInfo, 0, r.Rows)
	for i := 0; i < r.Rows; i++ {
		terms := 0
		for _, b := range r.Buttons {
			if b[i] != 0 {
				terms++
			}
		}
		if terms == 0 {
			if r.Joltage[i] != 0 {
				return nil, reduceErrorf(opCompact, fmt.Errorf("%w: row %d reads 0 = %d", ErrInconsistent, i, r.Joltage[i]))
			}
			continue
		}
		kept = append(kept, rowInfo{index: i, terms: terms})
	}
	if o.Order == OrderFewestTerms {
		slices.SortStableFunc(kept, func(a, b rowInfo) int { return a.terms - b.terms })
	}

	out := &Reduced{Machine: r.Machine.Clone(), Origin: make([]int, len(kept))}
	out.Rows = len(kept)
	out.Joltage = machine.Vector{}
	for j := range out.Buttons {
		out.Buttons[j] = machine.Vector{}
	}
	for to, info := range kept {
		for j, b := range r.Buttons {
			out.Buttons[j][to] = b[info.index]
		}
		out.Joltage[to] = r.Joltage[info.index]
		out.Origin[to] = info.index
		if info.index < len(r.Origin) {
			out.Origin[to] = r.Origin[info.index]
		}
	}
	o.Logger.WithFields(logrus.Fields{"rows_in": r.Rows, "rows_out": out.Rows}).Debug("compacted system")

	return out, nil
}
