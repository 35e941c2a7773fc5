package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxLanes bounds buttons, lights and counters per machine.
const MaxLanes = 16

const (
	opNew  = "New"
	opLane = "Lane"
	opGoal = "WithGoal"
)

// Vector is a fixed-width integer vector. Lanes at or beyond the owner's
// active length are always zero.
type Vector [MaxLanes]int64

// NewVector builds a Vector from values; len(values) must not exceed MaxLanes.
func NewVector(values ...int64) (Vector, error) {
	var v Vector
	if len(values) > MaxLanes {
		return v, machineErrorf(opLane, ErrTooManyLanes)
	}
	copy(v[:], values)

	return v, nil
}

// Mask builds a 0/1 Vector with a one at each index.
func Mask(indices ...int) (Vector, error) {
	var v Vector
	for _, i := range indices {
		if i < 0 || i >= MaxLanes {
			return v, machineErrorf(opLane, fmt.Errorf("%w: %d", ErrLaneRange, i))
		}
		v[i] = 1
	}

	return v, nil
}

// IsZero reports whether every lane is zero.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// NonZero counts the nonzero lanes among the first n.
func (v Vector) NonZero(n int) int {
	count := 0
	for i := 0; i < n && i < MaxLanes; i++ {
		if v[i] != 0 {
			count++
		}
	}

	return count
}

// Bits packs the first n lanes into a bitmask (lane i → bit i, nonzero = set).
func (v Vector) Bits(n int) uint16 {
	var b uint16
	for i := 0; i < n && i < MaxLanes; i++ {
		if v[i] != 0 {
			b |= 1 << uint(i)
		}
	}

	return b
}

// Slice returns a copy of the first n lanes.
func (v Vector) Slice(n int) []int64 {
	if n > MaxLanes {
		n = MaxLanes
	}
	out := make([]int64, n)
	copy(out, v[:n])

	return out
}

// Machine is one parsed puzzle line.
type Machine struct {
	Goal    Vector   // indicator pattern, lanes in {0,1}
	Lights  int      // active indicator lanes
	Buttons []Vector // button columns in input order
	Joltage Vector   // counter targets
	Rows    int      // active counter rows
}

// New builds a Machine with no indicator goal and validates it.
func New(buttons []Vector, joltage []int64) (Machine, error) {
	target, err := NewVector(joltage...)
	if err != nil {
		return Machine{}, machineErrorf(opNew, err)
	}
	m := Machine{
		Buttons: append([]Vector(nil), buttons...),
		Joltage: target,
		Rows:    len(joltage),
	}
	if err = m.Validate(); err != nil {
		return Machine{}, machineErrorf(opNew, err)
	}

	return m, nil
}

// WithGoal returns a copy of m carrying the given indicator pattern.
func (m Machine) WithGoal(lights []bool) (Machine, error) {
	if len(lights) > MaxLanes {
		return Machine{}, machineErrorf(opGoal, ErrTooManyLanes)
	}
	out := m.Clone()
	out.Goal = Vector{}
	for i, on := range lights {
		if on {
			out.Goal[i] = 1
		}
	}
	out.Lights = len(lights)

	return out, nil
}

// Validate checks lane counts, that buttons only touch active rows or
// lights, and that targets are non-negative.
func (m Machine) Validate() error {
	if len(m.Buttons) > MaxLanes || m.Rows > MaxLanes || m.Lights > MaxLanes {
		return ErrTooManyLanes
	}
	if m.Rows < 0 || m.Lights < 0 {
		return ErrLaneRange
	}
	width := m.Rows
	if m.Lights > width {
		width = m.Lights
	}
	for j, b := range m.Buttons {
		for i := width; i < MaxLanes; i++ {
			if b[i] != 0 {
				return fmt.Errorf("%w: button %d touches lane %d", ErrLaneRange, j, i)
			}
		}
	}
	for i := 0; i < MaxLanes; i++ {
		if i >= m.Rows && m.Joltage[i] != 0 {
			return fmt.Errorf("%w: target lane %d", ErrLaneRange, i)
		}
		if m.Joltage[i] < 0 {
			return fmt.Errorf("%w: row %d", ErrNegativeTarget, i)
		}
	}
	for i := m.Lights; i < MaxLanes; i++ {
		if m.Goal[i] != 0 {
			return fmt.Errorf("%w: goal lane %d", ErrLaneRange, i)
		}
	}

	return nil
}

// Clone returns a deep copy of m.
func (m Machine) Clone() Machine {
	out := m
	out.Buttons = append([]Vector(nil), m.Buttons...)

	return out
}

// Coefficient returns the entry of button col in counter row.
func (m Machine) Coefficient(row, col int) int64 {
	return m.Buttons[col][row]
}

// String renders m back into puzzle-line form. The result is canonical:
// parsing it yields an equal Machine.
func (m Machine) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < m.Lights; i++ {
		if m.Goal[i] != 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(']')
	for _, b := range m.Buttons {
		sb.WriteString(" (")
		first := true
		for i, v := range b {
			if v == 0 {
				continue
			}
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(strconv.Itoa(i))
		}
		sb.WriteByte(')')
	}
	sb.WriteString(" {")
	for i := 0; i < m.Rows; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(m.Joltage[i], 10))
	}
	sb.WriteByte('}')

	return sb.String()
}
