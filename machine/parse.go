package machine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Token delimiters of the puzzle line format.
const (
	goalOpen    = '['
	goalClose   = ']'
	buttonOpen  = '('
	buttonClose = ')'
	targetOpen  = '{'
	targetClose = '}'
	listSep     = ","
	lightOff    = '.'
	lightOn     = '#'
)

var (
	errShortLine   = errors.New("line needs a goal pattern and a joltage list")
	errBracket     = errors.New("unexpected delimiter")
	errEmptyList   = errors.New("empty list")
	errBadLight    = errors.New("unexpected indicator character")
	errBadIndex    = errors.New("malformed counter index")
	errBadTarget   = errors.New("malformed joltage target")
	errDuplicateIx = errors.New("duplicate counter index")
)

// ParseLine parses one puzzle line into a Machine.
// Errors match ErrParse, ErrTooManyLanes or ErrLaneRange.
func ParseLine(line string) (Machine, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Machine{}, &ParseError{Token: line, Err: errShortLine}
	}

	goal, lights, err := parseGoal(fields[0])
	if err != nil {
		return Machine{}, err
	}
	joltage, rows, err := parseTargets(fields[len(fields)-1])
	if err != nil {
		return Machine{}, err
	}

	groups := fields[1 : len(fields)-1]
	if len(groups) > MaxLanes {
		return Machine{}, &ParseError{Token: groups[MaxLanes], Err: ErrTooManyLanes}
	}
	buttons := make([]Vector, 0, len(groups))
	for _, g := range groups {
		b, err := parseButton(g)
		if err != nil {
			return Machine{}, err
		}
		buttons = append(buttons, b)
	}

	m := Machine{Goal: goal, Lights: lights, Buttons: buttons, Joltage: joltage, Rows: rows}
	if err = m.Validate(); err != nil {
		return Machine{}, &ParseError{Token: line, Err: err}
	}

	return m, nil
}

// Parse reads every non-blank line of r and stops at the first error,
// which carries the 1-based line number.
func Parse(r io.Reader) ([]Machine, error) {
	var out []Machine
	err := Scan(r, func(n int, m Machine, err error) error {
		if err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ParseString is Parse over an in-memory input.
func ParseString(input string) ([]Machine, error) {
	return Parse(strings.NewReader(input))
}

// Scan calls fn for every non-blank line of r with the parsed machine or the
// line's parse error. Returning a non-nil error from fn stops the scan and
// Scan returns it unchanged; read failures are returned wrapped.
func Scan(r io.Reader, fn func(line int, m Machine, err error) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		m, err := ParseLine(text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = n
			}
		}
		if err = fn(n, m, err); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return machineErrorf("Scan", err)
	}

	return nil
}

// parseGoal parses "[.##.]" into a 0/1 vector and its length.
func parseGoal(tok string) (Vector, int, error) {
	var v Vector
	body, err := unwrap(tok, goalOpen, goalClose)
	if err != nil {
		return v, 0, err
	}
	if len(body) > MaxLanes {
		return v, 0, &ParseError{Token: tok, Err: ErrTooManyLanes}
	}
	for i, c := range []byte(body) {
		switch c {
		case lightOff:
		case lightOn:
			v[i] = 1
		default:
			return v, 0, &ParseError{Token: tok, Err: fmt.Errorf("%w %q", errBadLight, c)}
		}
	}

	return v, len(body), nil
}

// parseButton parses "(0,2,3)" into a 0/1 mask.
func parseButton(tok string) (Vector, error) {
	var v Vector
	items, err := splitList(tok, buttonOpen, buttonClose)
	if err != nil {
		return v, err
	}
	for _, item := range items {
		idx, err := strconv.Atoi(item)
		if err != nil {
			return v, &ParseError{Token: tok, Err: fmt.Errorf("%w: %q", errBadIndex, item)}
		}
		if idx < 0 || idx >= MaxLanes {
			return v, &ParseError{Token: tok, Err: fmt.Errorf("%w: %d", ErrLaneRange, idx)}
		}
		if v[idx] != 0 {
			return v, &ParseError{Token: tok, Err: fmt.Errorf("%w: %d", errDuplicateIx, idx)}
		}
		v[idx] = 1
	}

	return v, nil
}

// parseTargets parses "{3,5,4,7}" into the target vector and row count.
func parseTargets(tok string) (Vector, int, error) {
	var v Vector
	items, err := splitList(tok, targetOpen, targetClose)
	if err != nil {
		return v, 0, err
	}
	if len(items) > MaxLanes {
		return v, 0, &ParseError{Token: tok, Err: ErrTooManyLanes}
	}
	for i, item := range items {
		n, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return v, 0, &ParseError{Token: tok, Err: fmt.Errorf("%w: %q", errBadTarget, item)}
		}
		if n < 0 {
			return v, 0, &ParseError{Token: tok, Err: fmt.Errorf("%w: %d", ErrNegativeTarget, n)}
		}
		v[i] = n
	}

	return v, len(items), nil
}

// splitList strips the delimiters and splits on commas.
func splitList(tok string, open, end byte) ([]string, error) {
	body, err := unwrap(tok, open, end)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, &ParseError{Token: tok, Err: errEmptyList}
	}
	items := strings.Split(body, listSep)
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}

	return items, nil
}

func unwrap(tok string, open, end byte) (string, error) {
	if len(tok) < 2 || tok[0] != open || tok[len(tok)-1] != end {
		return "", &ParseError{Token: tok, Err: fmt.Errorf("%w: want %c...%c", errBracket, open, end)}
	}

	return tok[1 : len(tok)-1], nil
}
