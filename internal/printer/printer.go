// Package printer renders batch reports for the CLI.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/katalvlaran/joltage/internal/config"
	"github.com/katalvlaran/joltage/solver"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// DisableColor turns colour off, e.g. for tests or when NO_COLOR is set.
func DisableColor() {
	color.NoColor = true
}

func init() {
	if os.Getenv("NO_COLOR") != "" {
		DisableColor()
	}
}

// Success prints a message in green with a checkmark prefix
func Success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s", fmt.Sprintf(format, a...))
}

// Warning prints a message in yellow with a warning prefix
func Warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "⚠️  %s", fmt.Sprintf(format, a...))
}

// Error prints a title in red followed by an explanation, and returns a
// plain error for cobra
func Error(w io.Writer, title, explanation string) error {
	red.Fprintf(w, "%s\n\n", title)
	fmt.Fprintf(w, "%s\n", explanation)

	return fmt.Errorf("%s", title)
}

// Report writes rep to out in the given format. Failures go to errOut for
// the plain format and inline otherwise.
func Report(out, errOut io.Writer, rep *solver.Report, format string) error {
	switch format {
	case config.FormatPlain:
		return plain(out, errOut, rep)
	case config.FormatTable:
		return table(out, rep)
	case config.FormatJSON:
		return jsonReport(out, rep)
	default:
		return fmt.Errorf("printer: unknown format %q", format)
	}
}

func plain(out, errOut io.Writer, rep *solver.Report) error {
	for _, oc := range rep.Failed() {
		Warning(errOut, "%s: %v\n", where(oc), oc.Err)
	}
	_, err := fmt.Fprintln(out, rep.Total)

	return err
}

func table(out io.Writer, rep *solver.Report) error {
	t := tablewriter.NewWriter(out)
	t.Header("#", "Line", "Presses", "Result")
	for _, oc := range rep.Outcomes {
		line := "-"
		if oc.Line > 0 {
			line = strconv.Itoa(oc.Line)
		}
		result := red.Sprint(oc.Err)
		presses := ""
		if oc.Err == nil {
			result = green.Sprint(oc.Solution.Total)
			if oc.Solution.Cached {
				result += cyan.Sprint(" (cached)")
			}
			presses = joinInts(oc.Solution.Presses)
		}
		if err := t.Append([]string{strconv.Itoa(oc.Index), line, presses, result}); err != nil {
			return err
		}
	}
	t.Footer("", "", "total", strconv.FormatInt(rep.Total, 10))

	return t.Render()
}

// machineJSON is the JSON shape of one outcome.
type machineJSON struct {
	Index   int     `json:"index"`
	Line    int     `json:"line,omitempty"`
	Total   *int64  `json:"total,omitempty"`
	Presses []int64 `json:"presses,omitempty"`
	Cached  bool    `json:"cached,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// reportJSON is the JSON shape of a report.
type reportJSON struct {
	Part     string        `json:"part"`
	Total    int64         `json:"total"`
	Solved   int           `json:"solved"`
	Failed   int           `json:"failed"`
	Elapsed  string        `json:"elapsed"`
	Machines []machineJSON `json:"machines"`
}

func jsonReport(out io.Writer, rep *solver.Report) error {
	doc := reportJSON{
		Part:     rep.Part.String(),
		Total:    rep.Total,
		Solved:   rep.Solved(),
		Failed:   len(rep.Failed()),
		Elapsed:  rep.Elapsed.String(),
		Machines: make([]machineJSON, len(rep.Outcomes)),
	}
	for i, oc := range rep.Outcomes {
		m := machineJSON{Index: oc.Index, Line: oc.Line}
		if oc.Err != nil {
			m.Error = oc.Err.Error()
		} else {
			total := oc.Solution.Total
			m.Total = &total
			m.Presses = oc.Solution.Presses
			m.Cached = oc.Solution.Cached
		}
		doc.Machines[i] = m
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// where names an outcome by line when known.
func where(oc solver.Outcome) string {
	if oc.Line > 0 {
		return fmt.Sprintf("line %d", oc.Line)
	}

	return fmt.Sprintf("machine %d", oc.Index)
}

func joinInts(vs []int64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatInt(v, 10)
	}

	return strings.Join(parts, ",")
}
