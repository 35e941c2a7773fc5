package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/solver"
)

func init() {
	DisableColor()
}

func sampleReport() *solver.Report {
	return &solver.Report{
		Part: solver.PartJoltage,
		Outcomes: []solver.Outcome{
			{Index: 0, Line: 1, Solution: &solver.Solution{Total: 10, Presses: []int64{1, 3, 0, 3, 1, 2}}},
			{Index: 1, Line: 3, Err: errors.New("unsatisfiable")},
			{Index: 2, Line: 4, Solution: &solver.Solution{Total: 12, Presses: []int64{2, 5, 0, 5}, Cached: true}},
		},
		Total: 22,
	}
}

func TestReport_Plain(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, Report(&out, &errOut, sampleReport(), "plain"))
	assert.Equal(t, "22\n", out.String())
	assert.Contains(t, errOut.String(), "line 3: unsatisfiable")
}

func TestReport_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Report(&out, nil, sampleReport(), "table"))
	s := out.String()
	for _, want := range []string{"1,3,0,3,1,2", "unsatisfiable", "12 (cached)", "22"} {
		assert.Contains(t, s, want)
	}
}

func TestReport_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Report(&out, nil, sampleReport(), "json"))

	var doc reportJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "joltage", doc.Part)
	assert.Equal(t, int64(22), doc.Total)
	assert.Equal(t, 2, doc.Solved)
	assert.Equal(t, 1, doc.Failed)
	require.Len(t, doc.Machines, 3)
	assert.Equal(t, "unsatisfiable", doc.Machines[1].Error)
	assert.Nil(t, doc.Machines[1].Total)
	require.NotNil(t, doc.Machines[2].Total)
	assert.Equal(t, int64(12), *doc.Machines[2].Total)
	assert.True(t, doc.Machines[2].Cached)
}

func TestReport_UnknownFormat(t *testing.T) {
	assert.Error(t, Report(&bytes.Buffer{}, nil, sampleReport(), "xml"))
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "solved %d\n", 3)
	Warning(&buf, "slow\n")
	err := Error(&buf, "Cannot read input", "file is missing")
	assert.EqualError(t, err, "Cannot read input")
	assert.Equal(t, "✓ solved 3\n⚠️  slow\nCannot read input\n\nfile is missing\n", buf.String())
}
