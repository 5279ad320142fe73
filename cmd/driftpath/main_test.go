package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/driftpath/config"
	"github.com/katalvlaran/driftpath/grid"
	"github.com/katalvlaran/driftpath/occupancy"
	"github.com/katalvlaran/driftpath/planner"
)

const basinFile = "../../grid/testdata/basin.txt"

// run executes the CLI with args and returns stdout, stderr and the error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestSolve_Text(t *testing.T) {
	out, _, err := run(t, "", "solve", "-f", basinFile)
	require.NoError(t, err)
	assert.Equal(t, "grid 8x6, 19 obstacles, period 12\ndirect: 18\nround-trip: 54\n", out)
}

func TestSolve_JSON(t *testing.T) {
	out, _, err := run(t, "", "solve", "-f", basinFile, "--variant", "direct", "--json", "--cache-mode", "raw")
	require.NoError(t, err)

	var sum planner.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	require.Len(t, sum.Results, 1)
	assert.Equal(t, "direct", sum.Results[0].Variant)
	assert.Equal(t, 18, sum.Results[0].Ticks)
}

func TestSolve_StdinWithRoute(t *testing.T) {
	column := "#.#\n#^#\n#.#\n#.#\n#.#\n"
	out, _, err := run(t, column, "solve", "--variant", "direct", "--show-route", "--prune")
	require.NoError(t, err)
	assert.Contains(t, out, "direct: 6\n")
	assert.Contains(t, out, "== direct ==\n")
	assert.Contains(t, out, "tick 0\n#E#\n")
	assert.Contains(t, out, "tick 6\n")
	assert.True(t, strings.HasSuffix(out, "#E#\n"), out)
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := run(t, "#.##\n#.X#\n##.#\n", "solve")
	assert.ErrorIs(t, err, grid.ErrMalformedGrid)

	_, _, err = run(t, "", "solve", "-f", basinFile, "--variant", "sideways")
	assert.Error(t, err)

	_, _, err = run(t, "", "solve", "-f", basinFile, "--max-expansions", "1")
	assert.Error(t, err)

	_, _, err = run(t, "", "--log-level", "loud", "solve", "-f", basinFile)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestFrame(t *testing.T) {
	out, _, err := run(t, "", "frame", "-f", basinFile, "--tick", "1")
	require.NoError(t, err)
	want := "tick 1 (phase 1 of 12)\n" +
		"#.######\n" +
		"#.>3.<.#\n" +
		"#<..<<.#\n" +
		"#>2.22.#\n" +
		"#>v..^<#\n" +
		"######.#\n"
	assert.Equal(t, want, out)

	// A whole period later the layout is the same.
	later, _, err := run(t, "", "frame", "-f", basinFile, "--tick", "13", "--cache-mode", "raw")
	require.NoError(t, err)
	assert.Equal(t, strings.SplitN(want, "\n", 2)[1], strings.SplitN(later, "\n", 2)[1])

	_, _, err = run(t, "", "frame", "-f", basinFile, "--tick", "-1")
	assert.ErrorIs(t, err, occupancy.ErrNegativeTick)
}

func TestConfig_Print(t *testing.T) {
	out, _, err := run(t, "", "config", "--config", "../../config/testdata/driftpath.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "variant: round-trip")
	assert.Contains(t, out, "addr: 127.0.0.1:9090")

	_, _, err = run(t, "", "config", "--config", "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "driftpath "), out)
}

func TestTrace(t *testing.T) {
	_, errOut, err := run(t, "", "--trace", "solve", "-f", basinFile, "--variant", "direct")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"Name": "astar.Search"`)
	assert.Contains(t, errOut, `"Name": "planner.Solve"`)
}

func TestLogging_JSONWhenNotTerminal(t *testing.T) {
	_, errOut, err := run(t, "", "--log-level", "debug", "solve", "-f", basinFile, "--variant", "direct")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"cli_start"`)
	assert.Contains(t, errOut, `"msg":"search_done"`)
}

func TestOverlay(t *testing.T) {
	frame := "#.#\n#.#\n"
	assert.Equal(t, "#E#\n#.#\n", overlay(frame, 3, grid.Position{X: 1, Y: 0}, 'E'))
	assert.Equal(t, frame, overlay(frame, 3, grid.Position{X: 5, Y: 0}, 'E'))
}
