package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--demo", "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckDemoLevels(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   levels/intro.level.kdl")
	assert.Contains(t, out, "ok   levels/doors.level.kdl")
}

func TestIndexCommand(t *testing.T) {
	out, err := run(t, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "First Steps")
	assert.Contains(t, out, "Open Sesame")
}

func TestDumpCommand(t *testing.T) {
	out, err := run(t, "dump", "levels/doors.level.kdl", "--query", "$.button_doors[*].name")
	require.NoError(t, err)
	assert.Contains(t, out, `"gate"`)
}

func TestSpawnCommand(t *testing.T) {
	out, err := run(t, "spawn", "doors", "--respawn")
	require.NoError(t, err)
	assert.Contains(t, out, "controlled-by")
	assert.Contains(t, out, "after restart:")

	_, err = run(t, "spawn", "nowhere")
	assert.Error(t, err)
}

func TestBriefRender(t *testing.T) {
	var out bytes.Buffer
	e := &env{out: &out, brief: true}
	src := diag.NewSource("levels/bad.level.kdl", "plane \"wide\"\n")
	e.render(src.WrongValueType(kdl.String, []kdl.Kind{kdl.Integer, kdl.Float}, kdl.Span{Offset: 6, Length: 6}))
	assert.Equal(t, "Failed to bind KDL document to object structure\n"+
		"  levels/bad.level.kdl:1:7: error: Element value has type string but should have been either integer or float\n", out.String())
}
