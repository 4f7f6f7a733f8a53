package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/gestures"
)

const dragScript = `steps:
  - action: drag
    label: diagonal
    fromX: 0
    fromY: 0
    toX: 30
    toY: 40
    frames: 3
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testContext() context.Context {
	return withLogger(context.Background(), newLogger(io.Discard, LogInfo))
}

func TestReplay_Drag(t *testing.T) {
	path := writeFile(t, "drag.yaml", dragScript)

	res, err := replay(testContext(), replayOpts{script: path})
	require.NoError(t, err)

	var kinds []string
	for _, row := range res.Emissions {
		kinds = append(kinds, row.Kind.String())
	}
	assert.Equal(t, []string{"start", "change", "change", "end", "release"}, kinds)
	assert.Equal(t, 1, res.Emissions[0].Index)
	assert.Equal(t, 15.0, res.Emissions[1].Transform.Left)
	assert.Equal(t, 20.0, res.Emissions[1].Transform.Top)

	want := gestures.DefaultTransform()
	want.Left, want.Top = 30, 40
	assert.Equal(t, want, res.Final)
	assert.Greater(t, res.Frames, 4)
}

func TestReplay_ConfigPinsAxis(t *testing.T) {
	script := writeFile(t, "drag.yaml", dragScript)
	cfg := writeFile(t, "gestures.toml", "[draggable]\nx = true\ny = false\n")

	res, err := replay(testContext(), replayOpts{script: script, configPath: cfg})
	require.NoError(t, err)
	assert.Equal(t, 30.0, res.Final.Left)
	assert.Equal(t, 0.0, res.Final.Top)
}

func TestReplay_MissingScript(t *testing.T) {
	_, err := replay(testContext(), replayOpts{script: filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}

func TestReplay_BadConfig(t *testing.T) {
	script := writeFile(t, "drag.yaml", dragScript)
	cfg := writeFile(t, "gestures.toml", "bogus = 1\n")

	_, err := replay(testContext(), replayOpts{script: script, configPath: cfg})
	assert.ErrorContains(t, err, "unknown keys")
}

func TestReplayCommand_Table(t *testing.T) {
	path := writeFile(t, "drag.yaml", dragScript)

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"replay", path})
	require.NoError(t, root.ExecuteContext(context.Background()))

	text := out.String()
	assert.Contains(t, text, "drag.yaml")
	assert.Contains(t, text, "release")
	assert.Contains(t, text, "30.00")
	assert.Contains(t, logs.String(), "replay complete")
}

func TestReplayCommand_JSON(t *testing.T) {
	path := writeFile(t, "drag.yaml", dragScript)

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"replay", path, "--json"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	sc := bufio.NewScanner(strings.NewReader(out.String()))
	var rows []emissionRow
	var last string
	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(line, `"final"`) {
			last = line
			continue
		}
		var row emissionRow
		require.NoError(t, json.Unmarshal([]byte(line), &row))
		rows = append(rows, row)
	}
	require.Len(t, rows, 5)
	assert.Equal(t, gestures.CallbackRelease, rows[4].Kind)

	var tail struct {
		Final  gestures.Transform `json:"final"`
		Frames int                `json:"frames"`
	}
	require.NoError(t, json.Unmarshal([]byte(last), &tail))
	assert.Equal(t, 30.0, tail.Final.Left)
	assert.Equal(t, 40.0, tail.Final.Top)
}
