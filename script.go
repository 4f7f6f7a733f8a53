package gestures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a touch script.
type scriptStep struct {
	Action    string  `json:"action" yaml:"action"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Touches   []Touch `json:"touches,omitempty" yaml:"touches,omitempty"`
	X         float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y         float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX     float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY     float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX       float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY       float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	CenterX   float64 `json:"centerX,omitempty" yaml:"centerX,omitempty"`
	CenterY   float64 `json:"centerY,omitempty" yaml:"centerY,omitempty"`
	FromDist  float64 `json:"fromDist,omitempty" yaml:"fromDist,omitempty"`
	ToDist    float64 `json:"toDist,omitempty" yaml:"toDist,omitempty"`
	FromAngle float64 `json:"fromAngle,omitempty" yaml:"fromAngle,omitempty"`
	ToAngle   float64 `json:"toAngle,omitempty" yaml:"toAngle,omitempty"`
	Frames    int     `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// touchScript is the top-level structure for a touch script.
type touchScript struct {
	Steps []scriptStep `json:"steps" yaml:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "drag": true, "pinch": true,
	"wait": true, "reset": true, "cancel": true,
}

// ScriptRunner sequences injected touch frames across update frames for
// automated gesture testing and replay.
type ScriptRunner struct {
	// OnStep, when set, is called as each step starts executing.
	OnStep func(action, label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON touch script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script touchScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return newScriptRunner(script)
}

// LoadScriptYAML parses a YAML touch script.
func LoadScriptYAML(yamlData []byte) (*ScriptRunner, error) {
	var script touchScript
	dec := yaml.NewDecoder(bytes.NewReader(yamlData))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return newScriptRunner(script)
}

// LoadScriptFile reads a .json, .yaml or .yml touch script.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadScriptYAML(data)
	case ".json":
		return LoadScript(data)
	default:
		return nil, fmt.Errorf("load script: unsupported extension %q", filepath.Ext(path))
	}
}

func newScriptRunner(script touchScript) (*ScriptRunner, error) {
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed and their frames consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it from the update loop before
// in.Poll. Steps queue frames on in; reset and cancel act on g directly.
func (r *ScriptRunner) Step(g *Gesture, in *TouchInput) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if r.OnStep != nil {
		r.OnStep(st.Action, st.Label)
	}

	switch st.Action {
	case "press", "move":
		if len(st.Touches) > 0 {
			in.InjectFrame(st.Touches...)
		} else {
			in.InjectMove(st.X, st.Y)
		}
	case "release":
		in.InjectRelease()
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		in.InjectPinch(st.CenterX, st.CenterY, st.FromDist, st.ToDist,
			Angle(st.FromAngle), Angle(st.ToAngle), st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reset":
		g.Reset(nil)
	case "cancel":
		if ev, ok := in.Cancel(); ok {
			g.HandleEvent(ev)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}

// Replay runs r to completion against g without hardware input and returns
// the number of frames simulated.
func Replay(g *Gesture, in *TouchInput, r *ScriptRunner) int {
	frames := 0
	for !r.Done() {
		r.Step(g, in)
		if ev, ok, _ := in.pollInjected(); ok {
			g.HandleEvent(ev)
		}
		frames++
	}
	return frames
}
