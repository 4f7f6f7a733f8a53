package gestures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default pinch-scale clamp bounds.
const (
	DefaultMinScale = 0.33
	DefaultMaxScale = 2.0
)

// Mode selects how a gesture option behaves. The zero value enables the
// gesture with its defaults.
type Mode uint8

const (
	ModeOn     Mode = iota // enabled with default settings
	ModeOff                // disabled
	ModeCustom             // enabled with the option's own settings
)

// DragOption configures translation. ModeCustom enables axes individually.
type DragOption struct {
	Mode Mode
	X, Y bool
}

// DragEnabled enables dragging on both axes.
func DragEnabled() DragOption { return DragOption{Mode: ModeOn} }

// DragDisabled disables dragging.
func DragDisabled() DragOption { return DragOption{Mode: ModeOff} }

// DragAxes enables dragging only on the given axes.
func DragAxes(x, y bool) DragOption { return DragOption{Mode: ModeCustom, X: x, Y: y} }

// axes reports which axes follow the gesture delta.
func (o DragOption) axes() (x, y bool) {
	switch o.Mode {
	case ModeOn:
		return true, true
	case ModeCustom:
		return o.X, o.Y
	default:
		return false, false
	}
}

// RotateOption configures pinch rotation. ModeCustom with a positive Step
// snaps the rotation to multiples of Step degrees when the gesture ends.
type RotateOption struct {
	Mode Mode
	Step float64
}

// RotateEnabled enables free rotation.
func RotateEnabled() RotateOption { return RotateOption{Mode: ModeOn} }

// RotateDisabled disables rotation.
func RotateDisabled() RotateOption { return RotateOption{Mode: ModeOff} }

// RotateSnap enables rotation with end-of-gesture snapping to step degrees.
func RotateSnap(step float64) RotateOption { return RotateOption{Mode: ModeCustom, Step: step} }

func (o RotateOption) enabled() bool { return o.Mode != ModeOff }

func (o RotateOption) snapStep() (float64, bool) {
	return o.Step, o.Mode == ModeCustom && o.Step > 0
}

// ScaleOption configures pinch scaling. ModeCustom overrides the clamp bounds.
type ScaleOption struct {
	Mode     Mode
	Min, Max float64
}

// ScaleEnabled enables scaling within the default bounds.
func ScaleEnabled() ScaleOption { return ScaleOption{Mode: ModeOn} }

// ScaleDisabled disables scaling.
func ScaleDisabled() ScaleOption { return ScaleOption{Mode: ModeOff} }

// ScaleBounds enables scaling clamped to [min, max].
func ScaleBounds(min, max float64) ScaleOption {
	return ScaleOption{Mode: ModeCustom, Min: min, Max: max}
}

func (o ScaleOption) enabled() bool { return o.Mode != ModeOff }

func (o ScaleOption) bounds() (float64, float64) {
	if o.Mode == ModeCustom {
		return o.Min, o.Max
	}
	return DefaultMinScale, DefaultMaxScale
}

// Config is supplied once when a Gesture is created.
//
// Rotate and Scale are host-driven overrides of the initial transform; nil
// leaves the default 0deg and 1. Later host changes go through
// Gesture.SetRotate and Gesture.SetScale.
type Config struct {
	Draggable DragOption   `toml:"draggable" yaml:"draggable" json:"draggable"`
	Rotatable RotateOption `toml:"rotatable" yaml:"rotatable" json:"rotatable"`
	Scalable  ScaleOption  `toml:"scalable" yaml:"scalable" json:"scalable"`

	Left   float64  `toml:"left" yaml:"left" json:"left"`
	Top    float64  `toml:"top" yaml:"top" json:"top"`
	Rotate *Angle   `toml:"rotate" yaml:"rotate" json:"rotate,omitempty"`
	Scale  *float64 `toml:"scale" yaml:"scale" json:"scale,omitempty"`

	// SilentTerminate suppresses end-family callbacks when the host
	// terminates a gesture. Cleanup happens either way.
	SilentTerminate bool `toml:"silent_terminate" yaml:"silent_terminate" json:"silentTerminate"`
}

// DefaultConfig returns a config with drag, rotate and scale enabled.
func DefaultConfig() Config {
	return Config{
		Draggable: DragEnabled(),
		Rotatable: RotateEnabled(),
		Scalable:  ScaleEnabled(),
	}
}

// initialTransform builds the transform at mount time.
func (c *Config) initialTransform() Transform {
	t := DefaultTransform()
	t.Left, t.Top = c.Left, c.Top
	if c.Rotate != nil {
		t.Rotate = *c.Rotate
	}
	if c.Scale != nil {
		t.Scale = *c.Scale
	}
	return t
}

// --- File loading ---

// LoadConfigFile reads a config from a .toml, .yaml/.yml or .json file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeConfigTOML(bytes.NewReader(data))
	case ".yaml", ".yml":
		return DecodeConfigYAML(bytes.NewReader(data))
	case ".json":
		return DecodeConfigJSON(bytes.NewReader(data))
	default:
		return Config{}, fmt.Errorf("load config: unsupported extension %q", filepath.Ext(path))
	}
}

// DecodeConfigTOML decodes a TOML config. Unknown keys are an error.
func DecodeConfigTOML(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	// Option tables are consumed by their UnmarshalTOML, so only top-level
	// keys are checked here.
	var unknown []string
	for _, key := range md.Undecoded() {
		if len(key) == 1 {
			unknown = append(unknown, key.String())
		}
	}
	if len(unknown) > 0 {
		return Config{}, fmt.Errorf("decode config: unknown keys %v", unknown)
	}
	return cfg, nil
}

// DecodeConfigYAML decodes a YAML config. Unknown keys are an error.
func DecodeConfigYAML(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// DecodeConfigJSON decodes a JSON config. Unknown keys are an error.
func DecodeConfigJSON(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// WriteConfigTOML encodes cfg as TOML. Options are written in their short
// bool form unless they carry custom settings.
func WriteConfigTOML(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg.fileForm()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// WriteConfigYAML encodes cfg as YAML.
func WriteConfigYAML(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.fileForm()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return enc.Close()
}

// fileForm flattens the config into plain values so every encoder writes the
// same bool-or-table shape the decoders accept.
func (c Config) fileForm() map[string]any {
	m := map[string]any{
		"draggable":        c.Draggable.fileForm(),
		"rotatable":        c.Rotatable.fileForm(),
		"scalable":         c.Scalable.fileForm(),
		"left":             c.Left,
		"top":              c.Top,
		"silent_terminate": c.SilentTerminate,
	}
	if c.Rotate != nil {
		m["rotate"] = c.Rotate.String()
	}
	if c.Scale != nil {
		m["scale"] = *c.Scale
	}
	return m
}

func (o DragOption) fileForm() any {
	if o.Mode == ModeCustom {
		return map[string]any{"x": o.X, "y": o.Y}
	}
	return o.Mode == ModeOn
}

func (o RotateOption) fileForm() any {
	if o.Mode == ModeCustom {
		return map[string]any{"step": o.Step}
	}
	return o.Mode == ModeOn
}

func (o ScaleOption) fileForm() any {
	if o.Mode == ModeCustom {
		return map[string]any{"min": o.Min, "max": o.Max}
	}
	return o.Mode == ModeOn
}

// --- Bool-or-object decoding ---
//
// Each option accepts either a bool (true = ModeOn, false = ModeOff) or an
// object that selects ModeCustom. Missing object fields take defaults: drag
// axes default to false, step to 0 (no snapping), bounds to the defaults.

type dragFields struct {
	X bool `json:"x" yaml:"x"`
	Y bool `json:"y" yaml:"y"`
}

type rotateFields struct {
	Step float64 `json:"step" yaml:"step"`
}

type scaleFields struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func modeFromBool(on bool) Mode {
	if on {
		return ModeOn
	}
	return ModeOff
}

// UnmarshalJSON accepts true, false or {"x":bool,"y":bool}.
func (o *DragOption) UnmarshalJSON(b []byte) error {
	var on bool
	if err := json.Unmarshal(b, &on); err == nil {
		*o = DragOption{Mode: modeFromBool(on)}
		return nil
	}
	var f dragFields
	if err := decodeStrictJSON(b, &f); err != nil {
		return fmt.Errorf("draggable: %w", err)
	}
	*o = DragAxes(f.X, f.Y)
	return nil
}

// MarshalJSON writes the bool form unless custom axes are set.
func (o DragOption) MarshalJSON() ([]byte, error) { return json.Marshal(o.fileForm()) }

// UnmarshalYAML accepts a bool scalar or a mapping with x and y.
func (o *DragOption) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var on bool
		if err := n.Decode(&on); err != nil {
			return fmt.Errorf("draggable: %w", err)
		}
		*o = DragOption{Mode: modeFromBool(on)}
		return nil
	}
	var f dragFields
	if err := checkYAMLKeys(n, "x", "y"); err != nil {
		return fmt.Errorf("draggable: %w", err)
	}
	if err := n.Decode(&f); err != nil {
		return fmt.Errorf("draggable: %w", err)
	}
	*o = DragAxes(f.X, f.Y)
	return nil
}

// UnmarshalTOML accepts a bool or a table with x and y.
func (o *DragOption) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case bool:
		*o = DragOption{Mode: modeFromBool(v)}
		return nil
	case map[string]any:
		if err := checkTOMLKeys(v, "x", "y"); err != nil {
			return fmt.Errorf("draggable: %w", err)
		}
		x, err := tomlBool(v, "x")
		if err != nil {
			return fmt.Errorf("draggable: %w", err)
		}
		y, err := tomlBool(v, "y")
		if err != nil {
			return fmt.Errorf("draggable: %w", err)
		}
		*o = DragAxes(x, y)
		return nil
	}
	return fmt.Errorf("draggable: want bool or table, got %T", v)
}

// UnmarshalJSON accepts true, false or {"step":n}.
func (o *RotateOption) UnmarshalJSON(b []byte) error {
	var on bool
	if err := json.Unmarshal(b, &on); err == nil {
		*o = RotateOption{Mode: modeFromBool(on)}
		return nil
	}
	var f rotateFields
	if err := decodeStrictJSON(b, &f); err != nil {
		return fmt.Errorf("rotatable: %w", err)
	}
	*o = RotateSnap(f.Step)
	return nil
}

// MarshalJSON writes the bool form unless a step is set.
func (o RotateOption) MarshalJSON() ([]byte, error) { return json.Marshal(o.fileForm()) }

// UnmarshalYAML accepts a bool scalar or a mapping with step.
func (o *RotateOption) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var on bool
		if err := n.Decode(&on); err != nil {
			return fmt.Errorf("rotatable: %w", err)
		}
		*o = RotateOption{Mode: modeFromBool(on)}
		return nil
	}
	var f rotateFields
	if err := checkYAMLKeys(n, "step"); err != nil {
		return fmt.Errorf("rotatable: %w", err)
	}
	if err := n.Decode(&f); err != nil {
		return fmt.Errorf("rotatable: %w", err)
	}
	*o = RotateSnap(f.Step)
	return nil
}

// UnmarshalTOML accepts a bool or a table with step.
func (o *RotateOption) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case bool:
		*o = RotateOption{Mode: modeFromBool(v)}
		return nil
	case map[string]any:
		if err := checkTOMLKeys(v, "step"); err != nil {
			return fmt.Errorf("rotatable: %w", err)
		}
		step, err := tomlNumber(v, "step", 0)
		if err != nil {
			return fmt.Errorf("rotatable: %w", err)
		}
		*o = RotateSnap(step)
		return nil
	}
	return fmt.Errorf("rotatable: want bool or table, got %T", v)
}

// UnmarshalJSON accepts true, false or {"min":n,"max":n}.
func (o *ScaleOption) UnmarshalJSON(b []byte) error {
	var on bool
	if err := json.Unmarshal(b, &on); err == nil {
		*o = ScaleOption{Mode: modeFromBool(on)}
		return nil
	}
	f := scaleFields{Min: DefaultMinScale, Max: DefaultMaxScale}
	if err := decodeStrictJSON(b, &f); err != nil {
		return fmt.Errorf("scalable: %w", err)
	}
	*o = ScaleBounds(f.Min, f.Max)
	return nil
}

// MarshalJSON writes the bool form unless custom bounds are set.
func (o ScaleOption) MarshalJSON() ([]byte, error) { return json.Marshal(o.fileForm()) }

// UnmarshalYAML accepts a bool scalar or a mapping with min and max.
func (o *ScaleOption) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var on bool
		if err := n.Decode(&on); err != nil {
			return fmt.Errorf("scalable: %w", err)
		}
		*o = ScaleOption{Mode: modeFromBool(on)}
		return nil
	}
	f := scaleFields{Min: DefaultMinScale, Max: DefaultMaxScale}
	if err := checkYAMLKeys(n, "min", "max"); err != nil {
		return fmt.Errorf("scalable: %w", err)
	}
	if err := n.Decode(&f); err != nil {
		return fmt.Errorf("scalable: %w", err)
	}
	*o = ScaleBounds(f.Min, f.Max)
	return nil
}

// UnmarshalTOML accepts a bool or a table with min and max.
func (o *ScaleOption) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case bool:
		*o = ScaleOption{Mode: modeFromBool(v)}
		return nil
	case map[string]any:
		if err := checkTOMLKeys(v, "min", "max"); err != nil {
			return fmt.Errorf("scalable: %w", err)
		}
		lo, err := tomlNumber(v, "min", DefaultMinScale)
		if err != nil {
			return fmt.Errorf("scalable: %w", err)
		}
		hi, err := tomlNumber(v, "max", DefaultMaxScale)
		if err != nil {
			return fmt.Errorf("scalable: %w", err)
		}
		*o = ScaleBounds(lo, hi)
		return nil
	}
	return fmt.Errorf("scalable: want bool or table, got %T", v)
}

// tomlNumber reads an integer or float table entry, returning def when absent.
func tomlNumber(m map[string]any, key string, def float64) (float64, error) {
	switch v := m[key].(type) {
	case nil:
		return def, nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%s: want number, got %T", key, v)
	}
}

// tomlBool reads a bool table entry, returning false when absent.
func tomlBool(m map[string]any, key string) (bool, error) {
	switch v := m[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("%s: want bool, got %T", key, v)
	}
}

// checkTOMLKeys rejects table keys outside known.
func checkTOMLKeys(m map[string]any, known ...string) error {
	var unknown []string
	for key := range m {
		if !slices.Contains(known, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("unknown keys %v", unknown)
	}
	return nil
}

// checkYAMLKeys rejects mapping keys outside known. Node.Decode does not
// inherit the decoder's KnownFields setting.
func checkYAMLKeys(n *yaml.Node, known ...string) error {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	var unknown []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := n.Content[i].Value; !slices.Contains(known, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown keys %v", unknown)
	}
	return nil
}

// decodeStrictJSON decodes b into v, rejecting unknown fields.
func decodeStrictJSON(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
