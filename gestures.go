package gestures

import (
	"encoding/json"
	"fmt"
)

// Point is one active touch location in screen coordinates.
type Point struct {
	X, Y float64
}

// TouchSet is an ordered list of touch points. Only the first two points take
// part in angle and distance calculations.
type TouchSet []Point

// Touch is a raw touch contact with a stable identity for the duration of the
// contact. IDs order the points returned by Classify.
type Touch struct {
	ID int     `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
}

// Phase identifies where a TouchEvent sits in the gesture lifecycle.
type Phase uint8

const (
	PhaseStart     Phase = iota // first contact went down
	PhaseMove                   // contacts moved, or a finger was added or lifted
	PhaseEnd                    // last contact lifted
	PhaseTerminate              // the host revoked the gesture
)

var phaseNames = [...]string{"start", "move", "end", "terminate"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// TouchEvent is one input tick from the host's pointer system.
// DX and DY hold the aggregate gesture movement since the gesture began.
type TouchEvent struct {
	Phase   Phase   `json:"phase"`
	Touches []Touch `json:"touches"`
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
}

// Transform is the committed presentation of the hosted element.
// It always carries exactly one rotation and one scale component.
type Transform struct {
	Left   float64
	Top    float64
	Rotate Angle
	Scale  float64
}

// DefaultTransform returns the transform of an untouched element: no offset,
// 0deg rotation, scale 1.
func DefaultTransform() Transform {
	return Transform{Scale: 1}
}

// transformEntry is one element of the transform array in the style encoding.
// Exactly one of the fields is set.
type transformEntry struct {
	Rotate *Angle   `json:"rotate,omitempty"`
	Scale  *float64 `json:"scale,omitempty"`
}

type transformJSON struct {
	Left      float64          `json:"left"`
	Top       float64          `json:"top"`
	Transform []transformEntry `json:"transform"`
}

// MarshalJSON encodes the transform in the style form:
//
//	{"left":0,"top":0,"transform":[{"rotate":"0deg"},{"scale":1}]}
func (t Transform) MarshalJSON() ([]byte, error) {
	rot, scale := t.Rotate, t.Scale
	return json.Marshal(transformJSON{
		Left:      t.Left,
		Top:       t.Top,
		Transform: []transformEntry{{Rotate: &rot}, {Scale: &scale}},
	})
}

// UnmarshalJSON decodes the style form. Repeated rotate or scale entries
// collapse to the last one; missing entries default to 0deg and 1.
func (t *Transform) UnmarshalJSON(b []byte) error {
	var raw transformJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := DefaultTransform()
	out.Left, out.Top = raw.Left, raw.Top
	for _, e := range raw.Transform {
		if e.Rotate != nil {
			out.Rotate = *e.Rotate
		}
		if e.Scale != nil {
			out.Scale = *e.Scale
		}
	}
	*t = out
	return nil
}

func (t Transform) String() string {
	return fmt.Sprintf("{left:%g top:%g rotate:%s scale:%g}", t.Left, t.Top, t.Rotate, t.Scale)
}

// CallbackKind identifies a lifecycle callback family member.
type CallbackKind uint8

const (
	CallbackStart           CallbackKind = iota // session began
	CallbackChange                              // fires after every move tick merge
	CallbackEnd                                 // session ended
	CallbackRelease                             // legacy alias of CallbackEnd
	CallbackMultiTouchStart                     // more than one finger down, once per session
	CallbackMultiTouchChange                    // move tick while multi-touching
	CallbackMultiTouchEnd                       // session ended after multi-touch
	CallbackRotateStart                         // first rotation tick of the session
	CallbackRotateChange                        // later rotation ticks
	CallbackRotateEnd                           // session ended after rotating, after snapping
	CallbackScaleStart                          // first scale tick of the session
	CallbackScaleChange                         // later scale ticks
	CallbackScaleEnd                            // session ended after scaling

	numCallbackKinds
)

var callbackNames = [numCallbackKinds]string{
	"start", "change", "end", "release",
	"multiTouchStart", "multiTouchChange", "multiTouchEnd",
	"rotateStart", "rotateChange", "rotateEnd",
	"scaleStart", "scaleChange", "scaleEnd",
}

// CallbackKinds returns every callback kind in declaration order.
func CallbackKinds() []CallbackKind {
	kinds := make([]CallbackKind, numCallbackKinds)
	for i := range kinds {
		kinds[i] = CallbackKind(i)
	}
	return kinds
}

func (k CallbackKind) String() string {
	if k < numCallbackKinds {
		return callbackNames[k]
	}
	return fmt.Sprintf("CallbackKind(%d)", uint8(k))
}

// MarshalText encodes the callback kind by name.
func (k CallbackKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a callback kind name.
func (k *CallbackKind) UnmarshalText(b []byte) error {
	for i, name := range callbackNames {
		if name == string(b) {
			*k = CallbackKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown callback kind %q", b)
}

// Emission is a callback the state machine asks the host to fire, along with
// the transform the callback receives.
type Emission struct {
	Kind      CallbackKind `json:"kind"`
	Transform Transform    `json:"transform"`
}
