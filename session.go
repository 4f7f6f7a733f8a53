package gestures

import (
	"math"

	"github.com/google/uuid"
)

// Session is the record of one continuous touch-contact interval. It holds
// the anchors captured when the session started, or when the touch count
// last changed, plus the running deltas between move ticks.
type Session struct {
	ID uuid.UUID

	// Anchors. Drag offsets are measured against InitialTransform and the
	// gesture delta at anchor time, not accumulated per tick.
	InitialTouches   TouchSet
	InitialTransform Transform
	AnchorDX         float64
	AnchorDY         float64

	// Running deltas since the previous tick. Rotation and scale are applied
	// incrementally to the committed transform, so only the change since the
	// last tick may be fed back in.
	PrevAngle    float64
	PrevDistance float64

	Ticks int

	lastTouches TouchSet
	lastDX      float64
	lastDY      float64
}

func newSession(touches TouchSet, committed Transform, dx, dy float64) *Session {
	s := &Session{ID: uuid.New()}
	s.anchor(touches, committed, dx, dy)
	return s
}

// anchor captures a fresh baseline and clears the running deltas.
func (s *Session) anchor(touches TouchSet, committed Transform, dx, dy float64) {
	s.InitialTouches = touches
	s.InitialTransform = committed
	s.AnchorDX = dx
	s.AnchorDY = dy
	s.PrevAngle = 0
	s.PrevDistance = 0
	s.observe(touches, dx, dy)
}

func (s *Session) observe(touches TouchSet, dx, dy float64) {
	s.lastTouches = touches
	s.lastDX = dx
	s.lastDY = dy
}

// drag computes the translation contribution. Enabled axes follow the
// gesture delta since the anchor; disabled axes stay pinned to the anchor.
func (s *Session) drag(ev TouchEvent, opt DragOption) contribution {
	var c contribution
	if opt.Mode == ModeOff {
		return c
	}
	x, y := opt.axes()
	left := s.InitialTransform.Left
	if x {
		left += ev.DX - s.AnchorDX
	}
	top := s.InitialTransform.Top
	if y {
		top += ev.DY - s.AnchorDY
	}
	c.setLeft(left)
	c.setTop(top)
	return c
}

// rotation returns the committed rotation advanced by the finger rotation
// since the previous tick.
func (s *Session) rotation(touches TouchSet, committed Transform) Angle {
	current := touches.Angle()
	initial := current
	if len(s.InitialTouches) > 1 {
		initial = s.InitialTouches.Angle()
	}
	newAngle := current - initial
	// Unwrapped, a vector crossing the seam jumps by 360 in one tick. The
	// drawn result is the same, but the committed angle would not be.
	diff := wrapDegrees(s.PrevAngle - newAngle)
	s.PrevAngle = newAngle
	return ComputeRotation(committed, diff)
}

// scale returns the committed scale advanced by the gained pinch distance
// since the previous tick, clamped to [lo, hi].
func (s *Session) scale(touches TouchSet, committed Transform, lo, hi float64) float64 {
	increased := (touches.Distance() - s.InitialTouches.Distance()) * ScaleGain
	diff := s.PrevDistance - increased
	// PrevDistance holds the gained value so the next diff compares like
	// with like; storing the raw distance would drift the scale every tick.
	s.PrevDistance = increased
	return clamp(ComputeScale(committed, diff), lo, hi)
}

// wrapDegrees maps d into (-180, 180] so a finger vector crossing the 0/360
// seam reads as a small turn.
func wrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}
