package gestures

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxTouches bounds the slot table: slot 0 = mouse, 1-9 = touch.
const maxTouches = 10

// TouchInput turns per-frame Ebitengine touch state into TouchEvents.
//
// Each hardware contact is mapped to a stable slot that becomes its Touch.ID,
// so Classify keeps fingers in a consistent order. DX and DY accumulate the
// centroid motion of contacts present in consecutive frames; a finger joining
// or lifting does not move the delta.
type TouchInput struct {
	// Mouse treats the left mouse button as a touch in slot 0 while no touch
	// contacts exist.
	Mouse bool

	touchMap  [maxTouches]ebiten.TouchID
	touchUsed [maxTouches]bool
	idBuf     []ebiten.TouchID
	frameBuf  []Touch

	down   bool
	prev   []Touch
	dx, dy float64

	injectQueue [][]Touch
}

// NewTouchInput creates a TouchInput that also reads the mouse.
func NewTouchInput() *TouchInput {
	return &TouchInput{Mouse: true}
}

// Poll reads this frame's contacts and returns the event to deliver, if any.
// An injected frame, when queued, replaces hardware input for the frame.
// Call once per Update.
func (in *TouchInput) Poll() (TouchEvent, bool) {
	if ev, ok, consumed := in.pollInjected(); consumed {
		return ev, ok
	}
	return in.feed(in.readHardware())
}

// Update polls one frame and delivers the resulting event, if any, to g.
func (in *TouchInput) Update(g *Gesture) bool {
	ev, ok := in.Poll()
	if ok {
		g.HandleEvent(ev)
	}
	return ok
}

// Cancel ends the current contact interval as a host termination. It returns
// false when no contact is down.
func (in *TouchInput) Cancel() (TouchEvent, bool) {
	if !in.down {
		return TouchEvent{}, false
	}
	ev := TouchEvent{Phase: PhaseTerminate, Touches: in.prev, DX: in.dx, DY: in.dy}
	in.down = false
	in.prev = nil
	return ev, true
}

// Down reports whether any contact is currently down.
func (in *TouchInput) Down() bool { return in.down }

// feed diffs frame against the previous frame.
func (in *TouchInput) feed(frame []Touch) (TouchEvent, bool) {
	switch {
	case len(frame) > 0 && !in.down:
		in.down = true
		in.dx, in.dy = 0, 0
		in.prev = slices.Clone(frame)
		return TouchEvent{Phase: PhaseStart, Touches: slices.Clone(frame)}, true

	case len(frame) == 0 && in.down:
		ev := TouchEvent{Phase: PhaseEnd, Touches: in.prev, DX: in.dx, DY: in.dy}
		in.down = false
		in.prev = nil
		return ev, true

	case len(frame) > 0 && in.down:
		if slices.Equal(in.prev, frame) {
			return TouchEvent{}, false
		}
		mx, my := sharedMotion(in.prev, frame)
		in.dx += mx
		in.dy += my
		in.prev = slices.Clone(frame)
		return TouchEvent{Phase: PhaseMove, Touches: slices.Clone(frame), DX: in.dx, DY: in.dy}, true
	}
	return TouchEvent{}, false
}

// sharedMotion returns the mean movement of the contacts present in both
// frames.
func sharedMotion(prev, cur []Touch) (float64, float64) {
	var sx, sy float64
	n := 0
	for _, c := range cur {
		for _, p := range prev {
			if p.ID == c.ID {
				sx += c.X - p.X
				sy += c.Y - p.Y
				n++
				break
			}
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sx / float64(n), sy / float64(n)
}

// readHardware polls Ebitengine for the active contacts, ordered by slot.
func (in *TouchInput) readHardware() []Touch {
	in.idBuf = ebiten.AppendTouchIDs(in.idBuf[:0])
	frame := in.frameBuf[:0]

	var active [maxTouches]bool
	for _, tid := range in.idBuf {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		frame = append(frame, Touch{ID: slot, X: float64(tx), Y: float64(ty)})
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxTouches; i++ {
		if in.touchUsed[i] && !active[i] {
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}

	if len(frame) == 0 && in.Mouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		frame = append(frame, Touch{ID: 0, X: float64(mx), Y: float64(my)})
	}

	slices.SortFunc(frame, func(a, b Touch) int { return a.ID - b.ID })
	in.frameBuf = frame
	return frame
}

// touchSlot maps an ebiten.TouchID to a slot (1-9).
// Returns the existing slot or allocates the lowest free one. Returns -1 if full.
func (in *TouchInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxTouches; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxTouches; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}
