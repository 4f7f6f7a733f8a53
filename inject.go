package gestures

import (
	"math"
	"slices"
)

// Synthetic contact IDs used by the injection helpers.
const (
	injectFinger0 = 1
	injectFinger1 = 2
)

// InjectFrame queues one frame of contacts. An empty frame lifts every
// finger. The frame is consumed by the next Poll instead of hardware input.
func (in *TouchInput) InjectFrame(touches ...Touch) {
	in.injectQueue = append(in.injectQueue, slices.Clone(touches))
}

// InjectPress queues a single finger going down at (x, y).
func (in *TouchInput) InjectPress(x, y float64) {
	in.InjectFrame(Touch{ID: injectFinger0, X: x, Y: y})
}

// InjectMove queues the single injected finger moving to (x, y).
func (in *TouchInput) InjectMove(x, y float64) {
	in.InjectFrame(Touch{ID: injectFinger0, X: x, Y: y})
}

// InjectRelease queues a frame with no contacts.
func (in *TouchInput) InjectRelease() {
	in.InjectFrame()
}

// InjectDrag queues a one-finger drag: press at (fromX, fromY), linearly
// interpolated moves, a final move at (toX, toY), then release. frames counts
// the contact frames (minimum 2); the release adds one more.
func (in *TouchInput) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease()
}

// InjectPinch queues a two-finger pinch around (cx, cy). Finger distance and
// the angle of the finger vector are interpolated from the from values to the
// to values. frames counts the contact frames (minimum 2); the release adds
// one more.
func (in *TouchInput) InjectPinch(cx, cy, fromDist, toDist float64, fromAngle, toAngle Angle, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		dist := fromDist + (toDist-fromDist)*t
		ang := fromAngle + (toAngle-fromAngle)*Angle(t)
		in.InjectFrame(pinchTouches(cx, cy, dist, ang)...)
	}
	in.InjectRelease()
}

// pinchTouches places two fingers dist apart, centered on (cx, cy), with the
// vector from the first to the second pointing at ang.
func pinchTouches(cx, cy, dist float64, ang Angle) []Touch {
	sin, cos := math.Sincos(ang.Radians())
	hx, hy := cos*dist/2, sin*dist/2
	return []Touch{
		{ID: injectFinger0, X: cx - hx, Y: cy - hy},
		{ID: injectFinger1, X: cx + hx, Y: cy + hy},
	}
}

// Pending returns the number of queued injected frames.
func (in *TouchInput) Pending() int { return len(in.injectQueue) }

// pollInjected pops one injected frame and diffs it. consumed reports
// whether a frame was available; real input should be skipped if so.
func (in *TouchInput) pollInjected() (ev TouchEvent, ok, consumed bool) {
	if len(in.injectQueue) == 0 {
		return TouchEvent{}, false, false
	}
	frame := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue[len(in.injectQueue)-1] = nil
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	ev, ok = in.feed(frame)
	return ev, ok, true
}

// Drain feeds every queued injected frame into g without touching hardware.
// It returns the number of frames consumed.
func (in *TouchInput) Drain(g *Gesture) int {
	n := 0
	for {
		ev, ok, consumed := in.pollInjected()
		if !consumed {
			return n
		}
		n++
		if ok {
			g.HandleEvent(ev)
		}
	}
}
