package gestures

import (
	"math"
	"testing"
)

func TestInjectFrame_Copies(t *testing.T) {
	in := &TouchInput{}
	touches := []Touch{{ID: 3, X: 1}}
	in.InjectFrame(touches...)
	touches[0].X = 50
	if in.injectQueue[0][0].X != 1 {
		t.Error("queued frame aliases the caller's slice")
	}
}

func TestInjectRelease_QueuesEmptyFrame(t *testing.T) {
	in := &TouchInput{}
	in.InjectRelease()
	if in.Pending() != 1 || len(in.injectQueue[0]) != 0 {
		t.Errorf("queue = %v", in.injectQueue)
	}
}

func TestInjectDrag_Frames(t *testing.T) {
	in := &TouchInput{}
	in.InjectDrag(0, 0, 30, 60, 3)

	// 3 contact frames plus the release
	if in.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", in.Pending())
	}
	first, last := in.injectQueue[0][0], in.injectQueue[2][0]
	if first.X != 0 || first.Y != 0 || last.X != 30 || last.Y != 60 {
		t.Errorf("first = %+v, last = %+v", first, last)
	}
	if mid := in.injectQueue[1][0]; mid.X != 15 || mid.Y != 30 {
		t.Errorf("frame 1 = %+v, want (15, 30)", mid)
	}
	if len(in.injectQueue[3]) != 0 {
		t.Error("last frame is not a release")
	}
}

func TestInjectDrag_MinimumFrames(t *testing.T) {
	in := &TouchInput{}
	in.InjectDrag(0, 0, 1, 1, 0)
	if in.Pending() != 3 {
		t.Errorf("Pending = %d, want 3", in.Pending())
	}
}

func TestInjectPinch_Geometry(t *testing.T) {
	in := &TouchInput{}
	in.InjectPinch(100, 100, 50, 150, 0, 90, 3)
	if in.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", in.Pending())
	}

	start := in.injectQueue[0]
	if len(start) != 2 || start[0].ID != injectFinger0 || start[1].ID != injectFinger1 {
		t.Fatalf("start frame = %+v", start)
	}
	set := TouchSet{{start[0].X, start[0].Y}, {start[1].X, start[1].Y}}
	if !approx(set.Distance(), 50) || !approx(set.Angle(), 0) {
		t.Errorf("start distance %v angle %v", set.Distance(), set.Angle())
	}

	end := in.injectQueue[2]
	set = TouchSet{{end[0].X, end[0].Y}, {end[1].X, end[1].Y}}
	if !approx(set.Distance(), 150) || !approx(set.Angle(), 90) {
		t.Errorf("end distance %v angle %v", set.Distance(), set.Angle())
	}
	cx := (end[0].X + end[1].X) / 2
	cy := (end[0].Y + end[1].Y) / 2
	if math.Abs(cx-100) > 1e-9 || math.Abs(cy-100) > 1e-9 {
		t.Errorf("center = (%v, %v), want (100, 100)", cx, cy)
	}
}

func TestDrain_Drag(t *testing.T) {
	in := &TouchInput{}
	g := New("g", DefaultConfig())
	var kinds []CallbackKind
	for _, k := range CallbackKinds() {
		g.On(k, func(ctx GestureContext) { kinds = append(kinds, ctx.Kind) })
	}

	in.InjectDrag(10, 10, 40, 50, 3)
	if n := in.Drain(g); n != 4 {
		t.Errorf("Drain = %d, want 4", n)
	}
	if g.Transform().Left != 30 || g.Transform().Top != 40 {
		t.Errorf("transform = %v, want left 30 top 40", g.Transform())
	}
	want := []CallbackKind{CallbackStart, CallbackChange, CallbackChange, CallbackEnd, CallbackRelease}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kind %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if g.Active() {
		t.Error("gesture still active after drain")
	}
}

func TestDrain_Pinch(t *testing.T) {
	in := &TouchInput{}
	g := New("g", DefaultConfig())

	in.InjectPinch(0, 0, 100, 200, 0, 0, 3)
	in.Drain(g)

	want := 1 + 100*ScaleGain/ScaleDivisor
	if !approx(g.Transform().Scale, want) {
		t.Errorf("Scale = %v, want %v", g.Transform().Scale, want)
	}
	if !approx(g.Transform().Left, 0) || !approx(g.Transform().Top, 0) {
		t.Errorf("symmetric pinch moved the element: %v", g.Transform())
	}
}

func TestDrain_Empty(t *testing.T) {
	if n := (&TouchInput{}).Drain(New("g", DefaultConfig())); n != 0 {
		t.Errorf("Drain = %d, want 0", n)
	}
}
