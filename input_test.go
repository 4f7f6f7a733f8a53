package gestures

import (
	"slices"
	"testing"
)

func TestFeed_Lifecycle(t *testing.T) {
	in := &TouchInput{}

	ev, ok := in.feed([]Touch{{ID: 1, X: 0, Y: 0}})
	if !ok || ev.Phase != PhaseStart || ev.DX != 0 || ev.DY != 0 {
		t.Fatalf("first contact = %+v, %v", ev, ok)
	}
	if !in.Down() {
		t.Error("Down() = false after start")
	}

	ev, ok = in.feed([]Touch{{ID: 1, X: 10, Y: 5}})
	if !ok || ev.Phase != PhaseMove || ev.DX != 10 || ev.DY != 5 {
		t.Fatalf("move = %+v, %v", ev, ok)
	}

	if _, ok = in.feed([]Touch{{ID: 1, X: 10, Y: 5}}); ok {
		t.Error("unchanged frame produced an event")
	}

	ev, ok = in.feed(nil)
	if !ok || ev.Phase != PhaseEnd || ev.DX != 10 || ev.DY != 5 {
		t.Fatalf("release = %+v, %v", ev, ok)
	}
	if len(ev.Touches) != 1 {
		t.Errorf("release touches = %v, want the last contacts", ev.Touches)
	}
	if in.Down() {
		t.Error("Down() = true after release")
	}

	if _, ok = in.feed(nil); ok {
		t.Error("empty frame while up produced an event")
	}
}

func TestFeed_FingerJoiningDoesNotMoveDelta(t *testing.T) {
	in := &TouchInput{}
	in.feed([]Touch{{ID: 1, X: 0, Y: 0}})
	in.feed([]Touch{{ID: 1, X: 10, Y: 0}})

	ev, ok := in.feed([]Touch{{ID: 1, X: 10, Y: 0}, {ID: 2, X: 300, Y: 300}})
	if !ok || len(ev.Touches) != 2 {
		t.Fatalf("join = %+v, %v", ev, ok)
	}
	if ev.DX != 10 || ev.DY != 0 {
		t.Errorf("delta after join = (%v, %v), want (10, 0)", ev.DX, ev.DY)
	}

	ev, _ = in.feed([]Touch{{ID: 1, X: 14, Y: 2}, {ID: 2, X: 304, Y: 302}})
	if ev.DX != 14 || ev.DY != 2 {
		t.Errorf("delta after shared move = (%v, %v), want (14, 2)", ev.DX, ev.DY)
	}
}

func TestFeed_NewSessionResetsDelta(t *testing.T) {
	in := &TouchInput{}
	in.feed([]Touch{{ID: 1}})
	in.feed([]Touch{{ID: 1, X: 50}})
	in.feed(nil)

	ev, _ := in.feed([]Touch{{ID: 1, X: 80}})
	if ev.Phase != PhaseStart || ev.DX != 0 {
		t.Errorf("second start = %+v", ev)
	}
}

func TestFeed_CopiesFrame(t *testing.T) {
	in := &TouchInput{}
	frame := []Touch{{ID: 1, X: 1}}
	ev, _ := in.feed(frame)
	frame[0].X = 99
	if ev.Touches[0].X != 1 {
		t.Error("event aliases the caller's frame")
	}
}

func TestSharedMotion(t *testing.T) {
	tests := []struct {
		name         string
		prev, cur    []Touch
		wantX, wantY float64
	}{
		{"one finger", []Touch{{ID: 1}}, []Touch{{ID: 1, X: 3, Y: 4}}, 3, 4},
		{"pinch cancels", []Touch{{ID: 1, X: -10}, {ID: 2, X: 10}}, []Touch{{ID: 1, X: -20}, {ID: 2, X: 20}}, 0, 0},
		{"pan averages", []Touch{{ID: 1}, {ID: 2}}, []Touch{{ID: 1, X: 2}, {ID: 2, X: 4}}, 3, 0},
		{"no shared ids", []Touch{{ID: 1}}, []Touch{{ID: 2, X: 50}}, 0, 0},
		{"new finger ignored", []Touch{{ID: 1}}, []Touch{{ID: 1, Y: 1}, {ID: 2, X: 90}}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := sharedMotion(tt.prev, tt.cur)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("sharedMotion = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	in := &TouchInput{}
	if _, ok := in.Cancel(); ok {
		t.Error("Cancel while up returned an event")
	}

	in.feed([]Touch{{ID: 1}})
	in.feed([]Touch{{ID: 1, X: 6}})
	ev, ok := in.Cancel()
	if !ok || ev.Phase != PhaseTerminate || ev.DX != 6 {
		t.Errorf("Cancel = %+v, %v", ev, ok)
	}
	if in.Down() {
		t.Error("Down() = true after Cancel")
	}

	// the next contact starts a new interval
	ev, _ = in.feed([]Touch{{ID: 1, X: 6}})
	if ev.Phase != PhaseStart {
		t.Errorf("after cancel phase = %v, want start", ev.Phase)
	}
}

func TestPoll_PrefersInjectedFrames(t *testing.T) {
	in := &TouchInput{}
	in.InjectPress(5, 5)

	ev, ok := in.Poll()
	if !ok || ev.Phase != PhaseStart {
		t.Fatalf("Poll = %+v, %v", ev, ok)
	}
	if !slices.Equal(ev.Touches, []Touch{{ID: injectFinger0, X: 5, Y: 5}}) {
		t.Errorf("touches = %v", ev.Touches)
	}
	if in.Pending() != 0 {
		t.Errorf("Pending = %d after poll", in.Pending())
	}
}

func TestUpdate_DeliversToGesture(t *testing.T) {
	in := &TouchInput{}
	g := New("g", DefaultConfig())

	in.InjectPress(0, 0)
	in.InjectMove(7, 8)
	if !in.Update(g) || !in.Update(g) {
		t.Fatal("Update did not deliver injected frames")
	}
	if g.Transform().Left != 7 || g.Transform().Top != 8 {
		t.Errorf("transform = %v", g.Transform())
	}
}

func TestNewTouchInput(t *testing.T) {
	if !NewTouchInput().Mouse {
		t.Error("NewTouchInput should read the mouse")
	}
}
