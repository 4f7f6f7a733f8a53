package ecs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phanxgames/gestures"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []gestures.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e gestures.GestureEvent) {
		received = append(received, e)
	})

	store.EmitEvent(gestures.GestureEvent{
		Kind:     gestures.CallbackStart,
		EntityID: 42,
		Left:     100,
		Top:      200,
		Scale:    1,
	})
	store.EmitEvent(gestures.GestureEvent{
		Kind:   gestures.CallbackScaleChange,
		Scale:  1.5,
		Rotate: 30,
	})

	// Events are queued; process them.
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Kind != gestures.CallbackStart || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Left != 100 || e0.Top != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.Left, e0.Top)
	}

	e1 := received[1]
	if e1.Kind != gestures.CallbackScaleChange || e1.Scale != 1.5 || e1.Rotate != 30 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store gestures.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e gestures.GestureEvent) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e gestures.GestureEvent) {
		count2++
	})

	store.EmitEvent(gestures.GestureEvent{Kind: gestures.CallbackChange})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_FromGesture(t *testing.T) {
	world := donburi.NewWorld()
	sessions := NewSessionLog()
	GestureEventType.Subscribe(world, sessions.Record)

	g := gestures.New("card", gestures.DefaultConfig())
	g.EntityID = 7
	g.SetEventStore(NewDonburiStore(world))

	var sid uuid.UUID
	g.OnStart(func(ctx gestures.GestureContext) { sid = ctx.Session })

	in := &gestures.TouchInput{}
	in.InjectDrag(0, 0, 30, 40, 3)
	in.Drain(g)
	GestureEventType.ProcessEvents(world)

	st := g.State()
	if st.Active() {
		t.Fatal("session should have ended")
	}

	var kinds []gestures.CallbackKind
	session := sessions.Events(sid)
	for _, e := range session {
		if e.EntityID != 7 {
			t.Errorf("event %v: EntityID = %d, want 7", e.Kind, e.EntityID)
		}
		kinds = append(kinds, e.Kind)
	}

	want := []gestures.CallbackKind{
		gestures.CallbackStart,
		gestures.CallbackChange,
		gestures.CallbackChange,
		gestures.CallbackEnd,
		gestures.CallbackRelease,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}

	last := session[len(session)-1]
	if last.Left != 30 || last.Top != 40 {
		t.Errorf("final position = (%v,%v), want (30,40)", last.Left, last.Top)
	}
	if len(sessions.sessions) != 1 {
		t.Errorf("expected one session, got %d", len(sessions.sessions))
	}
}

func TestSessionLog_Forget(t *testing.T) {
	l := NewSessionLog()
	e := gestures.GestureEvent{Kind: gestures.CallbackStart}
	l.Record(nil, e)
	if len(l.Events(e.Session)) != 1 {
		t.Fatal("expected one recorded event")
	}
	l.Forget(e.Session)
	if len(l.Events(e.Session)) != 0 {
		t.Error("expected session to be forgotten")
	}
}
