package gestures

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EventStore is the interface for optional ECS integration.
// When set on a Gesture, every fired callback is also forwarded as a
// GestureEvent.
type EventStore interface {
	EmitEvent(event GestureEvent)
}

// GestureEvent carries callback data for the ECS bridge.
type GestureEvent struct {
	Kind     CallbackKind
	Session  uuid.UUID
	EntityID uint32
	Touches  int
	Left     float64
	Top      float64
	Rotate   Angle
	Scale    float64
}

// Target receives each committed transform as soon as it is committed, ahead
// of the host's next render pass.
type Target interface {
	ApplyTransform(t Transform)
}

// TargetFunc adapts a plain function to Target.
type TargetFunc func(t Transform)

// ApplyTransform calls f(t).
func (f TargetFunc) ApplyTransform(t Transform) { f(t) }

// GestureContext carries callback data.
type GestureContext struct {
	Gesture   *Gesture
	Kind      CallbackKind
	Event     TouchEvent
	Transform Transform
	Session   uuid.UUID
	EntityID  uint32
	UserData  any
}

// --- Handler registry ---

type gestureHandler struct {
	id uint32
	fn func(GestureContext)
}

type handlerRegistry struct {
	byKind [numCallbackKinds][]gestureHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind CallbackKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.kind >= numCallbackKinds {
		return
	}
	s := h.reg.byKind[h.kind]
	for i := range s {
		if s[i].id == h.id {
			// Build a fresh slice: fire may still be ranging over s.
			h.reg.byKind[h.kind] = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

// --- Gesture ---

// Gesture binds the gesture state machine to one hosted element. It feeds
// touch events through Step, commits the result, pushes it to the Target and
// fires callbacks in the order Step returns them.
//
// A Gesture is single-threaded; call it from the host's update loop.
type Gesture struct {
	Name     string
	EntityID uint32
	UserData any

	cfg      Config
	state    State
	handlers handlerRegistry
	target   Target
	store    EventStore

	logger *log.Logger
	debug  bool

	// Last host-supplied overrides; a repeated value is not re-applied.
	rotateProp *Angle
	scaleProp  *float64
}

// New creates a Gesture for an element configured by cfg. The initial
// transform is also the baseline Reset returns to.
func New(name string, cfg Config) *Gesture {
	g := &Gesture{
		Name:       name,
		cfg:        cfg,
		rotateProp: cfg.Rotate,
		scaleProp:  cfg.Scale,
	}
	g.state = NewState(&g.cfg)
	return g
}

// Config returns the configuration the gesture was created with.
func (g *Gesture) Config() Config { return g.cfg }

// Transform returns the committed transform.
func (g *Gesture) Transform() Transform { return g.state.Committed }

// State returns a snapshot of the full gesture state.
func (g *Gesture) State() State { return g.state }

// Active reports whether a touch session is in progress.
func (g *Gesture) Active() bool { return g.state.Active() }

// SetTarget sets the native side-channel that receives each commit.
func (g *Gesture) SetTarget(t Target) { g.target = t }

// SetEventStore sets the optional ECS bridge.
func (g *Gesture) SetEventStore(store EventStore) { g.store = store }

// HandleEvent processes one touch event to completion: the state is
// committed and pushed to the target before any callback fires. The target
// receives every tick of a session, including ticks that leave the transform
// unchanged.
func (g *Gesture) HandleEvent(ev TouchEvent) {
	prev := g.state
	next, emissions := Step(prev, ev, &g.cfg)
	g.state = next

	if g.debug {
		g.debugTransition(prev, next, ev)
	}
	// Every session tick is pushed, changed or not; idle no-ops are not.
	if prev.Session != nil || next.Session != nil {
		g.applyTarget()
	}

	// End callbacks belong to the closing session; Start opens the next one.
	sid := sessionID(prev)
	for _, e := range emissions {
		if sid == uuid.Nil || e.Kind == CallbackStart {
			sid = sessionID(next)
		}
		g.fire(e, ev, sid)
	}
}

// Reset restores the transform captured when the gesture was created and
// calls done with it. done may be nil.
func (g *Gesture) Reset(done func(Transform)) {
	g.state = Reset(g.state)
	g.debugf("reset", "transform", g.state.Committed)
	g.applyTarget()
	if done != nil {
		done(g.state.Committed)
	}
}

// SetRotate applies a host-driven rotation. The committed rotation is
// replaced directly when a differs from the previous host value.
func (g *Gesture) SetRotate(a Angle) {
	if g.rotateProp != nil && *g.rotateProp == a {
		return
	}
	g.rotateProp = &a
	if g.state.Committed.Rotate == a {
		return
	}
	g.state = g.state.WithRotate(a)
	g.debugf("rotate override", "rotate", a)
	g.applyTarget()
}

// SetScale applies a host-driven scale. The committed scale is replaced
// directly when v differs from the previous host value.
func (g *Gesture) SetScale(v float64) {
	if g.scaleProp != nil && *g.scaleProp == v {
		return
	}
	g.scaleProp = &v
	if g.state.Committed.Scale == v {
		return
	}
	g.state = g.state.WithScale(v)
	g.debugf("scale override", "scale", v)
	g.applyTarget()
}

func (g *Gesture) applyTarget() {
	if g.target != nil {
		g.target.ApplyTransform(g.state.Committed)
	}
}

func sessionID(st State) uuid.UUID {
	if st.Session == nil {
		return uuid.Nil
	}
	return st.Session.ID
}

// fire runs registered handlers for one emission, then forwards it to the
// ECS bridge.
func (g *Gesture) fire(e Emission, ev TouchEvent, sid uuid.UUID) {
	ctx := GestureContext{
		Gesture:   g,
		Kind:      e.Kind,
		Event:     ev,
		Transform: e.Transform,
		Session:   sid,
		EntityID:  g.EntityID,
		UserData:  g.UserData,
	}
	for _, h := range g.handlers.byKind[e.Kind] {
		h.fn(ctx)
	}
	if g.store != nil {
		g.store.EmitEvent(GestureEvent{
			Kind:     e.Kind,
			Session:  sid,
			EntityID: g.EntityID,
			Touches:  len(ev.Touches),
			Left:     e.Transform.Left,
			Top:      e.Transform.Top,
			Rotate:   e.Transform.Rotate,
			Scale:    e.Transform.Scale,
		})
	}
}

// --- Callback registration ---

// On registers fn for the given callback kind.
func (g *Gesture) On(kind CallbackKind, fn func(GestureContext)) CallbackHandle {
	if kind >= numCallbackKinds {
		return CallbackHandle{}
	}
	g.handlers.nextID++
	id := g.handlers.nextID
	g.handlers.byKind[kind] = append(g.handlers.byKind[kind], gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &g.handlers, kind: kind}
}

// OnStart registers a callback for the first finger going down.
func (g *Gesture) OnStart(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackStart, fn)
}

// OnChange registers a callback fired after every move tick.
func (g *Gesture) OnChange(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackChange, fn)
}

// OnEnd registers a callback for the last finger lifting. It receives the
// transform at release, before any rotation snap.
func (g *Gesture) OnEnd(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackEnd, fn)
}

// OnRelease registers a legacy alias of OnEnd. It fires right after End.
func (g *Gesture) OnRelease(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackRelease, fn)
}

// OnMultiTouchStart registers a callback for a second finger joining.
func (g *Gesture) OnMultiTouchStart(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackMultiTouchStart, fn)
}

// OnMultiTouchChange registers a callback fired each tick while multi-touching.
func (g *Gesture) OnMultiTouchChange(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackMultiTouchChange, fn)
}

// OnMultiTouchEnd registers a callback for the end of a multi-touch session.
func (g *Gesture) OnMultiTouchEnd(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackMultiTouchEnd, fn)
}

// OnRotateStart registers a callback for the first rotation tick.
func (g *Gesture) OnRotateStart(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackRotateStart, fn)
}

// OnRotateChange registers a callback for subsequent rotation ticks.
func (g *Gesture) OnRotateChange(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackRotateChange, fn)
}

// OnRotateEnd registers a callback for the end of rotation. It receives the
// transform after snapping.
func (g *Gesture) OnRotateEnd(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackRotateEnd, fn)
}

// OnScaleStart registers a callback for the first scale tick.
func (g *Gesture) OnScaleStart(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackScaleStart, fn)
}

// OnScaleChange registers a callback for subsequent scale ticks.
func (g *Gesture) OnScaleChange(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackScaleChange, fn)
}

// OnScaleEnd registers a callback for the end of scaling.
func (g *Gesture) OnScaleEnd(fn func(GestureContext)) CallbackHandle {
	return g.On(CallbackScaleEnd, fn)
}
