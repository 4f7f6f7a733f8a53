package ecs

import (
	"github.com/google/uuid"
	"github.com/phanxgames/gestures"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture callback events.
var GestureEventType = events.NewEventType[gestures.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) gestures.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event gestures.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}

// SessionLog collects the events of one gesture session, keyed by session ID.
// Subscribe it with GestureEventType.Subscribe(world, log.Record).
type SessionLog struct {
	sessions map[uuid.UUID][]gestures.GestureEvent
}

// NewSessionLog creates an empty SessionLog.
func NewSessionLog() *SessionLog {
	return &SessionLog{sessions: make(map[uuid.UUID][]gestures.GestureEvent)}
}

// Record appends e to its session's history. It matches the Donburi
// subscriber signature.
func (l *SessionLog) Record(_ donburi.World, e gestures.GestureEvent) {
	l.sessions[e.Session] = append(l.sessions[e.Session], e)
}

// Events returns the recorded events of a session in publish order.
func (l *SessionLog) Events(session uuid.UUID) []gestures.GestureEvent {
	return l.sessions[session]
}

// Forget drops a finished session's history.
func (l *SessionLog) Forget(session uuid.UUID) {
	delete(l.sessions, session)
}
