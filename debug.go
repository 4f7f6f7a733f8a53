package gestures

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetLogger sets the logger used in debug mode. A nil logger falls back to a
// stderr logger prefixed "gestures".
func (g *Gesture) SetLogger(l *log.Logger) {
	g.logger = l
}

// SetDebugMode enables or disables debug logging of session transitions:
// start, re-anchor, snap, end and reset.
func (g *Gesture) SetDebugMode(enabled bool) {
	g.debug = enabled
}

func (g *Gesture) debugf(msg string, keyvals ...any) {
	if !g.debug {
		return
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "gestures",
			Level:  log.DebugLevel,
		})
	}
	g.logger.Debug(msg, append([]any{"gesture", g.Name}, keyvals...)...)
}

// debugTransition logs the lifecycle boundaries crossed between prev and next.
func (g *Gesture) debugTransition(prev, next State, ev TouchEvent) {
	switch {
	case next.Session != nil && (prev.Session == nil || prev.Session.ID != next.Session.ID):
		g.debugf("session start", "session", next.Session.ID, "touches", len(ev.Touches),
			"transform", next.Committed)
	case next.Session != nil && len(prev.Session.InitialTouches) != len(next.Session.InitialTouches):
		g.debugf("re-anchor", "session", next.Session.ID,
			"from", len(prev.Session.InitialTouches), "to", len(next.Session.InitialTouches))
	case next.Session == nil && prev.Session != nil:
		if next.Committed.Rotate != prev.Committed.Rotate {
			g.debugf("snap", "from", prev.Committed.Rotate, "to", next.Committed.Rotate)
		}
		g.debugf("session end", "session", prev.Session.ID, "phase", ev.Phase,
			"ticks", prev.Session.Ticks, "transform", next.Committed)
	}
}
