package gestures

import (
	"cmp"
	"slices"
)

// Classify returns the event's active touch points ordered by touch ID.
// The order is stable across ticks of one session, so index 0 and 1 keep
// referring to the same fingers.
func Classify(ev TouchEvent) TouchSet {
	if len(ev.Touches) == 0 {
		return nil
	}
	sorted := slices.Clone(ev.Touches)
	slices.SortStableFunc(sorted, func(a, b Touch) int { return cmp.Compare(a.ID, b.ID) })

	ts := make(TouchSet, len(sorted))
	for i, t := range sorted {
		ts[i] = Point{X: t.X, Y: t.Y}
	}
	return ts
}

// IsMultiTouch reports whether more than one finger is down.
func IsMultiTouch(ev TouchEvent) bool {
	return len(ev.Touches) > 1
}
