package gestures

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pinch tuning. The gain amplifies raw finger travel so a comfortable pinch
// covers the scale range; the divisor converts gained pixels into scale units.
// Both are empirical, not derived.
const (
	ScaleGain    = 1.8
	ScaleDivisor = 400.0
)

// Angle is a rotation in degrees. Its text form is the style encoding, e.g.
// "37deg".
type Angle float64

// Degrees returns the angle as a plain number of degrees.
func (a Angle) Degrees() float64 { return float64(a) }

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return float64(a) * math.Pi / 180 }

func (a Angle) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64) + "deg"
}

// MarshalText implements encoding.TextMarshaler.
func (a Angle) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseAngle.
func (a *Angle) UnmarshalText(b []byte) error {
	v, err := ParseAngle(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAngle parses an angle string. Accepted units are deg, rad and turn;
// a bare number is read as degrees.
func ParseAngle(s string) (Angle, error) {
	str := strings.TrimSpace(s)
	factor := 1.0
	switch {
	case strings.HasSuffix(str, "deg"):
		str = strings.TrimSuffix(str, "deg")
	case strings.HasSuffix(str, "rad"):
		str = strings.TrimSuffix(str, "rad")
		factor = 180 / math.Pi
	case strings.HasSuffix(str, "turn"):
		str = strings.TrimSuffix(str, "turn")
		factor = 360
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("parse angle %q: %w", s, err)
	}
	return Angle(v * factor), nil
}

// Angle returns the direction in degrees, in [0, 360), of the vector from the
// first touch to the second. It returns 0 for fewer than two touches; callers
// guard that case.
func (ts TouchSet) Angle() float64 {
	if len(ts) < 2 {
		return 0
	}
	dx := ts[1].X - ts[0].X
	dy := ts[1].Y - ts[0].Y
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Distance returns the Euclidean distance between the first two touches, or 0
// for fewer than two touches.
func (ts TouchSet) Distance() float64 {
	if len(ts) < 2 {
		return 0
	}
	return math.Hypot(ts[1].X-ts[0].X, ts[1].Y-ts[0].Y)
}

// ComputeRotation returns base's rotation adjusted by delta degrees. A positive
// delta turns counter to the fingers' last movement, matching how the state
// machine feeds prevAngle - newAngle.
func ComputeRotation(base Transform, delta float64) Angle {
	return base.Rotate - Angle(delta)
}

// ComputeScale returns base's scale adjusted by delta, a gained pixel
// difference in the same prev-minus-current sense as ComputeRotation.
// The result is not clamped.
func ComputeScale(base Transform, delta float64) float64 {
	return base.Scale - delta/ScaleDivisor
}

// snapAngle rounds deg to the nearest multiple of step, halves rounding up.
func snapAngle(deg, step float64) float64 {
	return math.Floor(deg/step+0.5) * step
}

// clamp limits v to [lo, hi]. lo wins if the bounds are inverted.
func clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}
