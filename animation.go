package gestures

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TransformTween eases a presentation transform between two committed
// values, for hosts that want a visible transition after Reset or an
// override. The gesture state itself always jumps; only what the host draws
// is animated. Call Update(dt) each frame.
//
// There is no global animation manager; users call Update themselves.
type TransformTween struct {
	tweens [4]*gween.Tween
	to     Transform
	cur    Transform
	target Target
	Done   bool
}

// TweenTransform creates a tween from one transform to another over duration
// seconds. Rotation takes the shorter way round.
func TweenTransform(from, to Transform, duration float32, fn ease.TweenFunc) *TransformTween {
	toRot := from.Rotate.Degrees() + wrapDegrees(to.Rotate.Degrees()-from.Rotate.Degrees())
	tw := &TransformTween{to: to, cur: from}
	tw.tweens[0] = gween.New(float32(from.Left), float32(to.Left), duration, fn)
	tw.tweens[1] = gween.New(float32(from.Top), float32(to.Top), duration, fn)
	tw.tweens[2] = gween.New(float32(from.Rotate.Degrees()), float32(toRot), duration, fn)
	tw.tweens[3] = gween.New(float32(from.Scale), float32(to.Scale), duration, fn)
	return tw
}

// SetTarget makes Update push each eased value to t.
func (tw *TransformTween) SetTarget(t Target) { tw.target = t }

// Current returns the most recent eased transform.
func (tw *TransformTween) Current() Transform { return tw.cur }

// Update advances the tween by dt seconds and returns the eased transform.
// Once finished it returns the exact destination transform.
func (tw *TransformTween) Update(dt float32) Transform {
	if tw.Done {
		return tw.cur
	}

	var vals [4]float64
	allDone := true
	for i, t := range tw.tweens {
		v, finished := t.Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	tw.Done = allDone

	if tw.Done {
		tw.cur = tw.to
	} else {
		tw.cur = Transform{Left: vals[0], Top: vals[1], Rotate: Angle(vals[2]), Scale: vals[3]}
	}
	if tw.target != nil {
		tw.target.ApplyTransform(tw.cur)
	}
	return tw.cur
}
