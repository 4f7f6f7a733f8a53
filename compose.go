package gestures

// fieldMask records which transform components a contribution carries.
type fieldMask uint8

const (
	fieldLeft fieldMask = 1 << iota
	fieldTop
	fieldRotate
	fieldScale
)

// contribution is a partial transform computed during one tick. Each
// component has a single slot, so setting rotate or scale twice replaces the
// earlier value instead of stacking a second entry.
type contribution struct {
	set    fieldMask
	left   float64
	top    float64
	rotate Angle
	scale  float64
}

func (c *contribution) setLeft(v float64) {
	c.left = v
	c.set |= fieldLeft
}

func (c *contribution) setTop(v float64) {
	c.top = v
	c.set |= fieldTop
}

func (c *contribution) setRotate(a Angle) {
	c.rotate = a
	c.set |= fieldRotate
}

func (c *contribution) setScale(v float64) {
	c.scale = v
	c.set |= fieldScale
}

// compose overlays contributions onto base in order; later contributions win
// per component. base is not modified.
func compose(base Transform, parts ...contribution) Transform {
	out := base
	for _, p := range parts {
		if p.set&fieldLeft != 0 {
			out.Left = p.left
		}
		if p.set&fieldTop != 0 {
			out.Top = p.top
		}
		if p.set&fieldRotate != 0 {
			out.Rotate = p.rotate
		}
		if p.set&fieldScale != 0 {
			out.Scale = p.scale
		}
	}
	return out
}
