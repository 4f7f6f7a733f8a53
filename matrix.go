package gestures

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Matrix returns the affine matrix that places an element of size w x h on
// screen under t. Rotation and scale pivot on the element's center, the way
// a style transform does. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-w/2, -h/2) -> Scale -> Rotate -> Translate(Left + w/2, Top + h/2)
func (t Transform) Matrix(w, h float64) [6]float64 {
	sin, cos := math.Sincos(t.Rotate.Radians())
	s := t.Scale
	px, py := w/2, h/2

	// After Scale * Translate(-pivot):
	//   a=s, b=0, c=0, d=s, tx=-px*s, ty=-py*s
	preTx := -px * s
	preTy := -py * s

	// After Rotate:
	a := cos * s
	b := sin * s
	c := -sin * s
	d := cos * s
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{a, b, c, d, rtx + t.Left + px, rty + t.Top + py}
}

// GeoM returns Matrix(w, h) as an ebiten.GeoM for drawing.
func (t Transform) GeoM(w, h float64) ebiten.GeoM {
	m := t.Matrix(w, h)
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// LocalToScreen maps a point in the element's own w x h space to where it
// is drawn under t.
func (t Transform) LocalToScreen(w, h, lx, ly float64) (x, y float64) {
	m := t.Matrix(w, h)
	return m[0]*lx + m[2]*ly + m[4], m[1]*lx + m[3]*ly + m[5]
}
