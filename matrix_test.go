package gestures

import "testing"

func TestMatrix_Identity(t *testing.T) {
	m := DefaultTransform().Matrix(100, 50)
	if m != [6]float64{1, 0, 0, 1, 0, 0} {
		t.Errorf("Matrix = %v, want identity", m)
	}
}

func TestMatrix_Translate(t *testing.T) {
	m := Transform{Left: 10, Top: 20, Scale: 1}.Matrix(100, 50)
	want := [6]float64{1, 0, 0, 1, 10, 20}
	if m != want {
		t.Errorf("Matrix = %v, want %v", m, want)
	}
}

func TestMatrix_RotatesAboutCenter(t *testing.T) {
	tr := Transform{Rotate: 90, Scale: 1}
	x, y := tr.LocalToScreen(100, 50, 0, 0)
	if !approx(x, 75) || !approx(y, -25) {
		t.Errorf("top-left corner = (%v, %v), want (75, -25)", x, y)
	}
	cx, cy := tr.LocalToScreen(100, 50, 50, 25)
	if !approx(cx, 50) || !approx(cy, 25) {
		t.Errorf("center = (%v, %v), want (50, 25)", cx, cy)
	}
}

func TestMatrix_ScalesAboutCenter(t *testing.T) {
	tr := Transform{Scale: 2}
	x, y := tr.LocalToScreen(100, 50, 0, 0)
	if !approx(x, -50) || !approx(y, -25) {
		t.Errorf("top-left corner = (%v, %v), want (-50, -25)", x, y)
	}
}

func TestGeoM_MatchesMatrix(t *testing.T) {
	tr := Transform{Left: 4, Top: 9, Rotate: 120, Scale: 0.8}
	g := tr.GeoM(64, 32)
	for _, p := range [][2]float64{{0, 0}, {64, 32}, {10, 20}} {
		gx, gy := g.Apply(p[0], p[1])
		mx, my := tr.LocalToScreen(64, 32, p[0], p[1])
		if !approx(gx, mx) || !approx(gy, my) {
			t.Errorf("GeoM(%v) = (%v, %v), Matrix = (%v, %v)", p, gx, gy, mx, my)
		}
	}
}
