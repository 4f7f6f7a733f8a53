package gestures

import "testing"

func TestCompose_LaterWins(t *testing.T) {
	base := Transform{Left: 1, Top: 2, Rotate: 3, Scale: 4}

	var drag contribution
	drag.setLeft(10)
	drag.setTop(20)

	var pinch contribution
	pinch.setRotate(30)
	pinch.setScale(1.5)

	var override contribution
	override.setRotate(45)

	got := compose(base, drag, pinch, override)
	want := Transform{Left: 10, Top: 20, Rotate: 45, Scale: 1.5}
	if got != want {
		t.Errorf("compose = %v, want %v", got, want)
	}
}

func TestCompose_UnsetFieldsKeepBase(t *testing.T) {
	base := Transform{Left: 1, Top: 2, Rotate: 3, Scale: 4}

	var c contribution
	c.setScale(2)

	got := compose(base, c)
	want := Transform{Left: 1, Top: 2, Rotate: 3, Scale: 2}
	if got != want {
		t.Errorf("compose = %v, want %v", got, want)
	}
	if base.Scale != 4 {
		t.Error("compose modified base")
	}
}

func TestCompose_RepeatedSetReplaces(t *testing.T) {
	var c contribution
	c.setRotate(10)
	c.setRotate(20)

	got := compose(DefaultTransform(), c)
	if got.Rotate != 20 {
		t.Errorf("Rotate = %v, want 20deg", got.Rotate)
	}
}

func TestCompose_NoParts(t *testing.T) {
	base := Transform{Left: 5, Scale: 1}
	if got := compose(base); got != base {
		t.Errorf("compose() = %v, want %v", got, base)
	}
}
