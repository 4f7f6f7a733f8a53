package gestures

// State is the complete gesture state of one element between ticks.
type State struct {
	// Committed is the authoritative transform between ticks.
	Committed Transform
	// Mounted is the transform captured when the element was created. Reset
	// restores it.
	Mounted Transform
	// Session is nil while no finger is down.
	Session *Session

	MultiTouching bool
	Rotating      bool
	Scaling       bool
}

// NewState returns the idle state for an element configured by cfg.
func NewState(cfg *Config) State {
	t := cfg.initialTransform()
	return State{Committed: t, Mounted: t}
}

// Active reports whether a session is in progress.
func (st State) Active() bool { return st.Session != nil }

// Step advances st by one touch event and returns the new state together
// with the callbacks to fire, in firing order. st itself is left untouched.
//
// Per move tick the order is: change, multi-touch change, rotate start or
// change, scale start or change. Start variants fire at most once per session
// and always before their change variants.
func Step(st State, ev TouchEvent, cfg *Config) (State, []Emission) {
	switch ev.Phase {
	case PhaseStart:
		if st.Session == nil {
			return startSession(st, ev)
		}
		// A fresh start closes the open session first, snap included.
		var ended, started []Emission
		st, ended = endSession(st, cfg, true)
		st, started = startSession(st, ev)
		return st, append(ended, started...)
	case PhaseMove:
		if st.Session == nil {
			return startSession(st, ev)
		}
		return moveSession(st, ev, cfg)
	case PhaseEnd:
		return endSession(st, cfg, true)
	case PhaseTerminate:
		return endSession(st, cfg, !cfg.SilentTerminate)
	}
	return st, nil
}

func startSession(st State, ev TouchEvent) (State, []Emission) {
	touches := Classify(ev)
	st.Session = newSession(touches, st.Committed, ev.DX, ev.DY)
	st.MultiTouching, st.Rotating, st.Scaling = false, false, false

	out := []Emission{{Kind: CallbackStart, Transform: st.Committed}}
	if len(touches) > 1 {
		st.MultiTouching = true
		out = append(out, Emission{Kind: CallbackMultiTouchStart, Transform: st.Committed})
	}
	return st, out
}

func moveSession(st State, ev TouchEvent, cfg *Config) (State, []Emission) {
	sess := *st.Session
	st.Session = &sess

	touches := Classify(ev)
	var out []Emission
	var rotated, scaled bool

	if len(touches) != len(sess.InitialTouches) {
		// A finger was added or lifted: deltas against the old baseline are
		// meaningless, so start a fresh baseline instead of moving.
		sess.anchor(touches, st.Committed, ev.DX, ev.DY)
		if len(touches) > 1 && !st.MultiTouching {
			st.MultiTouching = true
			out = append(out, Emission{Kind: CallbackMultiTouchStart, Transform: st.Committed})
		}
	} else {
		drag := sess.drag(ev, cfg.Draggable)

		var pinch contribution
		if len(touches) > 1 {
			if cfg.Rotatable.enabled() {
				pinch.setRotate(sess.rotation(touches, st.Committed))
				rotated = true
			}
			if cfg.Scalable.enabled() {
				lo, hi := cfg.Scalable.bounds()
				pinch.setScale(sess.scale(touches, st.Committed, lo, hi))
				scaled = true
			}
		}
		st.Committed = compose(st.Committed, drag, pinch)
		sess.observe(touches, ev.DX, ev.DY)
	}
	sess.Ticks++

	out = append(out, Emission{Kind: CallbackChange, Transform: st.Committed})
	if st.MultiTouching {
		out = append(out, Emission{Kind: CallbackMultiTouchChange, Transform: st.Committed})
	}
	if rotated {
		kind := CallbackRotateChange
		if !st.Rotating {
			kind = CallbackRotateStart
			st.Rotating = true
		}
		out = append(out, Emission{Kind: kind, Transform: st.Committed})
	}
	if scaled {
		kind := CallbackScaleChange
		if !st.Scaling {
			kind = CallbackScaleStart
			st.Scaling = true
		}
		out = append(out, Emission{Kind: kind, Transform: st.Committed})
	}
	return st, out
}

// endSession fires the end family with the transform at release, snaps the
// rotation when configured, then clears the session and all phase flags.
// With notify false the cleanup still happens but nothing is emitted.
func endSession(st State, cfg *Config, notify bool) (State, []Emission) {
	if st.Session == nil {
		return st, nil
	}
	var out []Emission
	emit := func(kind CallbackKind) {
		if notify {
			out = append(out, Emission{Kind: kind, Transform: st.Committed})
		}
	}

	emit(CallbackEnd)
	emit(CallbackRelease)

	if st.Rotating {
		if step, ok := cfg.Rotatable.snapStep(); ok {
			endAngle := st.Committed.Rotate.Degrees()
			diff := endAngle - snapAngle(endAngle, step)
			var snap contribution
			snap.setRotate(ComputeRotation(st.Committed, diff))
			st.Committed = compose(st.Committed, snap)
		}
		emit(CallbackRotateEnd)
	}
	if st.Scaling {
		emit(CallbackScaleEnd)
	}
	if st.MultiTouching {
		emit(CallbackMultiTouchEnd)
	}

	st.Session = nil
	st.MultiTouching, st.Rotating, st.Scaling = false, false, false
	return st, out
}

// Reset restores the mounted transform. An active session is re-anchored to
// the restored transform so the next move continues from it.
func Reset(st State) State {
	st.Committed = st.Mounted
	if st.Session != nil {
		sess := *st.Session
		sess.anchor(sess.lastTouches, st.Committed, sess.lastDX, sess.lastDY)
		st.Session = &sess
	}
	return st
}

// WithRotate replaces the committed rotation, bypassing gesture deltas.
func (st State) WithRotate(a Angle) State {
	var c contribution
	c.setRotate(a)
	st.Committed = compose(st.Committed, c)
	return st
}

// WithScale replaces the committed scale, bypassing gesture deltas.
func (st State) WithScale(v float64) State {
	var c contribution
	c.setScale(v)
	st.Committed = compose(st.Committed, c)
	return st
}
