// Package gestures turns multi-touch input into a drag, pinch-rotate and
// pinch-scale transform for a single rectangular element.
//
// # Quick start
//
// Create a [Gesture] from a [Config], feed it [TouchEvent] values from your
// input layer, and read back the committed [Transform]:
//
//	g := gestures.New("photo", gestures.DefaultConfig())
//	g.OnRotateEnd(func(ctx gestures.GestureContext) {
//		fmt.Println("rotation settled at", ctx.Transform.Rotate)
//	})
//
//	g.HandleEvent(gestures.TouchEvent{Phase: gestures.PhaseStart, Touches: touches})
//
// Under [Ebitengine], [TouchInput] polls touches (and optionally the mouse)
// once per frame and produces the events for you:
//
//	in := gestures.NewTouchInput()
//
//	func (g *Game) Update() error {
//		in.Update(g.gesture)
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		op := &ebiten.DrawImageOptions{GeoM: g.gesture.Transform().GeoM(w, h)}
//		screen.DrawImage(g.img, op)
//	}
//
// # Gesture model
//
// A session runs from the first finger down to the last finger up. Drag
// offsets are measured from the transform at session start, so replaying the
// same final delta always lands on the same position. Rotation and scale are
// applied incrementally from the change in the two-finger vector since the
// previous tick. When a finger joins or lifts mid-session the baseline is
// re-captured instead of computing a delta.
//
// Rotation can snap to a step when the gesture ends ([RotateSnap]); scale is
// clamped to configurable bounds ([ScaleBounds]).
//
// The pure core is [Step]: it takes a [State], a [TouchEvent] and a [Config]
// and returns the next state plus the callbacks to fire. [Gesture] wraps it
// with callback dispatch, a native [Target] side-channel, [Gesture.Reset] and
// host overrides.
//
// # Configuration
//
// Each of draggable, rotatable and scalable is either a bool or an object,
// in TOML, YAML or JSON:
//
//	draggable = { x = true, y = false }
//	rotatable = { step = 90 }
//	scalable = true
//
// Load files with [LoadConfigFile].
//
// # Animation
//
// Committed transforms never animate. To ease what is drawn, for example back
// to the mounted transform after [Gesture.Reset], use [TweenTransform].
//
// # ECS
//
// Every fired callback can also be forwarded to an [EventStore]; the
// gestures/ecs package provides a [Donburi] adapter.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package gestures
