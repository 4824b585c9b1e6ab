// Package tod is a small 2D stage core for [Ebitengine]: it decides, each
// tick, what every on-screen entity looks like and where it is.
//
// # Drawables
//
// A [Drawable] renders itself centered at a point on a [Surface] and can hand
// back a frozen, time-independent view of itself through StaticFrame.
// [Texture] draws one image; [FrameAnimation] loops a sequence of static
// frames at a fixed rate driven by the wall clock:
//
//	walk, err := tod.NewFrameAnimation(frames, tod.AnimationConfig{FPS: 8})
//	idle := walk.StaticFrame() // always draws the rest frame
//
// A [FourSideDrawable] holds one drawable per [Side] and picks the one
// matching an entity's facing. Map derives a new set, for example the idle
// variant of a walk cycle.
//
// # Stage and sprites
//
// A [Stage] owns the surface, a cooperative [Scheduler] and the entity list.
// Call Update(dt) once per tick and Draw once per frame:
//
//	stage := tod.StageFromSize(320, 240)
//	hero, _ := stage.NewWalkingSprite(tod.Vec2{X: 40, Y: 40}, walkSet, tod.SideFront)
//	_ = hero.Walk(tod.Vec2{X: 100}, 50, func() { fmt.Println("arrived") })
//
// Walk does not block. It registers a continuation with the stage's
// scheduler and returns; the continuation runs from a later Stage.Update once
// enough time has passed, snapping the sprite onto its target. No goroutines
// are involved and everything runs on the caller's goroutine.
//
// Draw sorts a per-frame snapshot of the entities by [ZKey] (layer, then
// vertical position) and draws them in that order.
//
// For a ready-made window and loop use [Run] with a [RunConfig], which can be
// loaded from YAML with [LoadRunConfig].
//
// [Ebitengine]: https://ebitengine.org
package tod
