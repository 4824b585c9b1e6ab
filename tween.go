package tod

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenPosition or TweenClearColor and call Update(dt) each tick, typically
// from a sprite's OnUpdate. If the target sprite is removed from its stage,
// the group stops immediately.
//
// Tweens are independent of WalkingSprite.Walk, which never interpolates.
// There is no global tween manager; callers call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *BasicSprite
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target sprite has been removed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.removed {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that glides the sprite's Pos to the
// given point over duration seconds using the easing function.
func TweenPosition(b *BasicSprite, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: b}
	g.tweens[0] = gween.New(float32(b.Pos.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(b.Pos.Y), float32(to.Y), duration, fn)
	g.fields[0] = &b.Pos.X
	g.fields[1] = &b.Pos.Y
	return g
}

// TweenClearColor creates a TweenGroup that fades the stage's ClearColor to
// the target color over duration seconds.
func TweenClearColor(s *Stage, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := &s.ClearColor
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// Glide installs a position tween as the sprite's OnUpdate hook, replacing
// any previous hook, and clears the hook again when the tween finishes. then,
// if non-nil, runs after the final position is written.
func (b *BasicSprite) Glide(to Vec2, duration float32, fn ease.TweenFunc, then func()) *TweenGroup {
	g := TweenPosition(b, to, duration, fn)
	b.OnUpdate = func(dt float64) {
		g.Update(float32(dt))
		if g.Done {
			b.OnUpdate = nil
			if then != nil {
				then()
			}
		}
	}
	return g
}
