package tod

import (
	"fmt"
	"math"
)

// WalkingSprite is an entity that faces one of four sides and moves over time.
// It draws its moving set while a walk is in progress and the idle set (the
// rest frames of the moving set) otherwise.
//
// Walks run on the owning Stage's Scheduler: position does not change during
// a walk and snaps to the target when the walk's sleep completes. Any motion
// seen in between comes from the moving drawable itself.
type WalkingSprite struct {
	BasicSprite

	moving   *FourSideDrawable
	idle     *FourSideDrawable
	facing   Side
	momentum Vec2
	walkTask TaskID
}

// NewWalkingSprite returns a walking sprite at pos facing the given side. The
// idle set is derived once from moving.
func NewWalkingSprite(pos Vec2, moving *FourSideDrawable, facing Side) (*WalkingSprite, error) {
	if moving == nil {
		return nil, fmt.Errorf("%w: nil drawable set", ErrMissingSide)
	}
	if !facing.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSide, facing)
	}
	return &WalkingSprite{
		BasicSprite: BasicSprite{Pos: pos},
		moving:      moving,
		idle:        moving.StaticVariant(),
		facing:      facing,
	}, nil
}

// Facing returns the current side.
func (w *WalkingSprite) Facing() Side {
	return w.facing
}

// Momentum returns the current velocity in units per second. It is the zero
// vector exactly when no walk is in progress.
func (w *WalkingSprite) Momentum() Vec2 {
	return w.momentum
}

// Walking reports whether a walk is in progress.
func (w *WalkingSprite) Walking() bool {
	return w.walkTask != 0
}

// MovingSet returns the drawables used while walking.
func (w *WalkingSprite) MovingSet() *FourSideDrawable {
	return w.moving
}

// IdleSet returns the drawables used while standing.
func (w *WalkingSprite) IdleSet() *FourSideDrawable {
	return w.idle
}

// Turn changes the facing. It does not start or stop a walk.
func (w *WalkingSprite) Turn(side Side) error {
	if !side.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidSide, side)
	}
	w.facing = side
	return nil
}

// Draw renders the moving or idle drawable for the current facing.
func (w *WalkingSprite) Draw(dst Surface) {
	set := w.idle
	if w.momentum.Len() > 0 {
		set = w.moving
	}
	set.sides[w.facing].Draw(w.Pos, dst)
}

// Walk moves the sprite by delta at speed units per second. It returns as
// soon as the walk is scheduled; done, if non-nil, runs from Stage.Update when
// the sprite arrives.
//
// A non-positive speed fails with ErrInvalidSpeed. A displacement whose length
// is not finite fails with ErrInvalidDelta. A zero delta is a no-op: nothing
// changes and done runs immediately. A walk started while another is in
// progress fails with ErrAlreadyWalking, and a sprite that is not on a stage
// fails with ErrDetached. On failure no state changes.
func (w *WalkingSprite) Walk(delta Vec2, speed float64, done func()) error {
	if !(speed > 0) || math.IsInf(speed, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, speed)
	}
	if !finite(delta) {
		return fmt.Errorf("%w: got %v", ErrInvalidDelta, delta)
	}
	if delta.IsZero() {
		if done != nil {
			done()
		}
		return nil
	}
	if w.Walking() {
		return ErrAlreadyWalking
	}
	if w.stage == nil {
		return ErrDetached
	}

	dist := delta.Len()
	target := w.Pos.Add(delta)
	w.facing = SideForVector(delta)
	w.momentum = delta.Scale(speed / dist)
	w.walkTask = w.stage.scheduler.Sleep(dist/speed, func() {
		w.walkTask = 0
		w.momentum = Vec2{}
		w.Pos = target
		if done != nil {
			done()
		}
	})
	return nil
}

// finite reports whether v and its length are finite.
func finite(v Vec2) bool {
	return !math.IsInf(v.Len(), 0) && !math.IsNaN(v.Len())
}

// WalkTo walks to an absolute position. See Walk.
func (w *WalkingSprite) WalkTo(target Vec2, speed float64, done func()) error {
	return w.Walk(target.Sub(w.Pos), speed, done)
}

// WalkPath walks each displacement in steps one after another at the same
// speed, then runs done. Arguments are checked up front with the same rules as
// Walk. If the sprite leaves its stage part way, the remaining steps are
// dropped and done does not run.
func (w *WalkingSprite) WalkPath(steps []Vec2, speed float64, done func()) error {
	if !(speed > 0) || math.IsInf(speed, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, speed)
	}
	for _, step := range steps {
		if !finite(step) {
			return fmt.Errorf("%w: got %v", ErrInvalidDelta, step)
		}
	}
	if w.Walking() {
		return ErrAlreadyWalking
	}
	path := append([]Vec2(nil), steps...)
	var next func()
	next = func() {
		if len(path) == 0 {
			if done != nil {
				done()
			}
			return
		}
		step := path[0]
		path = path[1:]
		// Only fails once the sprite has left its stage; the rest is dropped.
		_ = w.Walk(step, speed, next)
	}
	if w.stage == nil && len(path) > 0 {
		return ErrDetached
	}
	next()
	return nil
}
