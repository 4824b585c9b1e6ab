package tod

import "fmt"

// FourSideDrawable holds exactly one Drawable per Side and dispatches to the
// one matching a facing. It is immutable after construction.
type FourSideDrawable struct {
	sides [numSides]Drawable
}

// NewFourSideDrawable builds a directional set. Every member must be non-nil.
func NewFourSideDrawable(left, right, front, back Drawable) (*FourSideDrawable, error) {
	f := &FourSideDrawable{}
	f.sides[SideLeft] = left
	f.sides[SideRight] = right
	f.sides[SideFront] = front
	f.sides[SideBack] = back
	for s, d := range f.sides {
		if d == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSide, Side(s))
		}
	}
	return f, nil
}

// DrawableForSide returns the drawable stored for side. Values outside the
// four sides fail with ErrInvalidSide.
func (f *FourSideDrawable) DrawableForSide(side Side) (Drawable, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSide, side)
	}
	return f.sides[side], nil
}

// Draw renders the drawable for side at pos.
func (f *FourSideDrawable) Draw(side Side, pos Vec2, dst Surface) error {
	d, err := f.DrawableForSide(side)
	if err != nil {
		return err
	}
	d.Draw(pos, dst)
	return nil
}

// Map returns a new FourSideDrawable holding fn applied to each member, with
// the same per-side assignment. f is left untouched. Map panics with an
// error wrapping ErrMissingSide if fn returns nil.
func (f *FourSideDrawable) Map(fn func(Drawable) Drawable) *FourSideDrawable {
	out := &FourSideDrawable{}
	for s, d := range f.sides {
		m := fn(d)
		if m == nil {
			panic(fmt.Errorf("%w: Map returned nil for %s", ErrMissingSide, Side(s)))
		}
		out.sides[s] = m
	}
	return out
}

// StaticVariant maps every member to its StaticFrame. Used to derive the idle
// set of a walking animation set.
func (f *FourSideDrawable) StaticVariant() *FourSideDrawable {
	return f.Map(func(d Drawable) Drawable { return d.StaticFrame() })
}
