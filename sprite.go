package tod

// ZKey is the depth key used to order draws: ascending Layer, then ascending
// Coord. Sprites with equal keys draw in insertion order.
type ZKey struct {
	Layer int
	Coord float64
}

// Less reports whether k draws before o.
func (k ZKey) Less(o ZKey) bool {
	if k.Layer != o.Layer {
		return k.Layer < o.Layer
	}
	return k.Coord < o.Coord
}

// Entity is anything a Stage can own. Custom entities embed BasicSprite and
// implement Draw.
type Entity interface {
	Update(dt float64)
	Draw(dst Surface)
	ZKey() ZKey
	basic() *BasicSprite
}

// BasicSprite is the state every entity shares: a position, a depth layer, an
// optional per-tick hook and a non-owning reference to the Stage it is on.
type BasicSprite struct {
	// Pos is the entity's position in stage coordinates.
	Pos Vec2
	// ZLayer is the primary depth key. Higher layers draw on top.
	ZLayer int
	// OnUpdate, when set, is called from Update every tick.
	OnUpdate func(dt float64)

	stage   *Stage
	removed bool
}

// Stage returns the stage the entity was added to, or nil.
func (b *BasicSprite) Stage() *Stage {
	return b.stage
}

// Update runs the per-tick hook. Without OnUpdate it does nothing.
func (b *BasicSprite) Update(dt float64) {
	if b.OnUpdate != nil {
		b.OnUpdate(dt)
	}
}

// ZKey returns (ZLayer, Pos.Y), so sprites lower on screen draw in front.
func (b *BasicSprite) ZKey() ZKey {
	return ZKey{Layer: b.ZLayer, Coord: b.Pos.Y}
}

func (b *BasicSprite) basic() *BasicSprite {
	return b
}

// Sprite is an entity drawn by a single Drawable at its position.
type Sprite struct {
	BasicSprite
	drawable Drawable
}

// NewSprite returns a sprite at pos that is not yet on a stage.
func NewSprite(pos Vec2, d Drawable) *Sprite {
	return &Sprite{BasicSprite: BasicSprite{Pos: pos}, drawable: d}
}

// Drawable returns the sprite's drawable.
func (s *Sprite) Drawable() Drawable {
	return s.drawable
}

// SetDrawable replaces the sprite's drawable.
func (s *Sprite) SetDrawable(d Drawable) {
	s.drawable = d
}

// Draw renders the drawable at the sprite's position.
func (s *Sprite) Draw(dst Surface) {
	if s.drawable == nil {
		return
	}
	s.drawable.Draw(s.Pos, dst)
}
