package tod

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawCall is one DrawImage call seen by a recordingSurface.
type drawCall struct {
	img  *ebiten.Image
	x, y float64
}

// recordingSurface is a Surface that records calls instead of rendering.
type recordingSurface struct {
	draws []drawCall
	fills []color.Color
}

func (r *recordingSurface) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	var x, y float64
	if op != nil {
		x, y = op.GeoM.Apply(0, 0)
	}
	r.draws = append(r.draws, drawCall{img: img, x: x, y: y})
}

func (r *recordingSurface) Fill(c color.Color) {
	r.fills = append(r.fills, c)
}

// fakeClock is a Clock that only moves when told to.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// stubDrawable logs "name@x,y" when drawn and "name:still@x,y" when its
// static frame is drawn.
type stubDrawable struct {
	name string
	log  *[]string
}

func (d *stubDrawable) Draw(pos Vec2, _ Surface) {
	*d.log = append(*d.log, fmt.Sprintf("%s@%g,%g", d.name, pos.X, pos.Y))
}

func (d *stubDrawable) StaticFrame() StaticDrawable {
	return StaticFunc(func(pos Vec2, _ Surface) {
		*d.log = append(*d.log, fmt.Sprintf("%s:still@%g,%g", d.name, pos.X, pos.Y))
	})
}

// logFrame returns a static frame that logs its label when drawn.
func logFrame(label string, log *[]string) StaticFunc {
	return func(Vec2, Surface) { *log = append(*log, label) }
}

// stubSet builds a FourSideDrawable of stubDrawables named after each side.
func stubSet(log *[]string) *FourSideDrawable {
	f, err := NewFourSideDrawable(
		&stubDrawable{name: "left", log: log},
		&stubDrawable{name: "right", log: log},
		&stubDrawable{name: "front", log: log},
		&stubDrawable{name: "back", log: log},
	)
	if err != nil {
		panic(err)
	}
	return f
}

// probe is a minimal custom entity that logs its name on Draw and runs an
// optional hook on Update.
type probe struct {
	BasicSprite
	name string
	log  *[]string
}

func newProbe(name string, log *[]string, pos Vec2) *probe {
	return &probe{BasicSprite: BasicSprite{Pos: pos}, name: name, log: log}
}

func (p *probe) Draw(Surface) {
	*p.log = append(*p.log, p.name)
}
