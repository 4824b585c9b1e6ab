package tod

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the render target a Drawable writes to. Only blitting an image
// and filling with a solid color are required; *ebiten.Image satisfies it.
type Surface interface {
	DrawImage(img *ebiten.Image, options *ebiten.DrawImageOptions)
	Fill(clr color.Color)
}

// Drawable is anything that can render itself at a point on a Surface.
//
// Draw must not mutate the drawable: repeated calls at the same wall-clock
// time produce the same output. StaticFrame returns a time-independent view
// of the drawable; for drawables that are already static it is the identity.
type Drawable interface {
	Draw(pos Vec2, dst Surface)
	StaticFrame() StaticDrawable
}

// StaticDrawable is a Drawable whose output never depends on time.
// Its StaticFrame returns itself.
type StaticDrawable interface {
	Drawable
	staticDrawable()
}

// AnimatedDrawable is a Drawable driven by the wall clock. FrameNum is a
// free-running counter, floor(elapsed seconds * FPS), with no upper bound;
// implementations wrap it into a valid frame in DrawFrame.
type AnimatedDrawable interface {
	Drawable
	FrameNum() int
	FPS() int
	RestFrame() int
	DrawFrame(frameNum int, pos Vec2, dst Surface)
}

// Clock supplies the current time to animations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock. It is used when AnimationConfig.Clock is nil.
var SystemClock Clock = systemClock{}

// --- Static drawables ---

// StaticFunc adapts a plain draw function into a StaticDrawable.
type StaticFunc func(pos Vec2, dst Surface)

// Draw calls f.
func (f StaticFunc) Draw(pos Vec2, dst Surface) { f(pos, dst) }

// StaticFrame returns f.
func (f StaticFunc) StaticFrame() StaticDrawable { return f }

func (StaticFunc) staticDrawable() {}

// Texture draws one fixed image centered at the given point.
type Texture struct {
	image *ebiten.Image
}

// NewTexture wraps img. img must not be nil.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{image: img}
}

// Image returns the wrapped image.
func (t *Texture) Image() *ebiten.Image {
	return t.image
}

// Draw blits the image so that its center lands on pos, snapped to whole pixels.
func (t *Texture) Draw(pos Vec2, dst Surface) {
	b := t.image.Bounds()
	x := int(math.Round(pos.X)) - b.Dx()/2
	y := int(math.Round(pos.Y)) - b.Dy()/2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(t.image, op)
}

// StaticFrame returns t.
func (t *Texture) StaticFrame() StaticDrawable { return t }

func (*Texture) staticDrawable() {}

// --- Animated drawables ---

// AnimationConfig configures the timing of an animated drawable.
type AnimationConfig struct {
	// FPS is the playback rate in frames per second. Must be at least 1.
	FPS int
	// RestFrame is the frame shown by the frozen (static) view. Defaults to 0.
	RestFrame int
	// Clock overrides the time source. Nil means SystemClock.
	Clock Clock
}

// Animator holds the timing state shared by animated drawables: the frame
// rate, the rest frame, and the start time captured at construction. Embed it
// in a custom AnimatedDrawable to get FrameNum, FPS and RestFrame.
//
// Elapsed time is monotonic and only resets by building a new Animator.
type Animator struct {
	fps   int
	rest  int
	clock Clock
	start time.Time
}

// NewAnimator validates cfg and starts the animation clock.
func NewAnimator(cfg AnimationConfig) (Animator, error) {
	if cfg.FPS < 1 {
		return Animator{}, fmt.Errorf("%w: got %d", ErrInvalidFPS, cfg.FPS)
	}
	if cfg.RestFrame < 0 {
		return Animator{}, fmt.Errorf("%w: got %d", ErrInvalidRestFrame, cfg.RestFrame)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock
	}
	return Animator{
		fps:   cfg.FPS,
		rest:  cfg.RestFrame,
		clock: clock,
		start: clock.Now(),
	}, nil
}

// Elapsed returns the seconds since the animation started. Never negative.
func (a *Animator) Elapsed() float64 {
	d := a.clock.Now().Sub(a.start).Seconds()
	if d < 0 {
		return 0
	}
	return d
}

// FrameNum returns floor(Elapsed() * FPS()).
func (a *Animator) FrameNum() int {
	return int(math.Floor(a.Elapsed() * float64(a.fps)))
}

// FPS returns the playback rate.
func (a *Animator) FPS() int {
	return a.fps
}

// RestFrame returns the frame number the frozen view draws.
func (a *Animator) RestFrame() int {
	return a.rest
}

// FreezeFrame returns a StaticDrawable that always renders a's rest frame.
func FreezeFrame(a AnimatedDrawable) StaticDrawable {
	rest := a.RestFrame()
	return StaticFunc(func(pos Vec2, dst Surface) {
		a.DrawFrame(rest, pos, dst)
	})
}

// FrameAnimation plays an ordered sequence of static frames in a loop.
// The frame shown is frames[FrameNum() mod len(frames)]. It cannot be paused
// or seeked; build a new one to restart it.
type FrameAnimation struct {
	Animator
	frames []StaticDrawable
	frozen StaticDrawable
}

// NewFrameAnimation builds a looping animation over frames. The slice is
// copied. It fails with ErrNoFrames for an empty sequence and with the
// Animator errors for a bad config.
func NewFrameAnimation(frames []StaticDrawable, cfg AnimationConfig) (*FrameAnimation, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("tod: animation frame %d is nil", i)
		}
	}
	anim, err := NewAnimator(cfg)
	if err != nil {
		return nil, err
	}
	a := &FrameAnimation{
		Animator: anim,
		frames:   append([]StaticDrawable(nil), frames...),
	}
	a.frozen = FreezeFrame(a)
	return a, nil
}

// Len returns the number of frames in the loop.
func (a *FrameAnimation) Len() int {
	return len(a.frames)
}

// Frame returns the frame drawn for the given frame number.
func (a *FrameAnimation) Frame(frameNum int) StaticDrawable {
	n := len(a.frames)
	return a.frames[((frameNum%n)+n)%n]
}

// Draw renders the frame for the current time.
func (a *FrameAnimation) Draw(pos Vec2, dst Surface) {
	a.DrawFrame(a.FrameNum(), pos, dst)
}

// DrawFrame renders the frame for frameNum, wrapped into the sequence.
func (a *FrameAnimation) DrawFrame(frameNum int, pos Vec2, dst Surface) {
	a.Frame(frameNum).Draw(pos, dst)
}

// StaticFrame returns the frozen rest-frame view. The same value is returned
// on every call.
func (a *FrameAnimation) StaticFrame() StaticDrawable {
	return a.frozen
}
