package tod

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Construction errors ---

func TestNewAnimatorRejectsBadFPS(t *testing.T) {
	for _, fps := range []int{0, -1, -30} {
		if _, err := NewAnimator(AnimationConfig{FPS: fps}); !errors.Is(err, ErrInvalidFPS) {
			t.Errorf("fps %d: err = %v, want ErrInvalidFPS", fps, err)
		}
	}
}

func TestNewAnimatorRejectsNegativeRestFrame(t *testing.T) {
	if _, err := NewAnimator(AnimationConfig{FPS: 1, RestFrame: -1}); !errors.Is(err, ErrInvalidRestFrame) {
		t.Errorf("err = %v, want ErrInvalidRestFrame", err)
	}
}

func TestNewFrameAnimationRejectsEmpty(t *testing.T) {
	if _, err := NewFrameAnimation(nil, AnimationConfig{FPS: 10}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("err = %v, want ErrNoFrames", err)
	}
}

func TestNewFrameAnimationRejectsNilFrame(t *testing.T) {
	var log []string
	frames := []StaticDrawable{logFrame("a", &log), nil}
	if _, err := NewFrameAnimation(frames, AnimationConfig{FPS: 10}); err == nil {
		t.Error("expected error for nil frame")
	}
}

func TestNewFrameAnimationRejectsBadFPS(t *testing.T) {
	var log []string
	frames := []StaticDrawable{logFrame("a", &log)}
	if _, err := NewFrameAnimation(frames, AnimationConfig{FPS: 0}); !errors.Is(err, ErrInvalidFPS) {
		t.Errorf("err = %v, want ErrInvalidFPS", err)
	}
}

func TestAnimatorDefaultsToSystemClock(t *testing.T) {
	a, err := NewAnimator(AnimationConfig{FPS: 1})
	if err != nil {
		t.Fatal(err)
	}
	if a.clock != SystemClock {
		t.Error("nil Clock should fall back to SystemClock")
	}
}

// --- Frame numbers ---

func TestFrameNumIsFloorOfElapsedTimesFPS(t *testing.T) {
	tests := []struct {
		fps     int
		elapsed time.Duration
		want    int
	}{
		{1, 0, 0},
		{1, 999 * time.Millisecond, 0},
		{1, time.Second, 1},
		{10, 250 * time.Millisecond, 2},
		{10, 1500 * time.Millisecond, 15},
		{24, 500 * time.Millisecond, 12},
		{60, 10 * time.Second, 600},
	}
	for _, tt := range tests {
		clock := newFakeClock()
		a, err := NewAnimator(AnimationConfig{FPS: tt.fps, Clock: clock})
		if err != nil {
			t.Fatal(err)
		}
		clock.advance(tt.elapsed)
		if got := a.FrameNum(); got != tt.want {
			t.Errorf("fps %d after %v: FrameNum = %d, want %d", tt.fps, tt.elapsed, got, tt.want)
		}
	}
}

func TestFrameNumMonotonic(t *testing.T) {
	clock := newFakeClock()
	a, err := NewAnimator(AnimationConfig{FPS: 7, Clock: clock})
	if err != nil {
		t.Fatal(err)
	}
	prev := a.FrameNum()
	for i := 0; i < 200; i++ {
		clock.advance(13 * time.Millisecond)
		cur := a.FrameNum()
		if cur < prev {
			t.Fatalf("FrameNum went backwards: %d -> %d", prev, cur)
		}
		want := int(math.Floor(a.Elapsed() * 7))
		if cur != want {
			t.Fatalf("FrameNum = %d, want %d", cur, want)
		}
		prev = cur
	}
}

func TestElapsedNeverNegative(t *testing.T) {
	clock := newFakeClock()
	a, _ := NewAnimator(AnimationConfig{FPS: 5, Clock: clock})
	clock.advance(-time.Second)
	if a.Elapsed() != 0 || a.FrameNum() != 0 {
		t.Errorf("Elapsed = %v, FrameNum = %d; want 0, 0", a.Elapsed(), a.FrameNum())
	}
}

// --- FrameAnimation ---

func TestFrameAnimationWrapsFrames(t *testing.T) {
	var log []string
	frames := []StaticDrawable{logFrame("0", &log), logFrame("1", &log), logFrame("2", &log)}
	clock := newFakeClock()
	a, err := NewFrameAnimation(frames, AnimationConfig{FPS: 10, Clock: clock})
	if err != nil {
		t.Fatal(err)
	}

	clock.advance(50 * time.Millisecond) // sample mid-frame

	dst := &recordingSurface{}
	for i := 0; i < 7; i++ {
		a.Draw(Vec2{}, dst)
		clock.advance(100 * time.Millisecond)
	}
	want := []string{"0", "1", "2", "0", "1", "2", "0"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("frames drawn = %v, want %v", log, want)
		}
	}
}

func TestFrameAnimationSingleFrame(t *testing.T) {
	var log []string
	clock := newFakeClock()
	a, err := NewFrameAnimation([]StaticDrawable{logFrame("only", &log)}, AnimationConfig{FPS: 30, Clock: clock})
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 1, 2, 29, 1000} {
		log = log[:0]
		a.DrawFrame(n, Vec2{}, &recordingSurface{})
		if len(log) != 1 || log[0] != "only" {
			t.Errorf("frame %d drew %v, want [only]", n, log)
		}
	}
}

func TestFrameAnimationFrameIndex(t *testing.T) {
	var log []string
	frames := []StaticDrawable{logFrame("a", &log), logFrame("b", &log), logFrame("c", &log), logFrame("d", &log)}
	a, err := NewFrameAnimation(frames, AnimationConfig{FPS: 1})
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < 20; n++ {
		log = log[:0]
		a.DrawFrame(n, Vec2{}, &recordingSurface{})
		if want := []string{"a", "b", "c", "d"}[n%4]; log[0] != want {
			t.Errorf("frame %d drew %q, want %q", n, log[0], want)
		}
	}
	log = log[:0]
	a.DrawFrame(-1, Vec2{}, &recordingSurface{})
	if log[0] != "d" {
		t.Errorf("frame -1 drew %q, want %q", log[0], "d")
	}
}

func TestFrameAnimationCopiesFrames(t *testing.T) {
	var log []string
	frames := []StaticDrawable{logFrame("a", &log), logFrame("b", &log)}
	a, _ := NewFrameAnimation(frames, AnimationConfig{FPS: 1})
	frames[0] = logFrame("changed", &log)
	a.DrawFrame(0, Vec2{}, &recordingSurface{})
	if log[0] != "a" {
		t.Errorf("drew %q, want %q (frames must be copied)", log[0], "a")
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestFrameAnimationStaticFrameUsesRestFrame(t *testing.T) {
	var log []string
	frames := []StaticDrawable{logFrame("a", &log), logFrame("b", &log), logFrame("c", &log)}
	clock := newFakeClock()

	def, _ := NewFrameAnimation(frames, AnimationConfig{FPS: 10, Clock: clock})
	rest, _ := NewFrameAnimation(frames, AnimationConfig{FPS: 10, RestFrame: 2, Clock: clock})

	clock.advance(130 * time.Millisecond) // live frame is "b"
	def.StaticFrame().Draw(Vec2{}, &recordingSurface{})
	rest.StaticFrame().Draw(Vec2{}, &recordingSurface{})
	if log[0] != "a" || log[1] != "c" {
		t.Errorf("static frames drew %v, want [a c]", log)
	}
}

func TestStaticFrameTwiceMatchesOnce(t *testing.T) {
	var log []string
	frames := []StaticDrawable{logFrame("a", &log), logFrame("b", &log)}
	clock := newFakeClock()
	a, _ := NewFrameAnimation(frames, AnimationConfig{FPS: 4, RestFrame: 1, Clock: clock})

	once := a.StaticFrame()
	twice := once.StaticFrame()
	for i := 0; i < 5; i++ {
		clock.advance(300 * time.Millisecond)
		once.Draw(Vec2{}, nil)
		twice.Draw(Vec2{}, nil)
	}
	for i := 0; i < len(log); i += 2 {
		if log[i] != "b" || log[i+1] != "b" {
			t.Fatalf("static draws = %v, want all b", log)
		}
	}
}

func TestFreezeFrameCustomAnimation(t *testing.T) {
	var log []string
	a, _ := NewFrameAnimation([]StaticDrawable{logFrame("x", &log), logFrame("y", &log)},
		AnimationConfig{FPS: 1, RestFrame: 3})
	FreezeFrame(a).Draw(Vec2{}, nil)
	if log[0] != "y" {
		t.Errorf("FreezeFrame drew %q, want %q", log[0], "y")
	}
}

// --- Texture ---

func TestTextureDrawCentered(t *testing.T) {
	img := ebiten.NewImage(16, 8)
	tex := NewTexture(img)
	dst := &recordingSurface{}

	tex.Draw(Vec2{X: 100.4, Y: 50.6}, dst)

	if len(dst.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dst.draws))
	}
	d := dst.draws[0]
	if d.img != img {
		t.Error("drew the wrong image")
	}
	if d.x != 92 || d.y != 47 {
		t.Errorf("top-left = (%v, %v), want (92, 47)", d.x, d.y)
	}
}

func TestTextureStaticFrameIsIdentity(t *testing.T) {
	tex := NewTexture(ebiten.NewImage(2, 2))
	if tex.StaticFrame() != StaticDrawable(tex) {
		t.Error("Texture.StaticFrame should return itself")
	}
	if tex.Image() == nil {
		t.Error("Image() should return the wrapped image")
	}
}

func TestStaticFuncStaticFrameDrawsSame(t *testing.T) {
	var log []string
	f := logFrame("f", &log)
	f.StaticFrame().Draw(Vec2{}, nil)
	f.Draw(Vec2{}, nil)
	if len(log) != 2 || log[0] != "f" || log[1] != "f" {
		t.Errorf("log = %v, want [f f]", log)
	}
}

// Compile-time checks for the capability split.
var (
	_ StaticDrawable   = (*Texture)(nil)
	_ StaticDrawable   = StaticFunc(nil)
	_ AnimatedDrawable = (*FrameAnimation)(nil)
)
