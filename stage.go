package tod

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultSpriteCap = 64

// Stage owns a rendering surface, a Scheduler and an ordered list of
// entities, and drives the per-tick update and draw passes.
//
// A Stage is single-threaded: Update, Draw and every entity and scheduler
// call must happen on the same goroutine.
type Stage struct {
	// ClearColor fills the surface at the start of every Draw.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	surface   Surface
	scheduler *Scheduler
	sprites   []Entity
	debug     bool

	updateFunc func() error

	drawBuf         []Entity
	sortBuf         []Entity
	screenshotQueue []string
	capture         *ebiten.Image
}

// NewStage creates a stage that draws onto surface.
func NewStage(surface Surface) *Stage {
	return &Stage{
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
		surface:       surface,
		scheduler:     NewScheduler(),
		sprites:       make([]Entity, 0, defaultSpriteCap),
		drawBuf:       make([]Entity, 0, defaultSpriteCap),
		sortBuf:       make([]Entity, 0, defaultSpriteCap),
	}
}

// StageFromSize creates a stage with a freshly allocated width×height
// surface. Ebitengine images always carry an alpha channel.
func StageFromSize(width, height int) *Stage {
	return NewStage(ebiten.NewImage(width, height))
}

// Surface returns the stage's rendering surface.
func (s *Stage) Surface() Surface {
	return s.surface
}

// Scheduler returns the scheduler the stage advances in Update.
func (s *Stage) Scheduler() *Scheduler {
	return s.scheduler
}

// Sprites returns the stage's entities in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Stage) Sprites() []Entity {
	return s.sprites
}

// Add appends e to the stage and points its back-reference at s. Entities are
// not deduplicated. It is safe to call from an entity's Update.
func (s *Stage) Add(e Entity) {
	b := e.basic()
	b.stage = s
	b.removed = false
	s.sprites = append(s.sprites, e)
}

// Remove drops the first occurrence of e and clears its back-reference. It
// reports whether e was found. A walk already in progress still completes on
// the scheduler.
//
// It is safe to call from an entity's Update, but later entities shift down
// one slot: when an entity at or before the one being updated is removed, the
// entity that moves into the current slot is skipped for that tick and
// updated again on the next.
func (s *Stage) Remove(e Entity) bool {
	for i, c := range s.sprites {
		if c != e {
			continue
		}
		s.sprites = slices.Delete(s.sprites, i, i+1)
		b := e.basic()
		b.stage = nil
		b.removed = true
		return true
	}
	return false
}

// NewSprite creates a Sprite at pos and adds it to the stage.
func (s *Stage) NewSprite(pos Vec2, d Drawable) *Sprite {
	sp := NewSprite(pos, d)
	s.Add(sp)
	return sp
}

// NewWalkingSprite creates a WalkingSprite at pos and adds it to the stage.
func (s *Stage) NewWalkingSprite(pos Vec2, moving *FourSideDrawable, facing Side) (*WalkingSprite, error) {
	w, err := NewWalkingSprite(pos, moving, facing)
	if err != nil {
		return nil, err
	}
	s.Add(w)
	return w, nil
}

// Update advances the scheduler by dt seconds, resuming any due tasks, then
// calls Update on every entity. Entities added during the pass are updated
// in the same pass. See Remove for removals during the pass.
func (s *Stage) Update(dt float64) {
	var stats debugStats
	var t0 time.Time

	if s.debug {
		t0 = time.Now()
	}

	s.scheduler.Advance(dt)

	if s.debug {
		stats.advanceTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, e := range Robust(&s.sprites, true) {
		e.Update(dt)
	}

	if s.debug {
		stats.updateTime = time.Since(t0)
		stats.entityCount = len(s.sprites)
		stats.pendingTasks = s.scheduler.Pending()
		s.debugLogUpdate(stats)
	}
}

// Draw clears the stage's surface and draws every entity onto it in depth
// order, then writes any queued screenshots.
func (s *Stage) Draw() {
	s.DrawTo(s.surface)
	s.flushScreenshots()
}

// DrawTo clears dst to ClearColor and draws every entity onto it. Entities are
// drawn from a per-frame snapshot stable-sorted by ZKey; the stage's own list
// keeps insertion order.
func (s *Stage) DrawTo(dst Surface) {
	var stats debugStats
	var t0 time.Time

	if s.debug {
		t0 = time.Now()
	}

	dst.Fill(s.ClearColor.toRGBA())

	s.drawBuf = append(s.drawBuf[:0], s.sprites...)
	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, e := range s.drawBuf {
		e.Draw(dst)
	}

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.entityCount = len(s.drawBuf)
		s.debugLogDraw(stats)
	}

	clear(s.drawBuf)
	s.drawBuf = s.drawBuf[:0]
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick timing
// stats are logged to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- Merge sort ---

// entityLessOrEqual reports whether a may draw before or with b. Equal keys
// keep their snapshot order, which keeps the sort stable.
func entityLessOrEqual(a, b Entity) bool {
	return !b.ZKey().Less(a.ZKey())
}

// mergeSort sorts s.drawBuf in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Stage) mergeSort() {
	n := len(s.drawBuf)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]Entity, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.drawBuf
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.drawBuf, s.sortBuf)
	}
	clear(s.sortBuf)
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []Entity, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if entityLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
