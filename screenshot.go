package tod

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// sizedSurface is a Surface that knows its pixel bounds. *ebiten.Image is one.
type sizedSurface interface {
	Surface
	Bounds() image.Rectangle
}

// Screenshot queues a labeled PNG capture of the stage, taken at the end of
// the next Draw and written to ScreenshotDir. The file name carries the wall
// time, the stage's scheduler clock and the label.
//
// The stage surface must report its size through a Bounds method. When it is
// not an *ebiten.Image the stage is redrawn onto an offscreen image of that
// size for the capture. Captures of a surface without bounds are dropped with
// a diagnostic. Safe to call from an entity's Update.
func (s *Stage) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (s *Stage) flushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	src, err := s.captureImage()
	if err != nil {
		logf("screenshot: dropped %d: %v", len(s.screenshotQueue), err)
		return
	}
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		logf("screenshot: %v", err)
		return
	}

	b := src.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	src.ReadPixels(pix)
	img := straightAlpha(pix, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for i, label := range s.screenshotQueue {
		name := screenshotName(stamp, i, s.scheduler.Now(), label)
		if err := writePNG(filepath.Join(s.ScreenshotDir, name), img); err != nil {
			logf("screenshot: %v", err)
		}
	}
}

// captureImage returns an image holding the frame just drawn. Image surfaces
// are read directly; other sized surfaces are replayed onto s.capture.
func (s *Stage) captureImage() (*ebiten.Image, error) {
	switch surf := s.surface.(type) {
	case *ebiten.Image:
		return surf, nil
	case sizedSurface:
		size := surf.Bounds().Size()
		if size.X <= 0 || size.Y <= 0 {
			return nil, fmt.Errorf("surface %T is empty", surf)
		}
		if s.capture == nil || s.capture.Bounds().Size() != size {
			if s.capture != nil {
				s.capture.Deallocate()
			}
			s.capture = ebiten.NewImage(size.X, size.Y)
		}
		s.DrawTo(s.capture)
		return s.capture, nil
	default:
		return nil, fmt.Errorf("surface %T does not report its bounds", surf)
	}
}

// straightAlpha wraps premultiplied RGBA pixels read back from the GPU and
// converts them to the non-premultiplied form PNG stores.
func straightAlpha(pix []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst
}

// screenshotName builds "<wall time>_<index>_t<stage seconds>_<label>.png".
func screenshotName(stamp string, index int, clock float64, label string) string {
	return fmt.Sprintf("%s_%02d_t%.3f_%s.png", stamp, index, clock, sanitizeLabel(label))
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// sanitizeLabel keeps letters, digits, '-' and '.' and turns every other rune
// into '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
