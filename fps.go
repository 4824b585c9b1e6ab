package tod

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsLayer keeps the counter above ordinary sprites.
const fpsLayer = 1 << 20

// fpsRefresh is how often, in seconds, the counter redraws its text.
const fpsRefresh = 0.5

// NewFPSCounter adds a sprite to the stage that displays the current FPS and
// TPS in the top-left corner. Its image is redrawn from the sprite's update
// hook roughly every half second.
func NewFPSCounter(s *Stage) *Sprite {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)
	tex := NewTexture(img)

	sp := s.NewSprite(Vec2{X: 50, Y: 16}, tex)
	sp.ZLayer = fpsLayer

	lastUpdate := fpsRefresh
	sp.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < fpsRefresh {
			return
		}
		lastUpdate = 0

		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})

		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps))
	}

	return sp
}
