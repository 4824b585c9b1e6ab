package tod

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	// Title is the window title.
	Title string `yaml:"title"`
	// Width and Height are the logical screen size. Default 640x480.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// TPS is the number of updates per second. Default ebiten.DefaultTPS.
	TPS int `yaml:"tps"`
	// Resizable lets the user resize the window.
	Resizable bool `yaml:"resizable"`
	// ShowFPS adds an FPS counter sprite to the stage.
	ShowFPS bool `yaml:"show_fps"`
	// Debug turns on the stage's debug logging.
	Debug bool `yaml:"debug"`
	// ClearColor, when set, replaces the stage's clear color.
	ClearColor *Color `yaml:"clear_color"`
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.TPS <= 0 {
		c.TPS = ebiten.DefaultTPS
	}
	return c
}

// LoadRunConfig decodes a RunConfig from YAML. Missing fields keep their
// defaults; unknown keys are rejected.
func LoadRunConfig(data []byte) (RunConfig, error) {
	var cfg RunConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RunConfig{}, fmt.Errorf("tod: failed to parse run config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// SetUpdateFunc registers fn to run once per tick inside Run, before the
// stage updates. Returning ebiten.Termination ends the loop cleanly.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// game adapts a Stage to ebiten.Game with a fixed timestep.
type game struct {
	stage *Stage
	dt    float64
	w, h  int
}

func (g *game) Update() error {
	if fn := g.stage.updateFunc; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	g.stage.Update(g.dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	img, ok := g.stage.surface.(*ebiten.Image)
	if !ok {
		g.stage.DrawTo(screen)
		return
	}
	g.stage.Draw()
	screen.DrawImage(img, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

// Run opens a window and drives stage until the window closes or the update
// func returns an error. Each tick calls Stage.Update with 1/TPS seconds and
// each frame calls Stage.Draw. ebiten.Termination is not reported as an error.
func Run(stage *Stage, cfg RunConfig) error {
	cfg = cfg.withDefaults()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if cfg.ClearColor != nil {
		stage.ClearColor = *cfg.ClearColor
	}
	stage.SetDebugMode(cfg.Debug)
	if cfg.ShowFPS {
		NewFPSCounter(stage)
	}

	g := &game{
		stage: stage,
		dt:    1.0 / float64(cfg.TPS),
		w:     cfg.Width,
		h:     cfg.Height,
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
