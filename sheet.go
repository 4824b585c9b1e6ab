package tod

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SideSheet describes a four-side frame animation in terms of atlas region
// names:
//
//	fps: 8
//	rest_frame: 0
//	left:  [hero_left_0, hero_left_1]
//	right: [hero_right_0, hero_right_1]
//	front: [hero_front_0, hero_front_1]
//	back:  [hero_back_0, hero_back_1]
type SideSheet struct {
	FPS       int      `yaml:"fps"`
	RestFrame int      `yaml:"rest_frame"`
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	Front     []string `yaml:"front"`
	Back      []string `yaml:"back"`
}

// Build cuts the sheet's frames from atlas and returns one FrameAnimation per
// side. clock may be nil.
func (sh SideSheet) Build(atlas *Atlas, clock Clock) (*FourSideDrawable, error) {
	cfg := AnimationConfig{FPS: sh.FPS, RestFrame: sh.RestFrame, Clock: clock}
	names := [numSides][]string{
		SideLeft:  sh.Left,
		SideRight: sh.Right,
		SideFront: sh.Front,
		SideBack:  sh.Back,
	}
	var anims [numSides]Drawable
	for s, list := range names {
		frames, err := atlas.Frames(list...)
		if err != nil {
			return nil, fmt.Errorf("tod: side sheet %s: %w", Side(s), err)
		}
		a, err := NewFrameAnimation(frames, cfg)
		if err != nil {
			return nil, fmt.Errorf("tod: side sheet %s: %w", Side(s), err)
		}
		anims[s] = a
	}
	return NewFourSideDrawable(anims[SideLeft], anims[SideRight], anims[SideFront], anims[SideBack])
}

// LoadSideSheets decodes a YAML document mapping names to SideSheets and
// builds each against atlas. Unknown keys are rejected.
func LoadSideSheets(data []byte, atlas *Atlas, clock Clock) (map[string]*FourSideDrawable, error) {
	var sheets map[string]SideSheet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sheets); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("tod: failed to parse side sheets: %w", err)
	}
	out := make(map[string]*FourSideDrawable, len(sheets))
	for name, sh := range sheets {
		set, err := sh.Build(atlas, clock)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = set
	}
	return out, nil
}
