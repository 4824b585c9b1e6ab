package tod

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownRegion is returned when an atlas has no region with a given name.
var ErrUnknownRegion = errors.New("tod: unknown atlas region")

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      uint16 // atlas page index (references Atlas.Pages)
	X, Y      uint16 // top-left corner of the sub-image rect within the atlas page
	Width     uint16 // upright width of the packed pixels (may differ from OriginalW if trimmed)
	Height    uint16 // upright height of the packed pixels (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed sprite width as authored
	OriginalH uint16 // untrimmed sprite height as authored
	OffsetX   int16  // horizontal trim offset from TexturePacker
	OffsetY   int16  // vertical trim offset from TexturePacker
	Rotated   bool   // stored 90 degrees clockwise; the page rect is Height x Width
}

// Atlas holds one or more atlas page images and a map of named regions.
// Textures cut from it are cached by name.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages    []*ebiten.Image
	regions  map[string]TextureRegion
	textures map[string]*Texture
}

// Region returns the TextureRegion for the given name and whether it exists.
func (a *Atlas) Region(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Texture returns a Texture for the named region. Trimmed and rotated
// regions are restored to their authored size and orientation so that the
// texture centers the same way the source sprite did.
func (a *Atlas) Texture(name string) (*Texture, error) {
	if t, ok := a.textures[name]; ok {
		return t, nil
	}
	r, ok := a.regions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	if int(r.Page) >= len(a.Pages) || a.Pages[r.Page] == nil {
		return nil, fmt.Errorf("tod: region %q references missing page %d", name, r.Page)
	}
	t := NewTexture(regionImage(a.Pages[r.Page], r))
	if a.textures == nil {
		a.textures = make(map[string]*Texture)
	}
	a.textures[name] = t
	return t, nil
}

// Frames returns one Texture per name, in order, ready for NewFrameAnimation.
func (a *Atlas) Frames(names ...string) ([]StaticDrawable, error) {
	frames := make([]StaticDrawable, 0, len(names))
	for _, name := range names {
		t, err := a.Texture(name)
		if err != nil {
			return nil, err
		}
		frames = append(frames, t)
	}
	return frames, nil
}

// regionRect returns the rectangle r occupies on its page. A rotated region
// is stored on its side, so its page footprint is Height wide and Width tall.
func regionRect(r TextureRegion) image.Rectangle {
	x, y := int(r.X), int(r.Y)
	if r.Rotated {
		return image.Rect(x, y, x+int(r.Height), y+int(r.Width))
	}
	return image.Rect(x, y, x+int(r.Width), y+int(r.Height))
}

// regionGeoM maps page pixels of r into the untrimmed, upright sprite.
func regionGeoM(r TextureRegion) ebiten.GeoM {
	var g ebiten.GeoM
	if r.Rotated {
		// Stored 90 degrees clockwise: turn it back, then lift the result,
		// which now spans [-Height, 0] vertically, into view.
		g.Rotate(-math.Pi / 2)
		g.Translate(0, float64(r.Height))
	}
	g.Translate(float64(r.OffsetX), float64(r.OffsetY))
	return g
}

// regionImage cuts r out of page. Plain regions are returned as sub-images;
// trimmed or rotated ones are redrawn into an image of the untrimmed size.
func regionImage(page *ebiten.Image, r TextureRegion) *ebiten.Image {
	sub := page.SubImage(regionRect(r)).(*ebiten.Image)

	w, h := int(r.Width), int(r.Height)
	ow, oh := int(r.OriginalW), int(r.OriginalH)
	if ow == 0 || oh == 0 {
		ow, oh = w, h
	}
	if !r.Rotated && r.OffsetX == 0 && r.OffsetY == 0 && ow == w && oh == h {
		return sub
	}

	img := ebiten.NewImage(ow, oh)
	img.DrawImage(sub, &ebiten.DrawImageOptions{GeoM: regionGeoM(r)})
	return img
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("tod: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]TextureRegion),
	}

	if probe.Textures != nil {
		// Multi-page array format
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	} else if probe.Frames != nil {
		// Single-page hash format
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("tod: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, pageIndex uint16, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("tod: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, pageIndex)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("tod: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, uint16(i))
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page uint16) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}
