package tilegrid

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion describes a sub-rectangle within an atlas page.
// Value type — stored directly on Node, no pointer.
type TextureRegion struct {
	Page   uint16 // atlas page index (references Atlas.Pages)
	X, Y   uint16 // top-left corner of the sub-image rect within the atlas page
	Width  uint16 // width of the sub-image rect
	Height uint16 // height of the sub-image rect
}

// TextureSource is the read-only key→texture mapping the compiler resolves
// tile keys against. It must be fully populated before New is called;
// tilegrid only ever queries it.
type TextureSource interface {
	// Region returns the region for the given key and whether it exists.
	Region(key string) (TextureRegion, bool)
	// PageImage returns the atlas page image for the given page index,
	// or nil if the page doesn't exist.
	PageImage(page int) *ebiten.Image
}

// Atlas holds one or more atlas page images and a map of named regions.
// It is the standard TextureSource implementation.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]TextureRegion
}

// NewAtlas creates an atlas from page images and a prebuilt region map.
// The regions map is used directly, not copied.
func NewAtlas(pages []*ebiten.Image, regions map[string]TextureRegion) *Atlas {
	if regions == nil {
		regions = make(map[string]TextureRegion)
	}
	return &Atlas{Pages: pages, regions: regions}
}

// Region returns the TextureRegion for the given key and whether it exists.
func (a *Atlas) Region(key string) (TextureRegion, bool) {
	r, ok := a.regions[key]
	return r, ok
}

// PageImage returns the page image at the given index, or nil if out of range.
func (a *Atlas) PageImage(page int) *ebiten.Image {
	if page < 0 || page >= len(a.Pages) {
		return nil
	}
	return a.Pages[page]
}

// NumRegions returns the number of named regions in the atlas.
func (a *Atlas) NumRegions() int {
	return len(a.regions)
}

// SetRegion registers (or replaces) a named region. Useful for procedurally
// built atlases that don't go through LoadAtlas.
func (a *Atlas) SetRegion(key string, r TextureRegion) {
	a.regions[key] = r
}

// SliceSheet cuts a uniform sprite sheet into tile regions, keyed by decimal
// tile index in row-major order starting at first. Pass first = 1 to keep
// index 0 free as the empty-tile sentinel. Partial tiles at the right and
// bottom edges of the sheet are ignored.
func SliceSheet(sheet *ebiten.Image, tileWidth, tileHeight, first int) *Atlas {
	atlas := NewAtlas([]*ebiten.Image{sheet}, nil)
	if sheet == nil || tileWidth <= 0 || tileHeight <= 0 {
		return atlas
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / tileWidth
	rows := bounds.Dy() / tileHeight
	index := first
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			atlas.regions[strconv.Itoa(index)] = TextureRegion{
				Page:   0,
				X:      uint16(col * tileWidth),
				Y:      uint16(row * tileHeight),
				Width:  uint16(tileWidth),
				Height: uint16(tileHeight),
			}
			index++
		}
	}
	return atlas
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
		return nil, fmt.Errorf("tilegrid: failed to parse atlas JSON: %w", err)
	}

	atlas := NewAtlas(pages, nil)

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
		return nil, fmt.Errorf("tilegrid: atlas JSON has neither \"frames\" nor \"textures\" key")
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

type jsonFrame struct {
	Frame jsonRect `json:"frame"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, pageIndex uint16, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("tilegrid: failed to parse atlas frames: %w", err)
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
		return fmt.Errorf("tilegrid: failed to parse atlas textures array: %w", err)
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
		Page:   page,
		X:      uint16(f.Frame.X),
		Y:      uint16(f.Frame.Y),
		Width:  uint16(f.Frame.W),
		Height: uint16(f.Frame.H),
	}
}
