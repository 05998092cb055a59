package tilegrid

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Test JSON fixtures ---

const singlePageJSON = `{
  "frames": {
    "1": {
      "frame": {"x": 0, "y": 0, "w": 32, "h": 32}
    },
    "2": {
      "frame": {"x": 32, "y": 0, "w": 32, "h": 32}
    },
    "grass": {
      "frame": {"x": 64, "y": 16, "w": 32, "h": 48}
    }
  },
  "meta": {
    "image": "tiles.png",
    "size": {"w": 256, "h": 256}
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "tiles-0.png",
      "frames": {
        "1": {
          "frame": {"x": 0, "y": 0, "w": 16, "h": 16}
        }
      }
    },
    {
      "image": "tiles-1.png",
      "frames": {
        "2": {
          "frame": {"x": 48, "y": 32, "w": 16, "h": 16}
        }
      }
    }
  ]
}`

// --- LoadAtlas ---

func TestLoadAtlasSinglePage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), nil)
	if err != nil {
		t.Fatal(err)
	}
	if atlas.NumRegions() != 3 {
		t.Errorf("NumRegions = %d, want 3", atlas.NumRegions())
	}
	r, ok := atlas.Region("grass")
	if !ok {
		t.Fatal("region \"grass\" should exist")
	}
	want := TextureRegion{Page: 0, X: 64, Y: 16, Width: 32, Height: 48}
	if r != want {
		t.Errorf("Region(\"grass\") = %v, want %v", r, want)
	}
}

func TestLoadAtlasMultiPage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(multiPageJSON), nil)
	if err != nil {
		t.Fatal(err)
	}
	if atlas.NumRegions() != 2 {
		t.Errorf("NumRegions = %d, want 2", atlas.NumRegions())
	}
	r, ok := atlas.Region("2")
	if !ok {
		t.Fatal("region \"2\" should exist")
	}
	if r.Page != 1 {
		t.Errorf("Page = %d, want 1", r.Page)
	}
	if r.X != 48 || r.Y != 32 {
		t.Errorf("rect origin = (%d, %d), want (48, 32)", r.X, r.Y)
	}
}

func TestLoadAtlasMissingRegion(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := atlas.Region("nope"); ok {
		t.Error("unknown region should report ok = false")
	}
}

func TestLoadAtlasInvalidJSON(t *testing.T) {
	_, err := LoadAtlas([]byte("not json"), nil)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "tilegrid:") {
		t.Errorf("error = %q, want tilegrid: prefix", err.Error())
	}
}

func TestLoadAtlasNoKnownKeys(t *testing.T) {
	_, err := LoadAtlas([]byte(`{"meta": {}}`), nil)
	if err == nil {
		t.Fatal("expected error for JSON without frames or textures")
	}
}

// --- NewAtlas ---

func TestNewAtlasNilRegions(t *testing.T) {
	atlas := NewAtlas(nil, nil)
	if atlas.NumRegions() != 0 {
		t.Errorf("NumRegions = %d, want 0", atlas.NumRegions())
	}
	atlas.SetRegion("x", TextureRegion{Width: 8, Height: 8})
	if _, ok := atlas.Region("x"); !ok {
		t.Error("SetRegion should register the region")
	}
}

func TestAtlasPageImageOutOfRange(t *testing.T) {
	atlas := NewAtlas(nil, nil)
	if atlas.PageImage(0) != nil {
		t.Error("PageImage on empty atlas should be nil")
	}
	if atlas.PageImage(-1) != nil {
		t.Error("PageImage(-1) should be nil")
	}
}

// --- SliceSheet ---

func TestSliceSheet(t *testing.T) {
	sheet := ebiten.NewImage(64, 32) // 4×2 grid of 16×16 tiles
	atlas := SliceSheet(sheet, 16, 16, 1)

	if atlas.NumRegions() != 8 {
		t.Fatalf("NumRegions = %d, want 8", atlas.NumRegions())
	}
	// Keys "1".."8" row-major; "0" stays free for the empty sentinel.
	if _, ok := atlas.Region("0"); ok {
		t.Error("region \"0\" should not exist when first = 1")
	}
	r, ok := atlas.Region("6")
	if !ok {
		t.Fatal("region \"6\" should exist")
	}
	// Index 6 is the second tile of the second row.
	want := TextureRegion{Page: 0, X: 16, Y: 16, Width: 16, Height: 16}
	if r != want {
		t.Errorf("Region(\"6\") = %v, want %v", r, want)
	}
	if atlas.PageImage(0) != sheet {
		t.Error("PageImage(0) should be the sheet")
	}
}

func TestSliceSheetIgnoresPartialTiles(t *testing.T) {
	sheet := ebiten.NewImage(40, 16) // 2 full 16×16 tiles, 8px remainder
	atlas := SliceSheet(sheet, 16, 16, 1)
	if atlas.NumRegions() != 2 {
		t.Errorf("NumRegions = %d, want 2", atlas.NumRegions())
	}
}

func TestSliceSheetNilSheet(t *testing.T) {
	atlas := SliceSheet(nil, 16, 16, 1)
	if atlas.NumRegions() != 0 {
		t.Errorf("NumRegions = %d, want 0", atlas.NumRegions())
	}
}
