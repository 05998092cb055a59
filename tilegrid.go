package tilegrid

import "strconv"

// Default values applied to Config fields left at zero.
const (
	// DefaultChunkSize is the default chunk edge length in tiles.
	DefaultChunkSize = 16
	// DefaultCullingMargin is the default culling margin in tiles.
	DefaultCullingMargin = 2
)

// Layer is one named grid of tile indices. Layers are value inputs: New
// reads them once during compilation and never holds a reference.
type Layer struct {
	// Name labels the layer's container node and keys the Grid.LayerNode
	// lookup. Names should be unique within a config; duplicates are not
	// rejected, the last layer wins the lookup slot.
	Name string

	// DrawOrder controls stacking: lower values render beneath higher
	// values. Layers with equal DrawOrder keep their relative input order.
	DrawOrder int

	// Grid holds tile indices as rows of columns. Rows may have differing
	// lengths; short rows simply produce fewer cells. Index 0 means
	// "no tile".
	Grid [][]int
}

// Config describes a grid compilation. Layers, Source, TileWidth and
// TileHeight are required; everything else has a usable zero value.
type Config struct {
	// Layers is the list of tile layers to compile. Must be non-empty.
	Layers []Layer

	// Source is the key→texture mapping tile indices resolve against.
	// It must be fully populated before New is called.
	Source TextureSource

	// TileWidth and TileHeight are the cell dimensions in pixels. Every
	// produced sprite is forced to exactly this size, regardless of its
	// texture region's native dimensions. Must be positive.
	TileWidth  float64
	TileHeight float64

	// TileKey, when set, converts a tile index to its texture key. The
	// default is the decimal string form of the index. Returning "" skips
	// the cell like tile index 0 (no lookup, no diagnostic).
	TileKey func(tile int) string

	// ChunkSize and CullingMargin are stored for future spatial
	// partitioning. They currently have no behavioral effect.
	ChunkSize     int // default 16
	CullingMargin int // default 2

	// Diagnostics receives recoverable compile problems (empty layers,
	// unresolvable tiles). Default: log to stderr.
	Diagnostics DiagnosticFunc
}

// ConfigError reports an invalid Config passed to New. Construction either
// fully succeeds or fails with a *ConfigError before any node is created.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}

func configErr(msg string) *ConfigError {
	return &ConfigError{msg: "tilegrid: " + msg}
}

// Grid is a compiled tile map: a root container holding one container per
// layer in draw order, each filled with positioned sprite nodes. The tree
// is built eagerly by New and is not rebuilt afterwards; to reflect changed
// tile data, compile a new Grid.
type Grid struct {
	root   *Node
	byName map[string]*Node

	tileWidth  float64
	tileHeight float64

	source  TextureSource
	tileKey func(int) string
	diag    DiagnosticFunc

	// Inert configuration, reserved for spatial partitioning.
	chunkSize     int
	cullingMargin int
}

// New validates cfg and compiles the full node tree. It returns a
// *ConfigError for structurally invalid configs; recoverable problems
// (empty layers, unresolvable tiles) go to the diagnostics sink instead
// and never fail the build.
func New(cfg Config) (*Grid, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	g := &Grid{
		root:          NewContainer("tilegrid"),
		byName:        make(map[string]*Node, len(cfg.Layers)),
		tileWidth:     cfg.TileWidth,
		tileHeight:    cfg.TileHeight,
		source:        cfg.Source,
		tileKey:       cfg.TileKey,
		diag:          cfg.Diagnostics,
		chunkSize:     cfg.ChunkSize,
		cullingMargin: cfg.CullingMargin,
	}
	if g.diag == nil {
		g.diag = logDiagnostic
	}
	if g.chunkSize == 0 {
		g.chunkSize = DefaultChunkSize
	}
	if g.cullingMargin == 0 {
		g.cullingMargin = DefaultCullingMargin
	}

	g.compile(cfg.Layers)
	return g, nil
}

// validate checks the fatal config rules, in documented order: layers,
// then source, then tile width, then tile height. First failure wins.
func validate(cfg Config) error {
	if len(cfg.Layers) == 0 {
		return configErr("Layers is required and must contain at least one layer")
	}
	if cfg.Source == nil {
		return configErr("Source is required")
	}
	if !(cfg.TileWidth > 0) {
		return configErr("TileWidth must be positive")
	}
	if !(cfg.TileHeight > 0) {
		return configErr("TileHeight must be positive")
	}
	return nil
}

// compile builds one container per layer, lowest DrawOrder first, and
// attaches them to the root in that order.
func (g *Grid) compile(layers []Layer) {
	sorted := make([]Layer, len(layers))
	copy(sorted, layers)
	// Stable insertion sort by DrawOrder: equal values keep input order.
	for i := 1; i < len(sorted); i++ {
		key := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j].DrawOrder > key.DrawOrder {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = key
	}

	for _, layer := range sorted {
		container := NewContainer(layer.Name)
		container.ZIndex = layer.DrawOrder
		g.byName[layer.Name] = container

		if len(layer.Grid) == 0 {
			g.diag(Diagnostic{Kind: DiagEmptyLayer, Layer: layer.Name})
		} else {
			g.rasterize(layer, container)
		}
		g.root.AddChild(container)
	}

	// Insertion order already equals draw order; the flag is the durable
	// signal for hosts that re-sort children by ZIndex.
	g.root.SortableChildren = true
}

// rasterize walks one layer's grid row-major and fills its container with
// sprite nodes, one per non-empty resolved cell.
func (g *Grid) rasterize(layer Layer, container *Node) {
	for row, cells := range layer.Grid {
		for col, tile := range cells {
			if tile == 0 {
				continue // empty tile
			}
			key := g.resolveKey(tile)
			if key == "" {
				continue
			}
			region, ok := g.source.Region(key)
			if !ok {
				g.diag(Diagnostic{
					Kind:  DiagMissingTexture,
					Layer: layer.Name,
					Row:   row,
					Col:   col,
					Tile:  tile,
					Key:   key,
				})
				continue
			}

			sprite := NewSprite(key, region)
			sprite.X = float64(col) * g.tileWidth
			sprite.Y = float64(row) * g.tileHeight
			sprite.Width = g.tileWidth
			sprite.Height = g.tileHeight
			container.AddChild(sprite)
		}
	}
}

// resolveKey converts a tile index to its texture key. An empty key means
// "skip this cell without a lookup".
func (g *Grid) resolveKey(tile int) string {
	if g.tileKey != nil {
		return g.tileKey(tile)
	}
	return strconv.Itoa(tile)
}

// Root returns the root container of the compiled tree. Attach it to a host
// scene graph, or draw it directly with Grid.Draw.
func (g *Grid) Root() *Node {
	return g.root
}

// LayerNode returns the container for the named layer, or nil if no layer
// by that name was compiled.
func (g *Grid) LayerNode(name string) *Node {
	return g.byName[name]
}

// TileWidth returns the configured cell width in pixels.
func (g *Grid) TileWidth() float64 {
	return g.tileWidth
}

// TileHeight returns the configured cell height in pixels.
func (g *Grid) TileHeight() float64 {
	return g.tileHeight
}

// ChunkSize returns the configured chunk edge length in tiles.
// Reserved for spatial partitioning; currently has no behavioral effect.
func (g *Grid) ChunkSize() int {
	return g.chunkSize
}

// CullingMargin returns the configured culling margin in tiles.
// Reserved for spatial partitioning; currently has no behavioral effect.
func (g *Grid) CullingMargin() int {
	return g.cullingMargin
}

// Dispose disposes the entire compiled tree and clears the layer lookup.
// The Grid must not be used afterwards.
func (g *Grid) Dispose() {
	g.root.Dispose()
	g.byName = nil
}
