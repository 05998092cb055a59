// Package tilegrid compiles layered 2D tile maps into a scene graph of
// positioned sprite nodes for [Ebitengine].
//
// Tilegrid is a pure presentation layer: it owns no game state and runs no
// simulation. The caller owns the tile index data; tilegrid's only contract
// is "data in, scene-graph nodes out". Each layer of integer tile indices
// becomes one container node, each non-empty cell becomes one sprite node
// positioned on the cell grid, and the whole tree is built eagerly and
// synchronously by [New].
//
// # Quick start
//
//	atlas := tilegrid.SliceSheet(sheetImage, 32, 32, 1)
//	grid, err := tilegrid.New(tilegrid.Config{
//		Layers: []tilegrid.Layer{
//			{Name: "ground", DrawOrder: 0, Grid: groundData},
//			{Name: "props", DrawOrder: 10, Grid: propsData},
//		},
//		Source:     atlas,
//		TileWidth:  32,
//		TileHeight: 32,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Draw the compiled tree each frame with [Grid.Draw], or walk it yourself
// starting from [Grid.Root].
//
// # Tile indices and texture keys
//
// Tile index 0 is reserved for "no tile" and never produces a sprite. Every
// other index is converted to a texture key — by default its decimal string
// form, or via a custom [Config.TileKey] function — and looked up in the
// configured [TextureSource]. A key with no matching region drops that one
// cell and reports a [Diagnostic]; it never aborts the build.
//
// # Layer ordering
//
// Layers stack by [Layer.DrawOrder], lower values behind higher ones. Equal
// values keep their relative input order (the sort is stable). The compiled
// layer containers carry their draw order as [Node.ZIndex] and the root is
// marked [Node.SortableChildren], so a host renderer that re-sorts children
// by ZIndex reproduces the same stacking.
//
// [Ebitengine]: https://ebitengine.org
package tilegrid
