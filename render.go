package tilegrid

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders the compiled tree onto dst with Ebitengine. Nodes draw
// depth-first in OrderedChildren order; each sprite's region is scaled to
// its explicit Width/Height. Hosts embedding the tree in their own scene
// graph can ignore Draw and walk from Root instead.
func (g *Grid) Draw(dst *ebiten.Image) {
	var op ebiten.DrawImageOptions
	drawNode(dst, g.root, g.source, 0, 0, 1, &op)
}

// drawNode draws n and then its children, accumulating position offset and
// alpha down the tree.
func drawNode(dst *ebiten.Image, n *Node, src TextureSource, offsetX, offsetY, parentAlpha float64, op *ebiten.DrawImageOptions) {
	if !n.Visible {
		return
	}
	x := offsetX + n.X
	y := offsetY + n.Y
	alpha := parentAlpha * n.Alpha

	if n.Type == NodeTypeSprite {
		drawSprite(dst, n, src, x, y, alpha, op)
	}

	for _, child := range n.OrderedChildren() {
		drawNode(dst, child, src, x, y, alpha, op)
	}
}

// drawSprite draws a single sprite node using DrawImage.
func drawSprite(dst *ebiten.Image, n *Node, src TextureSource, x, y, alpha float64, op *ebiten.DrawImageOptions) {
	r := n.TextureRegion
	if r.Width == 0 || r.Height == 0 {
		return
	}
	page := src.PageImage(int(r.Page))
	if page == nil {
		return
	}

	subRect := image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
	subImg := page.SubImage(subRect).(*ebiten.Image)

	op.GeoM.Reset()
	if n.Width > 0 && n.Height > 0 {
		// Force the rendered size to the explicit override.
		op.GeoM.Scale(n.Width/float64(r.Width), n.Height/float64(r.Height))
	}
	op.GeoM.Translate(x, y)

	// Premultiplied tint.
	a := float32(n.Color.A * alpha)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)

	dst.DrawImage(subImg, op)
}
