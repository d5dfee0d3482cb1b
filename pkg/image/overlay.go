package image

import (
	"image"
	"image/color"
	"image/draw"
)

// fillRow paints a full-width opaque row.
func fillRow(dst draw.Image, y int, c color.Color) {
	r := image.Rect(dst.Bounds().Min.X, y, dst.Bounds().Max.X, y+1)
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// addOverlay blends a translucent color over a region of the image.
func addOverlay(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}
