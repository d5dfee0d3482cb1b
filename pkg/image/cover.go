package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
)

// Size is the width and height of a cover in pixels.
const Size = 400

// Backdrop layout. The backdrop is anchored at the bottom and grows upwards
// when the text wraps to more than two lines.
const (
	backdropLeft   = 20
	backdropRight  = 380
	backdropBottom = 380
	backdropAlpha  = 128
	textPadding    = 10
	titlePitch     = 30
	artistPitch    = 20
)

var (
	TitleStyle  = Style{Bold: true, Size: 24}
	ArtistStyle = Style{Size: 18}

	titleColor  = color.RGBA{255, 255, 255, 255}
	artistColor = color.RGBA{211, 211, 211, 255}
)

// Coverer renders album covers. It holds no mutable state.
type Coverer struct {
	text TextRenderer
}

func NewCoverer(text TextRenderer) *Coverer {
	return &Coverer{text: text}
}

// Cover renders a PNG cover using the embedded fonts.
func Cover(title, artist string, seed int64) ([]byte, error) {
	r, err := DefaultRenderer()
	if err != nil {
		return nil, err
	}
	return NewCoverer(r).Cover(title, artist, seed)
}

// Cover renders a cover and encodes it as PNG.
func (c *Coverer) Cover(title, artist string, seed int64) ([]byte, error) {
	img, err := c.Render(title, artist, seed)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("image: couldn't encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Render draws a gradient cover with the title and artist over a translucent
// backdrop.
func (c *Coverer) Render(title, artist string, seed int64) (*image.RGBA, error) {
	rnd := rand.New(rand.NewSource(seed))
	from := randomColor(rnd)
	to := randomColor(rnd)

	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	for y := 0; y < Size; y++ {
		fillRow(img, y, gradient(from, to, float64(y)/Size))
	}

	width := backdropRight - backdropLeft - 2*textPadding
	titleLines, err := wrap(c.text, title, TitleStyle, width)
	if err != nil {
		return nil, err
	}
	artistLines, err := wrap(c.text, artist, ArtistStyle, width)
	if err != nil {
		return nil, err
	}

	height := textPadding + titlePitch*len(titleLines) + artistPitch*len(artistLines)
	top := backdropBottom - height
	addOverlay(img, image.Rect(backdropLeft, top, backdropRight, backdropBottom), color.NRGBA{A: backdropAlpha})

	pt := image.Pt(backdropLeft+textPadding, top+textPadding)
	for _, line := range titleLines {
		if err := c.text.DrawText(img, line, TitleStyle, titleColor, pt); err != nil {
			return nil, err
		}
		pt.Y += titlePitch
	}
	for _, line := range artistLines {
		if err := c.text.DrawText(img, line, ArtistStyle, artistColor, pt); err != nil {
			return nil, err
		}
		pt.Y += artistPitch
	}
	return img, nil
}

// randomColor draws each channel uniformly from [50, 255).
func randomColor(rnd *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(50 + rnd.Intn(205)),
		G: uint8(50 + rnd.Intn(205)),
		B: uint8(50 + rnd.Intn(205)),
		A: 255,
	}
}

func gradient(from, to color.RGBA, ratio float64) color.RGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*ratio)
	}
	return color.RGBA{
		R: lerp(from.R, to.R),
		G: lerp(from.G, to.G),
		B: lerp(from.B, to.B),
		A: 255,
	}
}
