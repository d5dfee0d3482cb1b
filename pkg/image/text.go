package image

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Style selects the typeface and size of a text run.
type Style struct {
	Bold bool
	Size float64
}

// TextRenderer measures and draws single lines of text.
// The point passed to DrawText is the top left corner of the line.
type TextRenderer interface {
	Measure(text string, style Style) (int, error)
	DrawText(dst draw.Image, text string, style Style, c color.Color, pt image.Point) error
}

// FontRenderer renders text with OpenType fonts. Faces are created per call,
// so a single renderer can be shared between goroutines.
type FontRenderer struct {
	bold    *opentype.Font
	regular *opentype.Font
}

// NewFontRenderer parses TrueType or OpenType font data.
func NewFontRenderer(bold, regular []byte) (*FontRenderer, error) {
	b, err := opentype.Parse(bold)
	if err != nil {
		return nil, fmt.Errorf("image: couldn't parse bold font: %w", err)
	}
	r, err := opentype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("image: couldn't parse regular font: %w", err)
	}
	return &FontRenderer{bold: b, regular: r}, nil
}

// LoadFontRenderer reads the bold and regular fonts from disk.
func LoadFontRenderer(boldPath, regularPath string) (*FontRenderer, error) {
	bold, err := os.ReadFile(boldPath)
	if err != nil {
		return nil, fmt.Errorf("image: couldn't read font: %w", err)
	}
	regular, err := os.ReadFile(regularPath)
	if err != nil {
		return nil, fmt.Errorf("image: couldn't read font: %w", err)
	}
	return NewFontRenderer(bold, regular)
}

var (
	defaultRenderer     *FontRenderer
	defaultRendererErr  error
	defaultRendererOnce sync.Once
)

// DefaultRenderer uses the embedded Go fonts, which render identically on
// every host.
func DefaultRenderer() (*FontRenderer, error) {
	defaultRendererOnce.Do(func() {
		defaultRenderer, defaultRendererErr = NewFontRenderer(gobold.TTF, goregular.TTF)
	})
	return defaultRenderer, defaultRendererErr
}

// face returns a font.Face with the size of the style.
func (r *FontRenderer) face(style Style) (font.Face, error) {
	f := r.regular
	if style.Bold {
		f = r.bold
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    style.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("image: couldn't create font face: %w", err)
	}
	return face, nil
}

func (r *FontRenderer) Measure(text string, style Style) (int, error) {
	face, err := r.face(style)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return font.MeasureString(face, text).Ceil(), nil
}

func (r *FontRenderer) DrawText(dst draw.Image, text string, style Style, c color.Color, pt image.Point) error {
	face, err := r.face(style)
	if err != nil {
		return err
	}
	defer face.Close()

	// Align the text by its baseline
	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+ascent),
	}
	d.DrawString(text)
	return nil
}

// wrap splits text into lines that fit the given width. Words wider than the
// width are kept on their own line.
func wrap(r TextRenderer, text string, style Style, width int) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}, nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		w, err := r.Measure(candidate, style)
		if err != nil {
			return nil, err
		}
		if w <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line), nil
}
