package image

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"strings"
	"testing"
)

func TestCoverDeterministic(t *testing.T) {
	a, err := Cover("Echo Fading", "Silver Orchestra", 42)
	if err != nil {
		t.Fatalf("Cover() err = %v", err)
	}
	b, err := Cover("Echo Fading", "Silver Orchestra", 42)
	if err != nil {
		t.Fatalf("Cover() err = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("Cover() not deterministic")
	}
	c, err := Cover("Echo Fading", "Silver Orchestra", 43)
	if err != nil {
		t.Fatalf("Cover() err = %v", err)
	}
	if bytes.Equal(a, c) {
		t.Errorf("Cover() ignores the seed")
	}
}

func TestCoverShape(t *testing.T) {
	b, err := Cover("Echo Fading", "Silver Orchestra", 42)
	if err != nil {
		t.Fatalf("Cover() err = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("png.Decode() err = %v", err)
	}
	if got := img.Bounds(); got.Dx() != Size || got.Dy() != Size {
		t.Fatalf("bounds = %v, want %dx%d", got, Size, Size)
	}

	// Top left pixel is the first gradient color
	rnd := rand.New(rand.NewSource(42))
	from := randomColor(rnd)
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != from {
		t.Errorf("pixel(0, 0) = %v, want %v", got, from)
	}

	// The backdrop darkens the gradient
	outside := color.RGBAModel.Convert(img.At(5, 375)).(color.RGBA)
	inside := color.RGBAModel.Convert(img.At(25, 375)).(color.RGBA)
	if inside.R >= outside.R || inside.G >= outside.G || inside.B >= outside.B {
		t.Errorf("backdrop pixel %v not darker than %v", inside, outside)
	}
}

func TestRandomColorRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		c := randomColor(rnd)
		for _, v := range []uint8{c.R, c.G, c.B} {
			if v < 50 || v > 254 {
				t.Fatalf("channel %d out of [50, 255)", v)
			}
		}
	}
}

func TestGradient(t *testing.T) {
	from := color.RGBA{100, 200, 50, 255}
	to := color.RGBA{200, 100, 250, 255}
	tests := []struct {
		ratio float64
		want  color.RGBA
	}{
		{0, from},
		{0.5, color.RGBA{150, 150, 150, 255}},
		{0.25, color.RGBA{125, 175, 100, 255}},
	}
	for _, tt := range tests {
		if got := gradient(from, to, tt.ratio); got != tt.want {
			t.Errorf("gradient(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

type drawCall struct {
	text  string
	style Style
	pt    image.Point
}

// fakeRenderer measures 10px per character and records draw calls.
type fakeRenderer struct {
	calls []drawCall
}

func (f *fakeRenderer) Measure(text string, style Style) (int, error) {
	return 10 * len(text), nil
}

func (f *fakeRenderer) DrawText(dst draw.Image, text string, style Style, c color.Color, pt image.Point) error {
	f.calls = append(f.calls, drawCall{text: text, style: style, pt: pt})
	return nil
}

func TestRenderLayout(t *testing.T) {
	f := &fakeRenderer{}
	if _, err := NewCoverer(f).Render("Echo Fading", "Silver Orchestra", 1); err != nil {
		t.Fatalf("Render() err = %v", err)
	}
	want := []drawCall{
		{"Echo Fading", TitleStyle, image.Pt(30, 330)},
		{"Silver Orchestra", ArtistStyle, image.Pt(30, 360)},
	}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, f.calls[i], want[i])
		}
	}
}

func TestRenderWrap(t *testing.T) {
	f := &fakeRenderer{}
	title := strings.TrimSpace(strings.Repeat("abcdef ", 10))
	img, err := NewCoverer(f).Render(title, "Band", 1)
	if err != nil {
		t.Fatalf("Render() err = %v", err)
	}
	line := strings.TrimSpace(strings.Repeat("abcdef ", 5))
	want := []drawCall{
		{line, TitleStyle, image.Pt(30, 300)},
		{line, TitleStyle, image.Pt(30, 330)},
		{"Band", ArtistStyle, image.Pt(30, 360)},
	}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, f.calls[i], want[i])
		}
	}

	// The backdrop grows to host the extra line
	plain, err := NewCoverer(&fakeRenderer{}).Render("Short", "Band", 1)
	if err != nil {
		t.Fatalf("Render() err = %v", err)
	}
	if img.RGBAAt(25, 295) == plain.RGBAAt(25, 295) {
		t.Errorf("backdrop did not grow for wrapped title")
	}
}

func TestWrap(t *testing.T) {
	f := &fakeRenderer{}
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"one", []string{"one"}},
		{"aaaa bbbb cccc", []string{"aaaa bbbb", "cccc"}},
		{"averyveryverylongword x", []string{"averyveryverylongword", "x"}},
	}
	for _, tt := range tests {
		got, err := wrap(f, tt.text, TitleStyle, 100)
		if err != nil {
			t.Fatalf("wrap(%q) err = %v", tt.text, err)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrap(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestGetEncoder(t *testing.T) {
	for _, name := range []string{"a.png", "a.jpg", "a.jpeg"} {
		if _, err := GetEncoder(name); err != nil {
			t.Errorf("GetEncoder(%q) err = %v", name, err)
		}
	}
	if _, err := GetEncoder("a.gif"); err == nil {
		t.Errorf("GetEncoder(a.gif) err = nil, want error")
	}
}

func TestFontRendererMeasure(t *testing.T) {
	r, err := DefaultRenderer()
	if err != nil {
		t.Fatalf("DefaultRenderer() err = %v", err)
	}
	short, err := r.Measure("Echo", TitleStyle)
	if err != nil {
		t.Fatal(err)
	}
	long, err := r.Measure("Echo Fading", TitleStyle)
	if err != nil {
		t.Fatal(err)
	}
	small, err := r.Measure("Echo Fading", ArtistStyle)
	if err != nil {
		t.Fatal(err)
	}
	if short <= 0 || long <= short || small >= long {
		t.Errorf("unexpected widths: short=%d long=%d small=%d", short, long, small)
	}
	if _, err := NewFontRenderer([]byte("not a font"), nil); err == nil {
		t.Errorf("NewFontRenderer(garbage) err = nil, want error")
	}
}
