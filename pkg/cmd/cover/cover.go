package cover

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/igolaizola/musicstore/pkg/catalog"
	"github.com/igolaizola/musicstore/pkg/image"
	"github.com/igolaizola/musicstore/pkg/seed"
)

type Config struct {
	Debug    bool
	Seed     int64
	Language string
	Index    int
	Title    string
	Artist   string
	Output   string

	// Optional font files, the embedded Go fonts are used otherwise
	BoldFont    string
	RegularFont string
}

// Run renders the cover of a catalog song to a png or jpeg file.
func Run(ctx context.Context, cfg *Config) error {
	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	if cfg.Index < 1 {
		return errors.New("cover: index must be positive")
	}
	if cfg.Output == "" {
		return errors.New("cover: output is required")
	}
	encode, err := image.GetEncoder(cfg.Output)
	if err != nil {
		return fmt.Errorf("cover: %w", err)
	}

	var renderer image.TextRenderer
	if cfg.BoldFont != "" || cfg.RegularFont != "" {
		r, err := image.LoadFontRenderer(cfg.BoldFont, cfg.RegularFont)
		if err != nil {
			return fmt.Errorf("cover: %w", err)
		}
		renderer = r
	} else {
		r, err := image.DefaultRenderer()
		if err != nil {
			return fmt.Errorf("cover: %w", err)
		}
		renderer = r
	}

	// Title and artist default to the generated song
	title, artist := cfg.Title, cfg.Artist
	if title == "" || artist == "" {
		song := catalog.Default().Song(cfg.Index, cfg.Seed, cfg.Language, 0)
		if title == "" {
			title = song.Title
		}
		if artist == "" {
			artist = song.Artist
		}
	}
	mediaSeed := seed.Media(cfg.Seed, cfg.Index)
	debug("cover: %q by %q (seed %d)", title, artist, mediaSeed)

	img, err := image.NewCoverer(renderer).Render(title, artist, mediaSeed)
	if err != nil {
		return fmt.Errorf("cover: %w", err)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("cover: couldn't create %s: %w", cfg.Output, err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		return fmt.Errorf("cover: couldn't encode %s: %w", cfg.Output, err)
	}
	return f.Close()
}
