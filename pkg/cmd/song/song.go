package song

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/igolaizola/musicstore/pkg/catalog"
)

type Config struct {
	Debug        bool
	Seed         int64
	Language     string
	AverageLikes float64
	Index        int
	Page         int
	PageSize     int
	Output       string
}

// Run prints the metadata of a single song when an index is set, or of a
// catalog page otherwise.
func Run(ctx context.Context, cfg *Config) error {
	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	g := catalog.Default()
	var v interface{}
	if cfg.Index > 0 {
		debug("song: index %d seed %d language %s", cfg.Index, cfg.Seed, cfg.Language)
		v = g.Song(cfg.Index, cfg.Seed, cfg.Language, cfg.AverageLikes)
	} else {
		debug("song: page %d size %d seed %d language %s", cfg.Page, cfg.PageSize, cfg.Seed, cfg.Language)
		v = g.Page(cfg.Page, cfg.PageSize, cfg.Seed, cfg.Language, cfg.AverageLikes)
	}
	js, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("song: couldn't marshal json: %w", err)
	}
	if cfg.Output == "" {
		fmt.Println(string(js))
		return nil
	}
	if err := os.WriteFile(cfg.Output, js, 0644); err != nil {
		return fmt.Errorf("song: couldn't write %s: %w", cfg.Output, err)
	}
	return nil
}
