package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/igolaizola/musicstore/pkg/seed"
	"github.com/igolaizola/musicstore/pkg/sound"
)

type Config struct {
	Debug    bool
	Seed     int64
	Index    int
	Duration int
	Channels int
	Output   string
	Waveform string
	RMS      string
}

// Run synthesizes the audio clip of a catalog song to a wav file, optionally
// plotting its waveform and RMS.
func Run(ctx context.Context, cfg *Config) error {
	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	if cfg.Index < 1 {
		return errors.New("audio: index must be positive")
	}
	if cfg.Output == "" {
		return errors.New("audio: output is required")
	}
	duration := cfg.Duration
	if duration == 0 {
		duration = sound.DefaultDuration
	}
	channels := cfg.Channels
	if channels == 0 {
		channels = 1
	}

	mediaSeed := seed.Media(cfg.Seed, cfg.Index)
	debug("audio: index %d seed %d duration %ds channels %d", cfg.Index, mediaSeed, duration, channels)
	b, err := sound.Generate(mediaSeed, duration, channels)
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := os.WriteFile(cfg.Output, b, 0644); err != nil {
		return fmt.Errorf("audio: couldn't write %s: %w", cfg.Output, err)
	}
	if cfg.Waveform == "" && cfg.RMS == "" {
		return nil
	}

	a, err := sound.NewAnalyzer(b)
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	fmt.Printf("Duration: %s, sample rate: %d, channels: %d\n", a.Duration(), a.SampleRate(), a.Channels())
	name := fmt.Sprintf("song %d", cfg.Index)
	if cfg.Waveform != "" {
		plot, err := a.PlotWave(name)
		if err != nil {
			return fmt.Errorf("audio: %w", err)
		}
		if err := os.WriteFile(cfg.Waveform, plot, 0644); err != nil {
			return fmt.Errorf("audio: couldn't write %s: %w", cfg.Waveform, err)
		}
	}
	if cfg.RMS != "" {
		plot, err := a.PlotRMS(name)
		if err != nil {
			return fmt.Errorf("audio: %w", err)
		}
		if err := os.WriteFile(cfg.RMS, plot, 0644); err != nil {
			return fmt.Errorf("audio: couldn't write %s: %w", cfg.RMS, err)
		}
		debug("audio: rms windows %d", len(a.RMS(100*time.Millisecond)))
	}
	return nil
}
