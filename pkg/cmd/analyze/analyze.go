package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/igolaizola/musicstore/pkg/sound"
)

type Config struct {
	Debug  bool
	Input  string
	Output string
}

// Run prints a summary of a wav file and plots its RMS and waveform next to
// the output prefix.
func Run(ctx context.Context, cfg *Config) error {
	b, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("analyze: couldn't read %s: %w", cfg.Input, err)
	}
	a, err := sound.NewAnalyzer(b)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	fmt.Printf("Duration: %s, sample rate: %d, channels: %d\n", a.Duration(), a.SampleRate(), a.Channels())

	var peak float64
	for _, v := range a.RMS(100 * time.Millisecond) {
		if v > peak {
			peak = v
		}
	}
	fmt.Printf("Peak RMS: %.3f\n", peak)

	name := filepath.Base(cfg.Input)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	out := filepath.Join(cfg.Output, name)

	rms, err := a.PlotRMS(name)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if err := os.WriteFile(out+"-rms.jpg", rms, 0644); err != nil {
		return fmt.Errorf("analyze: couldn't write rms plot: %w", err)
	}
	wave, err := a.PlotWave(name)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if err := os.WriteFile(out+"-wave.jpg", wave, 0644); err != nil {
		return fmt.Errorf("analyze: couldn't write wave plot: %w", err)
	}
	return nil
}
