package audio

import (
	"bytes"
	"context"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/igolaizola/musicstore/pkg/seed"
	"github.com/igolaizola/musicstore/pkg/sound"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Seed:     42,
		Index:    3,
		Duration: 1,
		Channels: 2,
		Output:   filepath.Join(dir, "song.wav"),
		Waveform: filepath.Join(dir, "wave.jpg"),
		RMS:      filepath.Join(dir, "rms.jpg"),
	}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run() err = %v", err)
	}
	got, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	want, err := sound.Generate(seed.Media(42, 3), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("wav file differs from generated audio")
	}
	for _, name := range []string{cfg.Waveform, cfg.RMS} {
		b, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := jpeg.Decode(bytes.NewReader(b)); err != nil {
			t.Errorf("couldn't decode %s: %v", name, err)
		}
	}
}

func TestRunInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []*Config{
		{Index: 0, Output: filepath.Join(dir, "a.wav")},
		{Index: 1},
		{Index: 1, Duration: -1, Output: filepath.Join(dir, "b.wav")},
		{Index: 1, Channels: 3, Output: filepath.Join(dir, "c.wav")},
	}
	for _, cfg := range tests {
		if err := Run(context.Background(), cfg); err == nil {
			t.Errorf("Run(%+v) err = nil, want error", cfg)
		}
	}
}
