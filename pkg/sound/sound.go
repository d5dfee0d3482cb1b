package sound

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/faiface/beep/wav"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type Analyzer struct {
	mono     []float64
	rate     int
	channels int
	duration time.Duration
}

// NewAnalyzer decodes a WAV clip.
func NewAnalyzer(b []byte) (*Analyzer, error) {
	s, format, err := wav.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("sound: couldn't decode wav: %w", err)
	}
	defer s.Close()

	mono := make([]float64, 0, s.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		if !ok {
			break
		}
		for _, v := range buf[:n] {
			mono = append(mono, (v[0]+v[1])/2.0)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("sound: couldn't read samples: %w", err)
	}

	return &Analyzer{
		mono:     mono,
		rate:     int(format.SampleRate),
		channels: format.NumChannels,
		duration: format.SampleRate.D(len(mono)),
	}, nil
}

func (a *Analyzer) Duration() time.Duration {
	return a.duration
}

func (a *Analyzer) SampleRate() int {
	return a.rate
}

func (a *Analyzer) Channels() int {
	return a.channels
}

// Samples returns the number of samples per channel.
func (a *Analyzer) Samples() int {
	return len(a.mono)
}

// Resample returns the min and max values of each window.
func (a *Analyzer) Resample(windowSize time.Duration) []float64 {
	var resampled []float64
	for _, window := range a.windows(windowSize) {
		var min, max float64
		for _, v := range window {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		resampled = append(resampled, min, max)
	}
	return resampled
}

func (a *Analyzer) RMS(windowSize time.Duration) []float64 {
	var rms []float64
	for _, window := range a.windows(windowSize) {
		rms = append(rms, calculateRMS(window))
	}
	return rms
}

func (a *Analyzer) windows(windowSize time.Duration) [][]float64 {
	windowLength := int(float64(a.rate) * windowSize.Seconds())
	if windowLength < 1 {
		windowLength = 1
	}
	var windows [][]float64
	for i := 0; i < len(a.mono); i += windowLength {
		end := i + windowLength
		if end > len(a.mono) {
			end = len(a.mono)
		}
		windows = append(windows, a.mono[i:end])
	}
	return windows
}

func calculateRMS(samples []float64) float64 {
	var squareSum float64
	for _, sample := range samples {
		squareSum += sample * sample
	}
	meanSquare := squareSum / float64(len(samples))
	return math.Sqrt(meanSquare)
}

// PlotRMS returns a JPEG plot of the clip loudness.
func (a *Analyzer) PlotRMS(name string) ([]byte, error) {
	window := 50 * time.Millisecond
	return a.createPlot(name, a.RMS(window), 0, 1, window.Seconds(), 0)
}

// PlotWave returns a JPEG plot of the clip waveform.
func (a *Analyzer) PlotWave(name string) ([]byte, error) {
	window := 10 * time.Millisecond
	// Each window yields two points: min and max
	return a.createPlot(name, a.Resample(window), -1, 1, window.Seconds()/2, 0)
}

func (a *Analyzer) createPlot(name string, data []float64, min, max float64, step float64, line float64) ([]byte, error) {
	p := plot.New()

	p.Y.Min = min
	p.Y.Max = max

	p.Title.Text = fmt.Sprintf("%s %s", name, a.duration)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "amplitude"

	l, err := plotter.NewLine(makePoints(data, step))
	if err != nil {
		return nil, fmt.Errorf("sound: couldn't create line plotter: %w", err)
	}
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)

	// Reference line at y = N
	if line > 0 {
		hLine := plotter.NewFunction(func(x float64) float64 { return line })
		hLine.Color = color.RGBA{R: 255, A: 255}
		p.Add(hLine)
	}

	c, err := p.WriterTo(4*vg.Inch, 4*vg.Inch, "jpeg")
	if err != nil {
		return nil, fmt.Errorf("sound: couldn't create plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("sound: couldn't write plot: %w", err)
	}
	return buf.Bytes(), nil
}

// makePoints converts samples to plotter.XYs with x in seconds.
func makePoints(samples []float64, step float64) plotter.XYs {
	pts := make(plotter.XYs, len(samples))
	for i, v := range samples {
		pts[i].X = float64(i) * step
		pts[i].Y = v
	}
	return pts
}
