package sound

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/igolaizola/musicstore/pkg/music"
)

const (
	SampleRate      = 44100
	BitDepth        = 16
	DefaultDuration = 6

	minTempo = 80
	maxTempo = 140
)

// Component weights, their sum must not exceed 1.
const (
	melodyWeight  = 0.30
	bassWeight    = 0.25
	harmonyWeight = 0.20
)

// Envelope breakpoints as fractions of a beat.
const (
	attackEnd    = 0.1
	decayEnd     = 0.3
	releaseStart = 0.7
	sustainLevel = 0.7
)

// Envelope returns the attack/decay/sustain/release amplitude at a position
// within a beat of the given length, both in samples.
func Envelope(pos, length int) float64 {
	p := float64(pos) / float64(length)
	switch {
	case p < attackEnd:
		return p / attackEnd
	case p < decayEnd:
		return 1 - (p-attackEnd)/(decayEnd-attackEnd)*(1-sustainLevel)
	case p < releaseStart:
		return sustainLevel
	default:
		return sustainLevel * (1 - (p-releaseStart)/(1-releaseStart))
	}
}

// Synthesize renders a mono clip of the given duration in seconds as
// normalized samples in [-1, 1].
func Synthesize(seed int64, duration int) []float64 {
	if duration < 1 {
		return nil
	}
	rnd := rand.New(rand.NewSource(seed))

	scale := music.MajorScale(music.Note(60 + rnd.Intn(12)))
	chords := music.Progressions[rnd.Intn(len(music.Progressions))].Chords(scale)
	bpm := minTempo + rnd.Intn(maxTempo-minTempo)

	beatSamples := SampleRate * 60 / bpm
	total := SampleRate * duration
	beats := (total + beatSamples - 1) / beatSamples

	// One melody note per beat, one octave above the scale
	melody := make([]float64, beats)
	for i := range melody {
		melody[i] = scale.Degree(rnd.Intn(len(scale))).Transpose(12).Frequency()
	}

	samples := make([]float64, total)
	for i := range samples {
		t := float64(i) / SampleRate
		beat := i / beatSamples
		chord := chords[beat%len(chords)]
		env := Envelope(i%beatSamples, beatSamples)

		v := melodyWeight * env * sine(melody[beat], t)
		v += bassWeight * sine(chord.Root().Transpose(-12).Frequency(), t)
		v += harmonyWeight * env * sine(chord[1].Frequency(), t)
		v += harmonyWeight * env * sine(chord[2].Frequency(), t)
		samples[i] = v
	}
	return samples
}

func sine(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

// Generate synthesizes a clip and returns it as a 16-bit PCM WAV container.
// Stereo output duplicates the mono signal on both channels.
func Generate(seed int64, duration, channels int) ([]byte, error) {
	if duration < 1 {
		return nil, fmt.Errorf("sound: invalid duration %d", duration)
	}
	return Encode(Synthesize(seed, duration), channels)
}
