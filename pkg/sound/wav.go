package sound

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Encode writes normalized mono samples as a 16-bit PCM WAV container with
// one or two channels.
func Encode(samples []float64, channels int) ([]byte, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("sound: unsupported number of channels %d", channels)
	}
	format := beep.Format{
		SampleRate:  SampleRate,
		NumChannels: channels,
		Precision:   BitDepth / 8,
	}
	w := &writeSeeker{}
	if err := wav.Encode(w, &monoStreamer{samples: samples}, format); err != nil {
		return nil, fmt.Errorf("sound: couldn't encode wav: %w", err)
	}
	return w.buf, nil
}

// monoStreamer streams a slice of mono samples to both channels.
type monoStreamer struct {
	samples []float64
	pos     int
}

func (s *monoStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.samples) {
		v := s.samples[s.pos]
		samples[n] = [2]float64{v, v}
		n++
		s.pos++
	}
	return n, true
}

func (s *monoStreamer) Err() error {
	return nil
}

// writeSeeker is an in-memory io.WriteSeeker, the wav encoder seeks back to
// fill in the header sizes.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	if end := w.pos + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(w.pos) + offset
	case io.SeekEnd:
		pos = int64(len(w.buf)) + offset
	default:
		return 0, fmt.Errorf("sound: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("sound: negative position %d", pos)
	}
	w.pos = int(pos)
	return pos, nil
}
