package music

import "math"

// Note is a MIDI note number (60 is middle C).
type Note int

// Frequency returns the equal-tempered frequency of the note with A4 = 440Hz.
func (n Note) Frequency() float64 {
	return 440.0 * math.Pow(2, float64(n-69)/12.0)
}

// Transpose shifts the note by the given number of semitones.
func (n Note) Transpose(semitones int) Note {
	return n + Note(semitones)
}

// majorSteps is the whole/whole/half/whole/whole/whole/half pattern.
var majorSteps = []int{2, 2, 1, 2, 2, 2, 1}

// Scale is a seven note diatonic scale.
type Scale []Note

// MajorScale returns the major scale rooted at the given note.
func MajorScale(root Note) Scale {
	scale := make(Scale, len(majorSteps))
	n := root
	for i, step := range majorSteps {
		scale[i] = n
		n += Note(step)
	}
	return scale
}

// Degree returns the note of a 0-based scale degree. Degrees beyond the
// seventh continue into the next octaves.
func (s Scale) Degree(d int) Note {
	octave := d / len(s)
	return s[d%len(s)] + Note(12*octave)
}

// Triad returns the root, third and fifth built on a 0-based scale degree.
func (s Scale) Triad(d int) Chord {
	return Chord{s.Degree(d), s.Degree(d + 2), s.Degree(d + 4)}
}

// Chord is a triad: root, third and fifth.
type Chord [3]Note

func (c Chord) Root() Note {
	return c[0]
}

// Progression is a sequence of 0-based scale degrees.
type Progression []int

// Progressions available to the synthesizer.
var Progressions = []Progression{
	{0, 3, 4, 3}, // I-IV-V-IV
	{0, 4, 5, 3}, // I-V-vi-IV
	{0, 5, 3, 4}, // I-vi-IV-V
	{1, 4, 0, 0}, // ii-V-I-I
}

// Chords instantiates the progression against a scale.
func (p Progression) Chords(s Scale) []Chord {
	chords := make([]Chord, len(p))
	for i, d := range p {
		chords[i] = s.Triad(d)
	}
	return chords
}
