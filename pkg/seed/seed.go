package seed

import (
	"math"
	"math/rand"
)

const (
	// Multiplier is the classic LCG multiplier used to mix a seed with a
	// stream modifier.
	Multiplier = 1103515245

	// Stream modifiers
	LikesModifier  = 999999
	ReviewModifier = 777777
)

// Combine mixes a seed with a modifier: (seed*Multiplier + modifier) mod 2^63.
func Combine(seed, modifier int64) int64 {
	return (seed*Multiplier + modifier) & math.MaxInt64
}

// Mask reduces a value to a non-negative 31-bit seed.
func Mask(v int64) int64 {
	return v & 0x7FFFFFFF
}

// Song returns the unmasked song-level seed for a catalog index.
func Song(base int64, index int) int64 {
	return Combine(base, int64(index))
}

// Stream returns the masked seed of an independent stream derived from a
// song-level seed.
func Stream(song, modifier int64) int64 {
	return Mask(Combine(song, modifier))
}

// Media returns the seed shared by cover and audio generation.
// It is derived by plain addition and is not interchangeable with Song.
func Media(base int64, index int) int64 {
	return Mask(base + int64(index))
}

// New returns a PRNG initialized with the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
