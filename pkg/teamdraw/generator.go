package teamdraw

import "unicode/utf16"

const (
	// mulberry32 increment; must stay odd
	streamIncrement uint32 = 0x6D2B79F5
	twoPow32               = 4294967296.0
)

// Generator is a mulberry32 stream seeded from a string.
// A Generator is owned by a single draw and is not safe for concurrent use.
type Generator struct {
	state uint32
	draws int
}

// NewGenerator creates a generator whose sequence depends only on seed.
func NewGenerator(seed string) *Generator {
	return &Generator{state: HashSeed(seed)}
}

// HashSeed folds the UTF-16 code units of seed into a 32-bit value (h*31 + c).
// It never returns 0.
func HashSeed(seed string) uint32 {
	var hash uint32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash*31 + uint32(unit)
	}
	if hash == 0 {
		return 1
	}
	return hash
}

// Next returns the next value of the stream in [0,1).
func (g *Generator) Next() float64 {
	g.draws++
	g.state += streamIncrement
	t := g.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / twoPow32
}

// Draws reports how many values have been taken from the stream.
func (g *Generator) Draws() int {
	return g.draws
}
