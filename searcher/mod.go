package searcher

import (
	"errors"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

var (
	// ErrNoMoveAvailable signals that the board has no empty cell left. It is
	// not a failure: callers should stop asking for moves.
	ErrNoMoveAvailable = errors.New("no move available")
	ErrInvalidTrials   = errors.New("trial count must not be negative")
)

// Picker picks one of n items uniformly at random, returning its index.
type Picker interface {
	Pick(n int) int
}

// Source hands out a Picker per stream. Each trial uses its index as stream and
// the final move selection uses the trial count, so seeded searches replay
// identically no matter how trials are scheduled across goroutines.
type Source func(stream uint64) Picker

type randPicker struct {
	rng *rand.Rand
}

func (p randPicker) Pick(n int) int {
	return p.rng.Intn(n)
}

// streamStep is the golden ratio increment that spreads neighbouring streams
// apart.
const streamStep = 0x9E3779B97F4A7C15

// Seeded returns a reproducible PCG source.
func Seeded(seed uint64) Source {
	return func(stream uint64) Picker {
		return randPicker{rng: rand.New(rand.NewSource(seed + stream*streamStep))}
	}
}

type cryptoPicker struct{}

func (cryptoPicker) Pick(n int) int {
	return frand.Intn(n)
}

// Crypto returns a source backed by frand. It is safe for concurrent use and
// is the default.
func Crypto() Source {
	return func(uint64) Picker {
		return cryptoPicker{}
	}
}

// Fixed hands the same picker to every stream. The picker must be safe for
// concurrent use when the search runs on more than one goroutine.
func Fixed(p Picker) Source {
	return func(uint64) Picker {
		return p
	}
}
