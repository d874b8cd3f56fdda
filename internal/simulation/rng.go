package simulation

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand/v2"
)

// Source is the uniform random stream a simulation draws from. Injecting it
// keeps the engine free of ambient global random state.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// cryptoSource reads entropy from crypto/rand. This is the default for
// unseeded runs.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// Entropy read failures are effectively impossible on supported
		// platforms; fall back to the runtime generator rather than aborting
		// a long run mid-batch.
		return mathrand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits of mantissa
	return float64(u) / (1 << 53)
}

// NewCryptoSource returns the non-deterministic default source.
func NewCryptoSource() Source { return cryptoSource{} }

// seededSource is the sine-fraction generator: each step takes the
// fractional part of sin(state)*10000. Statistically weak, but identical
// (config, seed) pairs must reproduce results bit for bit, so the exact
// recurrence is part of the engine's contract.
type seededSource struct {
	state float64
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed int64) Source {
	return &seededSource{state: float64(seed)}
}

func (s *seededSource) Float64() float64 {
	s.state++
	x := math.Sin(s.state) * 10000
	return x - math.Floor(x)
}
