// Package random provides the single-method draw capability consumed by
// secret-code generation.
//
// The package ships three implementations: a crypto/rand backed source for
// production code generation, a math/rand backed source for simulations, and
// a scripted source that replays a fixed sequence for deterministic tests.
package random

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
	"sync"
)

// Source draws uniformly distributed integers in [0, bound).
//
// Implementations must treat bound <= 0 as a programming error and panic,
// matching the contract of the standard library generators.
type Source interface {
	IntN(bound int) int
}

// Crypto is a Source backed by crypto/rand. The zero value is ready to use.
type Crypto struct{}

// NewCrypto returns a crypto/rand backed Source.
func NewCrypto() *Crypto {
	return &Crypto{}
}

// IntN draws a uniform integer in [0, bound) from the system CSPRNG.
func (*Crypto) IntN(bound int) int {
	if bound <= 0 {
		panic("random: IntN bound must be > 0")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(bound)))
	if err != nil {
		// crypto/rand.Reader never fails on supported platforms.
		panic("random: crypto source unavailable: " + err.Error())
	}
	return int(n.Int64())
}

// Seeded is a deterministic math/rand Source for simulations and load
// generation. Not suitable for real code generation.
type Seeded struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewSeeded returns a Source producing the same draw sequence for the same
// seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rng: mathrand.New(mathrand.NewSource(seed)),
	}
}

// IntN draws the next integer in [0, bound) from the seeded stream.
func (s *Seeded) IntN(bound int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(bound)
}

// Scripted replays a fixed sequence of values and records how often it was
// consulted, so tests can assert both the draws and the draw count. The
// sequence wraps around when exhausted.
type Scripted struct {
	mu    sync.Mutex
	vals  []int
	next  int
	calls int
}

// NewScripted returns a Source that yields vals in order, cycling back to
// the start once all values have been consumed.
func NewScripted(vals ...int) *Scripted {
	if len(vals) == 0 {
		panic("random: scripted source needs at least one value")
	}
	return &Scripted{vals: vals}
}

// IntN returns the next scripted value reduced into [0, bound).
func (s *Scripted) IntN(bound int) int {
	if bound <= 0 {
		panic("random: IntN bound must be > 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.vals[s.next]
	s.next = (s.next + 1) % len(s.vals)
	s.calls++

	if v < 0 {
		v = -v
	}
	return v % bound
}

// Calls reports how many draws have been taken from the script.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
