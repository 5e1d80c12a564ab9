package generator

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"sync"
	"time"
)

// Source returns uniformly distributed integers in [0, n).
type Source interface {
	Intn(n int) int
}

// SecureSource draws from crypto/rand.
type SecureSource struct{}

// NewSecureSource returns a Source backed by the operating system CSPRNG.
func NewSecureSource() *SecureSource {
	return &SecureSource{}
}

// Intn returns a cryptographically random int in [0, n).
func (s *SecureSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms.
		return 0
	}
	return int(v.Int64())
}

// MathSource draws from a seeded math/rand generator. Safe for concurrent use.
type MathSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMathSource returns a MathSource seeded with the current time.
func NewMathSource() *MathSource {
	return NewSeededSource(time.Now().UnixNano())
}

// NewSeededSource returns a MathSource with a fixed seed.
func NewSeededSource(seed int64) *MathSource {
	return &MathSource{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
func (s *MathSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
