package generator

import (
	"strings"

	"github.com/verte-zerg/easypass/internal/model"
)

// Generator produces passwords from settings.
type Generator struct {
	uniform     Source
	alternating Source
}

// New returns a Generator using crypto/rand for uniform mode and a
// time-seeded math/rand source for hand alternation.
func New() *Generator {
	return NewWithSources(NewSecureSource(), NewMathSource())
}

// NewWithSources returns a Generator with explicit random sources. The uniform
// source must be cryptographically strong.
func NewWithSources(uniform, alternating Source) *Generator {
	return &Generator{uniform: uniform, alternating: alternating}
}

// Generate returns a password of cfg.Length characters, or an empty string when
// the length is not positive or no characters are available.
func (g *Generator) Generate(cfg model.Settings) string {
	if cfg.Length <= 0 {
		return ""
	}
	pool := BuildPool(cfg)
	if len(pool) == 0 {
		return ""
	}
	if cfg.EasyTyping {
		return g.generateAlternating(BuildHandPools(cfg), cfg.Length)
	}
	return g.generateUniform(pool, cfg.Length)
}

func (g *Generator) generateUniform(pool Pool, length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteRune(pool[g.uniform.Intn(len(pool))])
	}
	return b.String()
}

func (g *Generator) generateAlternating(pools HandPools, length int) string {
	hand := Right
	if g.alternating.Intn(2) == 0 {
		hand = Left
	}
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		pool := pools.For(hand)
		b.WriteRune(pool[g.alternating.Intn(len(pool))])
		hand = hand.Other()
	}
	return b.String()
}
