package core

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// RandomSource is the single seam every random decision goes through.
// *rand.Rand satisfies it, so games replay exactly under a fixed seed.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
	Read(p []byte) (n int, err error)
}

// NewRandomSource returns a seeded source. A zero seed picks one from the clock.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewID draws a UUID from the random source so IDs are reproducible under a seed
func NewID(rng RandomSource) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Weighted pairs a choice with its relative weight
type Weighted[T any] struct {
	Value  T
	Weight int
}

// PickWeighted draws one value proportionally to its weight.
// Returns the zero value and false when no weight is positive.
func PickWeighted[T any](rng RandomSource, choices []Weighted[T]) (T, bool) {
	total := 0
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	var zero T
	if total == 0 {
		return zero, false
	}
	roll := rng.Intn(total)
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		if roll < c.Weight {
			return c.Value, true
		}
		roll -= c.Weight
	}
	return zero, false
}
