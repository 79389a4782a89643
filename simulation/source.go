package simulation

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// UniformSource yields uniform samples in [0, 1). *rand.Rand satisfies it.
type UniformSource interface {
	Float64() float64
}

// NewSeededSource returns a reproducible source for the given seed.
func NewSeededSource(seed int64) UniformSource {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
