// SPDX-License-Identifier: MIT
// Package: specimen/gen
//
// source.go — Source: the private randomness of one generation context.
//
// Contract (strict):
//   - One Source per sample() call; never shared across concurrent samples
//     (sharing would corrupt reproducibility and retry accounting).
//   - Same seed ⇒ identical draw stream ⇒ identical fixtures.
//   - All randomness flows through one math/rand/v2 PCG shared by the faker
//     and the rand wrapper; no package-level RNG state exists in the module.

package gen

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
)

// sourceStream is the fixed second PCG word; the caller-visible seed is the
// first. Splitting them keeps seeds small and human-readable.
const sourceStream = 0x9E3779B97F4A7C15

// Generator produces one value of a fixed type from a Source. Implementations
// must draw randomness only from the supplied Source to stay reproducible.
type Generator func(s *Source) (any, error)

// Source carries the deterministic randomness owned by a single generation
// context: a seeded gofakeit faker and a *rand.Rand wrapping the same PCG,
// so faker draws and structural draws consume one interleaved stream.
type Source struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// NewSource returns a Source seeded with the given value.
// Complexity: O(1).
func NewSource(seed uint64) *Source {
	pcg := rand.NewPCG(seed, sourceStream)

	return &Source{faker: gofakeit.NewFaker(pcg, false), rng: rand.New(pcg)}
}

// Faker exposes the seeded gofakeit instance for realistic domain values
// (words, names, dates, ...).
func (s *Source) Faker() *gofakeit.Faker { return s.faker }

// Rand exposes the rand stream for structural draws (sizes, indices, null
// coin flips). It advances the same underlying PCG the faker consumes.
func (s *Source) Rand() *rand.Rand { return s.rng }

// Read fills p from the rand stream, making Source an io.Reader for
// consumers such as uuid.NewRandomFromReader. It never fails.
func (s *Source) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], s.rng.Uint64())
		copy(p[i:], buf[:])
	}

	return len(p), nil
}
