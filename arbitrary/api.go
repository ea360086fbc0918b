// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// api.go - thin public entry-points for the arbitrary package.
//
// Design contract (strict):
//   - All public factories are declared here (single place to read docs).
//   - A nil *Config always means the shared package default.
//   - Determinism: same Config seed, same customization chain, same call
//     order ⇒ identical instances.
//   - Safety: sampling never panics; builder/option constructors panic only
//     on programmer error (malformed grammar, nil arguments, bad ranges).

package arbitrary

import (
	"github.com/katalvlaran/specimen/core"
)

// GiveMeBuilder returns a fresh Builder for T under cfg (nil selects the
// package default Config). The descriptor of T is resolved once, up front;
// introspection failures surface from the first Sample call.
// Complexity: O(shape of T) on the first builder per type, O(1) after.
func GiveMeBuilder[T any](cfg *Config) *Builder[T] {
	if cfg == nil {
		cfg = Default()
	}
	desc, err := cfg.introspector.Describe(core.TypeOf[T]())

	return &Builder[T]{cfg: cfg, desc: desc, descErr: err}
}

// GiveMeOne generates a single T with no customizations.
func GiveMeOne[T any](cfg *Config) (T, error) {
	return GiveMeBuilder[T](cfg).Sample()
}

// GiveMe generates n independent instances of T with no customizations.
func GiveMe[T any](cfg *Config, n int) ([]T, error) {
	return GiveMeBuilder[T](cfg).SampleList(n)
}
