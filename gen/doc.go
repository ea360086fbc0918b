// Package gen supplies the value-generation layer: a per-sample Source of
// deterministic randomness, the Generator strategy type, kind-level default
// generation with named bounds, and a Registry of per-type overrides.
//
// Resolution precedence, highest first:
//
//  1. per-path customization on the active builder (package arbitrary),
//  2. per-type Generator registered on the Registry,
//  3. the kind default implemented here (bounded numbers, charset or word
//     strings, uniform enum selection, sized collections, recursive records).
//
// A Registry is populated during configuration and read-only afterwards, so
// concurrent sampling never synchronizes on it. A Source is owned by exactly
// one generation context and must never be shared across concurrent samples.
//
// Errors:
//
//	ErrConstraintConflict - inverted/empty range, or a registered per-type
//	                        generator producing values of the wrong type.
package gen
