// Package specimen is your in-memory factory for building randomized,
// reproducible test fixtures — from primitive values to deeply nested
// object graphs with per-path overrides.
//
// 🚀 What is specimen?
//
//	A modern, concurrency-safe library that brings together:
//		• Type introspection: one structural TypeDescriptor per Go type, cached
//		• Arbitrary generation: bounded numbers, charset/word strings, sized
//		  collections and maps, registered enums, time.Time & uuid.UUID out of the box
//		• Property paths: address any position in the generated graph with
//		  "orders[2].lines[*].quantity"-style expressions
//		• Builders: fluent, immutable accumulation of Set / SetNull / Size /
//		  SetPostCondition customizations before a single value is drawn
//		• Determinism: seed once, replay byte-identical fixtures forever
//
// ✨ Why choose specimen?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Rock-solid guarantees – immutable builders, per-sample randomness,
//     sentinel errors branched with errors.Is
//   - Concurrency-ready – share one builder across goroutines; every Sample
//     owns its private generation context
//   - Extensible – per-type generators, enum registration, interface
//     substitutes, pluggable introspection strategies
//
// Under the hood, everything is organized under four subpackages:
//
//	core/      — TypeDescriptor, Kind variants & the introspection strategy chain
//	pathexpr/  — the property-path grammar, parser and match precedence
//	gen/       — Source (seeded randomness), Generator & the three-tier Registry
//	arbitrary/ — Config, Builder[T], the sampling engine & GiveMe* entry points
//
// Quick example:
//
//	type Order struct {
//	    ID   int
//	    Tags []string
//	}
//
//	order, err := arbitrary.GiveMeBuilder[Order](nil).
//	    Size("Tags", 3).
//	    Set("Tags[0]", "important").
//	    Sample()
//
// yields an Order with three tags, the first pinned to "important" and the
// rest randomly generated.
//
// Dive into arbitrary/doc.go for the full customization and error contract.
//
//	go get github.com/katalvlaran/specimen
package specimen
