// Package arbitrary is the public face of specimen: configuration, the
// fluent Builder, and the sampling engine that turns a TypeDescriptor tree
// into fully constructed instances.
//
// Flow: GiveMeBuilder[T] resolves T's descriptor once → the caller chains
// Set / SetGenerator / SetNull / Size / SetPostCondition customizations,
// each returning a NEW builder value → Sample walks the descriptor tree
// depth-first with a private generation context, applies the winning
// customization per position, retries on postcondition failure, and returns
// the constructed instance.
//
// Customization precedence:
//   - later registrations override earlier ones on an identical path,
//   - an exact index or key beats a wildcard addressing the same element,
//   - wildcard paths apply to every realized element, resolved after size.
//
// Concurrency: Config and Builder values are immutable after construction;
// share one builder across any number of goroutines. Every Sample call owns
// an exclusive generation context (randomness, recursion stack, retry
// counter).
//
// Error contract (branch with errors.Is):
//
//	ErrInvalidPath        - path names a missing member, indexes a
//	                        non-indexable node, nulls a non-nullable member,
//	                        or matches no realized element in a sample.
//	ErrUnsupportedType    - T (or a member) cannot be described.
//	ErrRecursionLimit     - self-referential shape exceeded the depth limit
//	                        with no nullable escape.
//	ErrUnsatisfiable      - postcondition retry budget exhausted.
//	ErrConstraintConflict - inverted ranges, type-mismatched Set values or
//	                        registered generators.
//
// Malformed path grammar and meaningless option values are programmer
// errors: builder methods and option constructors validate eagerly and
// panic, so they surface at registration time, not mid-sample.
package arbitrary
