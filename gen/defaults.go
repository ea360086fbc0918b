// SPDX-License-Identifier: MIT
// Package: specimen/gen
//
// defaults.go — kind-level default generation bounds and the primitive
// value generators that honor them.
//
// Deterministic defaults (no surprises):
//   - integers     ∈ [-10000, 10000], clamped to the member's bit width
//   - unsigned     ∈ [0, 10000]
//   - floats       ∈ [-10000, 10000)
//   - strings      5..10 runes over lowercase ASCII letters
//   - collections  0..3 elements
//   - null chance  0.2 for nullable members (unless defaultNotNull)
//
// All bounds are named constants; tests pin them.

package gen

import (
	"fmt"
	"math"
	"reflect"
)

// Named default bounds.
const (
	DefaultIntMin     = -10000
	DefaultIntMax     = 10000
	DefaultUintMax    = 10000
	DefaultFloatMin   = -10000.0
	DefaultFloatMax   = 10000.0
	DefaultStringMin  = 5
	DefaultStringMax  = 10
	DefaultCharset    = "abcdefghijklmnopqrstuvwxyz"
	DefaultSizeMin    = 0
	DefaultSizeMax    = 3
	DefaultNullChance = 0.2
)

// Defaults carries the kind-level generation bounds of one configuration.
// A Defaults value is immutable once the owning Registry is constructed.
type Defaults struct {
	IntMin, IntMax     int64
	UintMax            uint64
	FloatMin, FloatMax float64
	StringMin          int
	StringMax          int
	Charset            string
	Words              bool // word-based strings from the faker instead of charset runes
	SizeMin, SizeMax   int
	NullChance         float64
}

// NewDefaults returns the documented default bounds.
func NewDefaults() Defaults {
	return Defaults{
		IntMin:     DefaultIntMin,
		IntMax:     DefaultIntMax,
		UintMax:    DefaultUintMax,
		FloatMin:   DefaultFloatMin,
		FloatMax:   DefaultFloatMax,
		StringMin:  DefaultStringMin,
		StringMax:  DefaultStringMax,
		Charset:    DefaultCharset,
		SizeMin:    DefaultSizeMin,
		SizeMax:    DefaultSizeMax,
		NullChance: DefaultNullChance,
	}
}

// Validate rejects empty or inverted ranges with ErrConstraintConflict.
// Complexity: O(1).
func (d Defaults) Validate() error {
	switch {
	case d.IntMin > d.IntMax:
		return fmt.Errorf("gen: integer range [%d,%d] inverted: %w", d.IntMin, d.IntMax, ErrConstraintConflict)
	case d.FloatMin > d.FloatMax:
		return fmt.Errorf("gen: float range [%g,%g] inverted: %w", d.FloatMin, d.FloatMax, ErrConstraintConflict)
	case d.StringMin < 0 || d.StringMin > d.StringMax:
		return fmt.Errorf("gen: string length range [%d,%d] invalid: %w", d.StringMin, d.StringMax, ErrConstraintConflict)
	case len(d.Charset) == 0 && !d.Words:
		return fmt.Errorf("gen: empty charset: %w", ErrConstraintConflict)
	case d.SizeMin < 0 || d.SizeMin > d.SizeMax:
		return fmt.Errorf("gen: size range [%d,%d] invalid: %w", d.SizeMin, d.SizeMax, ErrConstraintConflict)
	case d.NullChance < 0 || d.NullChance > 1:
		return fmt.Errorf("gen: null chance %g outside [0,1]: %w", d.NullChance, ErrConstraintConflict)
	default:
		return nil
	}
}

// SampleSize draws a collection/map size from the default range.
// Complexity: O(1).
func (d Defaults) SampleSize(s *Source) int {
	return SampleRange(s, d.SizeMin, d.SizeMax)
}

// SampleRange draws uniformly from the inclusive range [lo, hi].
func SampleRange(s *Source, lo, hi int) int {
	if lo >= hi {
		return lo
	}

	return lo + s.Rand().IntN(hi-lo+1)
}

// Primitive generates a default value for a primitive-kind type, honoring
// the configured bounds and clamping integer ranges to the member's bit
// width. Named types are produced in their named form.
//
// Complexity: O(1) for numbers, O(length) for strings.
func (d Defaults) Primitive(t reflect.Type, s *Source) (reflect.Value, error) {
	v := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Bool:
		v.SetBool(s.Rand().IntN(2) == 1)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(d.drawInt(t, s))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(d.drawUint(t, s))
	case reflect.Float32, reflect.Float64:
		v.SetFloat(d.drawFloat(s))
	case reflect.Complex64, reflect.Complex128:
		v.SetComplex(complex(d.drawFloat(s), d.drawFloat(s)))
	case reflect.String:
		v.SetString(d.drawString(s))
	default:
		return reflect.Value{}, fmt.Errorf("gen: no default generator for kind %s: %w", t.Kind(), ErrConstraintConflict)
	}

	return v, nil
}

func (d Defaults) drawInt(t reflect.Type, s *Source) int64 {
	lo, hi := d.IntMin, d.IntMax
	// Clamp to the member's representable range.
	switch t.Kind() {
	case reflect.Int8:
		lo, hi = clampInt(lo, hi, math.MinInt8, math.MaxInt8)
	case reflect.Int16:
		lo, hi = clampInt(lo, hi, math.MinInt16, math.MaxInt16)
	case reflect.Int32:
		lo, hi = clampInt(lo, hi, math.MinInt32, math.MaxInt32)
	}
	if lo >= hi {
		return lo
	}

	return lo + s.Rand().Int64N(hi-lo+1)
}

func (d Defaults) drawUint(t reflect.Type, s *Source) uint64 {
	hi := d.UintMax
	switch t.Kind() {
	case reflect.Uint8:
		hi = min(hi, math.MaxUint8)
	case reflect.Uint16:
		hi = min(hi, math.MaxUint16)
	}
	if hi == 0 {
		return 0
	}

	return s.Rand().Uint64N(hi + 1)
}

func (d Defaults) drawFloat(s *Source) float64 {
	return d.FloatMin + s.Rand().Float64()*(d.FloatMax-d.FloatMin)
}

func (d Defaults) drawString(s *Source) string {
	if d.Words {
		return s.Faker().Word()
	}
	n := SampleRange(s, d.StringMin, d.StringMax)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = d.Charset[s.Rand().IntN(len(d.Charset))]
	}

	return string(buf)
}

func clampInt(lo, hi, typeMin, typeMax int64) (int64, int64) {
	return max(lo, typeMin), min(hi, typeMax)
}
