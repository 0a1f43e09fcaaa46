package param

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/lfocool/dsp/core"
)

// ErrInvalidRange is returned by Range.Validate for unusable bounds or skew factors.
var ErrInvalidRange = errors.New("param: invalid range")

// RangeKind selects how a Range maps plain values to normalized values.
type RangeKind int

const (
	// RangeLinear maps plain values proportionally.
	RangeLinear RangeKind = iota
	// RangeSkewed raises the proportional position to a power.
	RangeSkewed
)

// Range describes the plain-value bounds of a parameter.
type Range struct {
	Kind   RangeKind
	Min    float64
	Max    float64
	Factor float64
}

// LinearRange returns a linear range over [min, max].
func LinearRange(min, max float64) Range {
	return Range{Kind: RangeLinear, Min: min, Max: max, Factor: 1}
}

// SkewedRange returns a range over [min, max] whose normalized value is
// ((v-min)/(max-min))^factor. Factors below 1 give more resolution to the
// upper part of the range.
func SkewedRange(min, max, factor float64) Range {
	return Range{Kind: RangeSkewed, Min: min, Max: max, Factor: factor}
}

// GainSkewFactor returns the skew factor that makes a gain range between
// minDB and maxDB look linear when displayed in decibels: the normalized
// midpoint lands on the arithmetic mean of the two dB levels.
func GainSkewFactor(minDB, maxDB float64) float64 {
	minGain := core.DBToGain(minDB)
	maxGain := core.DBToGain(maxDB)
	midGain := core.DBToGain((minDB + maxDB) / 2)
	return math.Log(0.5) / math.Log((midGain-minGain)/(maxGain-minGain))
}

// Validate checks that the range has finite, ordered bounds and a positive skew.
func (r Range) Validate() error {
	if !core.IsFinite(r.Min) || !core.IsFinite(r.Max) || r.Min >= r.Max {
		return fmt.Errorf("%w: bounds [%g, %g]", ErrInvalidRange, r.Min, r.Max)
	}
	if r.Kind == RangeSkewed && (r.Factor <= 0 || !core.IsFinite(r.Factor)) {
		return fmt.Errorf("%w: skew factor %g", ErrInvalidRange, r.Factor)
	}
	return nil
}

// Clamp limits a plain value to the range bounds.
func (r Range) Clamp(plain float64) float64 {
	return core.Clamp(plain, r.Min, r.Max)
}

// Normalize converts a plain value to [0, 1], clamping out-of-range input.
func (r Range) Normalize(plain float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	n := (r.Clamp(plain) - r.Min) / (r.Max - r.Min)
	if r.Kind == RangeSkewed {
		n = math.Pow(n, r.Factor)
	}
	return n
}

// Unnormalize converts a normalized value in [0, 1] to a plain value.
func (r Range) Unnormalize(normalized float64) float64 {
	n := core.Clamp(normalized, 0, 1)
	if r.Kind == RangeSkewed {
		n = math.Pow(n, 1/r.Factor)
	}
	return r.Min + n*(r.Max-r.Min)
}
