package lfo

import "math"

// TwoPi is one full oscillator cycle in radians.
const TwoPi = 2 * math.Pi

// PhaseIncrement returns the per-sample phase advance for a frequency value.
//
// The frequency control advances the phase by half a cycle per unit per
// second (frequency * π / sampleRate). Callers must pass a positive, finite
// sample rate.
func PhaseIncrement(frequency, sampleRate float64) float64 {
	return frequency * math.Pi / sampleRate
}

// Multiplier returns the gain applied to a sample for modulation depth gain
// and oscillator output sinSample in [0, 1].
func Multiplier(gain, sinSample float64) float64 {
	return 1 - gain + gain*sinSample
}

// Oscillator is a sine phase accumulator with phase kept in [0, 2π).
type Oscillator struct {
	phase     float64
	increment float64
}

// Phase returns the current phase in radians.
func (o *Oscillator) Phase() float64 { return o.phase }

// SetPhase sets the phase, wrapping it into [0, 2π).
func (o *Oscillator) SetPhase(phase float64) {
	phase = math.Mod(phase, TwoPi)
	if phase < 0 {
		phase += TwoPi
	}
	if phase >= TwoPi {
		phase = 0
	}
	o.phase = phase
}

// Increment returns the per-sample phase advance in radians.
func (o *Oscillator) Increment() float64 { return o.increment }

// SetIncrement sets the per-sample phase advance. Increments must be in
// [0, 2π) for the single-step wrap to keep the phase in range.
func (o *Oscillator) SetIncrement(increment float64) {
	o.increment = increment
}

// Reset returns the phase to zero. The increment is kept.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Next returns (1+sin(phase))/2 for the current phase, then advances it.
func (o *Oscillator) Next() float64 {
	s := 0.5 * (1 + math.Sin(o.phase))

	o.phase += o.increment
	if o.phase >= TwoPi {
		o.phase -= TwoPi
	}

	return s
}
