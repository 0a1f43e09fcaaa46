// Package lfo implements the phase-accumulating sine oscillator and the
// amplitude multiplier of an LFO gain modulator.
//
// The oscillator output is a sine rescaled into [0, 1] so the modulation
// never inverts polarity. Multiplier blends between no modulation
// (gain 0, multiplier 1) and full modulation (gain 1, multiplier equal to
// the oscillator output).
package lfo
