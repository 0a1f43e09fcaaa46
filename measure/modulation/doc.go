// Package modulation estimates the rate and depth of an amplitude
// modulation from a dry signal and its processed counterpart.
//
// The gain envelope wet/dry is recovered sample by sample, its mean is
// removed and the dominant frequency is located in a windowed FFT
// with parabolic peak interpolation. Depth is reported as 1 - min/max of
// the envelope, which equals the modulation gain of a processor that
// multiplies by 1 - gain + gain*s for s in [0, 1].
package modulation
