// Package time computes level statistics of time-domain signals.
package time

import "math"

// Stats holds level statistics of a signal.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Max            float64
	Min            float64
	Peak           float64 // max(|max|, |min|)
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes the statistics of signal in a single pass.
func Calculate(signal []float64) Stats {
	var s StreamingStats
	s.Update(signal)
	return s.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}

	return peak
}

// LevelChangeDB returns the RMS level of wet relative to dry in dB.
func LevelChangeDB(dry, wet Stats) float64 {
	return wet.RMS_dB - dry.RMS_dB
}

// StreamingStats accumulates statistics across blocks of samples without
// allocating. Results match Calculate over the concatenated blocks.
type StreamingStats struct {
	n      int
	sum    float64
	sumSq  float64
	maxVal float64
	minVal float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		if s.n == 0 {
			s.maxVal = x
			s.minVal = x
		} else {
			s.maxVal = math.Max(s.maxVal, x)
			s.minVal = math.Min(s.minVal, x)
		}
		s.n++
		s.sum += x
		s.sumSq += x * x
	}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	peak := math.Max(math.Abs(s.maxVal), math.Abs(s.minVal))

	var crest, crestdB float64
	if rms > 0 {
		crest = peak / rms
		crestdB = 20 * math.Log10(crest)
	}

	return Stats{
		Length:         s.n,
		DC:             s.sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Max:            s.maxVal,
		Min:            s.minVal,
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
	}
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
