package signal

import (
	"fmt"
	"math"
)

// Tone is a streaming sine oscillator for callback-driven playback.
// Unlike Generator.Sine it keeps its phase between calls.
type Tone struct {
	phase     float64
	step      float64
	amplitude float64
}

// NewTone returns a sine oscillator at freqHz.
func NewTone(freqHz, sampleRate, amplitude float64) (*Tone, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("tone sample rate must be > 0: %f", sampleRate)
	}
	if freqHz < 0 || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("tone frequency must be in [0, %f): %f", sampleRate/2, freqHz)
	}
	return &Tone{
		step:      2 * math.Pi * freqHz / sampleRate,
		amplitude: amplitude,
	}, nil
}

// Next returns the next sample.
func (t *Tone) Next() float64 {
	v := t.amplitude * math.Sin(t.phase)
	t.phase += t.step
	if t.phase >= 2*math.Pi {
		t.phase -= 2 * math.Pi
	}
	return v
}

// Fill writes successive samples to dst.
func (t *Tone) Fill(dst []float64) {
	for i := range dst {
		dst[i] = t.Next()
	}
}
