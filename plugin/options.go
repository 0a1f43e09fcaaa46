package plugin

import (
	"fmt"
	"math"

	"github.com/cwbudde/lfocool/dsp/core"
	"github.com/cwbudde/lfocool/dsp/smooth"
)

// Option mutates processor construction parameters.
type Option func(*config) error

type config struct {
	proc core.ProcessorConfig

	sampleAccurate   bool
	resetPhase       bool
	frequencyStyle   smooth.Style
	frequencyTimeMs  float64
	depthSmoothingMs float64
}

func defaultConfig() config {
	return config{
		proc:             core.DefaultProcessorConfig(),
		sampleAccurate:   true,
		frequencyStyle:   smooth.None,
		depthSmoothingMs: DepthSmoothingMs,
	}
}

// WithSampleRate sets the sample rate used until the host reports another.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		cfg.proc.SampleRate = sampleRate
		return nil
	}
}

// WithMaxBlockSize sets the scratch size. Larger blocks are processed in
// chunks of this size.
func WithMaxBlockSize(blockSize int) Option {
	return func(cfg *config) error {
		cfg.proc.MaxBlockSize = blockSize
		return nil
	}
}

// WithSampleAccurateAutomation selects whether automation events take effect
// at their sample offset (true) or at the start of the block (false).
func WithSampleAccurateAutomation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.sampleAccurate = enabled
		return nil
	}
}

// WithPhaseResetOnReset makes Reset return the oscillator phase to zero.
// By default the phase carries over host resets.
func WithPhaseResetOnReset(enabled bool) Option {
	return func(cfg *config) error {
		cfg.resetPhase = enabled
		return nil
	}
}

// WithFrequencySmoothing attaches a smoother to the frequency parameter.
// The frequency is still read once per block or automation segment.
func WithFrequencySmoothing(style smooth.Style, timeMs float64) Option {
	return func(cfg *config) error {
		if timeMs < 0 || math.IsNaN(timeMs) || math.IsInf(timeMs, 0) {
			return fmt.Errorf("lfocool: frequency smoothing must be >= 0 and finite: %f", timeMs)
		}
		if style < smooth.None || style > smooth.Logarithmic {
			return fmt.Errorf("lfocool: unknown smoothing style: %v", style)
		}
		cfg.frequencyStyle = style
		cfg.frequencyTimeMs = timeMs
		return nil
	}
}

// WithDepthSmoothingMs overrides the 50 ms logarithmic depth smoothing time.
func WithDepthSmoothingMs(timeMs float64) Option {
	return func(cfg *config) error {
		if timeMs < 0 || math.IsNaN(timeMs) || math.IsInf(timeMs, 0) {
			return fmt.Errorf("lfocool: depth smoothing must be >= 0 and finite: %f", timeMs)
		}
		cfg.depthSmoothingMs = timeMs
		return nil
	}
}
