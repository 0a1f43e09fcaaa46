// Package signal generates deterministic test signals for offline renders
// and live playback.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/lfocool/dsp/core"
)

// ErrUnknownSource is returned by ParseSource for unrecognised names.
var ErrUnknownSource = errors.New("signal: unknown source")

// Source selects the waveform Generate produces.
type Source int

const (
	SourceSine Source = iota
	SourceNoise
	SourceDC
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceSine:
		return "sine"
	case SourceNoise:
		return "noise"
	case SourceDC:
		return "dc"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// ParseSource returns the source with the given name, case-insensitively.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine":
		return SourceSine, nil
	case "noise":
		return SourceNoise, nil
	case "dc":
		return SourceDC, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// Generate produces samples of the given source. freqHz is ignored by
// noise and DC.
func (g *Generator) Generate(src Source, freqHz, amplitude float64, samples int) ([]float64, error) {
	switch src {
	case SourceSine:
		return g.Sine(freqHz, amplitude, samples)
	case SourceNoise:
		return g.WhiteNoise(amplitude, samples)
	case SourceDC:
		return g.DC(amplitude, samples)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSource, src)
	}
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if freqHz < 0 || freqHz >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %f): %f", g.cfg.SampleRate/2, freqHz)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// DC generates a constant signal.
func (g *Generator) DC(level float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("dc samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	core.Fill(out, level)
	return out, nil
}
