package modulation

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/lfocool/dsp/window"
)

const (
	defaultThreshold = 1e-6

	// Envelopes whose peak-to-peak swing is below this are treated as constant.
	flatEnvelope = 1e-12
)

var (
	// ErrLengthMismatch is returned when dry and wet differ in length.
	ErrLengthMismatch = errors.New("modulation: dry and wet lengths differ")

	// ErrEmptyInput is returned for zero-length input.
	ErrEmptyInput = errors.New("modulation: empty input")

	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("modulation: sample rate must be > 0 and finite")

	// ErrNoSignal is returned when no dry sample exceeds the threshold.
	ErrNoSignal = errors.New("modulation: dry signal below threshold")
)

// Config holds analysis parameters.
type Config struct {
	SampleRate float64

	// Threshold is the smallest |dry| used for envelope recovery. Samples
	// below it hold the previous envelope value. Defaults to 1e-6.
	Threshold float64

	// FFTSize defaults to the smallest power of two not below the input
	// length; the windowed envelope is zero-padded to it. Longer inputs are
	// truncated to FFTSize samples.
	FFTSize int

	// MinRateHz excludes envelope frequencies below it from the peak search.
	MinRateHz float64

	// WindowType shapes the envelope before the FFT. The zero value selects
	// Hann; use WithWindow to request a rectangular window.
	WindowType window.Type
}

// Result holds the modulation estimate.
type Result struct {
	// RateHz is the dominant envelope frequency, or 0 for a flat envelope.
	RateHz float64

	// Envelope statistics.
	Min  float64
	Max  float64
	Mean float64

	// Depth is 1 - Min/Max.
	Depth float64
}

// FrequencyParam returns the LFO frequency parameter value that produces
// RateHz. The frequency control advances the phase by half a cycle per unit,
// so the parameter is twice the envelope rate.
func (r Result) FrequencyParam() float64 {
	return 2 * r.RateHz
}

// DepthDB returns Depth in decibels, or -Inf for zero depth.
func (r Result) DepthDB() float64 {
	if r.Depth <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(r.Depth)
}

// Analyzer estimates modulation parameters with a fixed configuration.
type Analyzer struct {
	cfg Config
}

// Option adjusts an analyzer after its Config defaults are applied.
type Option func(*Analyzer)

// WithWindow selects the analysis window, overriding Config.WindowType.
// Unlike the Config field it honours window.TypeRectangular.
func WithWindow(t window.Type) Option {
	return func(a *Analyzer) {
		a.cfg.WindowType = t
	}
}

// NewAnalyzer creates an analyzer. The sample rate is validated by Analyze.
func NewAnalyzer(cfg Config, opts ...Option) *Analyzer {
	a := &Analyzer{cfg: normalizeConfig(cfg)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Analyze is a one-shot analysis of dry and wet.
func Analyze(dry, wet []float64, cfg Config, opts ...Option) (Result, error) {
	return NewAnalyzer(cfg, opts...).Analyze(dry, wet)
}

// Analyze estimates the modulation applied to dry to produce wet.
func (a *Analyzer) Analyze(dry, wet []float64) (Result, error) {
	cfg := a.cfg
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return Result{}, fmt.Errorf("%w: %f", ErrInvalidSampleRate, cfg.SampleRate)
	}

	env, err := Envelope(dry, wet, cfg.Threshold)
	if err != nil {
		return Result{}, err
	}

	res := envelopeStats(env)
	if res.Max-res.Min <= flatEnvelope {
		return res, nil
	}

	rate, err := dominantRate(env, res.Mean, cfg)
	if err != nil {
		return Result{}, err
	}
	res.RateHz = rate

	return res, nil
}

// Envelope returns wet[i]/dry[i] for every sample where |dry[i]| exceeds
// threshold. Other samples hold the previous value; leading ones take the
// first valid value.
func Envelope(dry, wet []float64, threshold float64) ([]float64, error) {
	if len(dry) != len(wet) {
		return nil, fmt.Errorf("%w: dry %d, wet %d", ErrLengthMismatch, len(dry), len(wet))
	}
	if len(dry) == 0 {
		return nil, ErrEmptyInput
	}
	if threshold <= 0 {
		threshold = defaultThreshold
	}

	env := make([]float64, len(dry))
	first := -1
	last := 0.0
	for i, d := range dry {
		if math.Abs(d) > threshold {
			last = wet[i] / d
			if first < 0 {
				first = i
			}
		}
		env[i] = last
	}
	if first < 0 {
		return nil, ErrNoSignal
	}
	for i := 0; i < first; i++ {
		env[i] = env[first]
	}

	return env, nil
}

func envelopeStats(env []float64) Result {
	res := Result{Min: env[0], Max: env[0]}
	sum := 0.0
	for _, v := range env {
		res.Min = min(res.Min, v)
		res.Max = max(res.Max, v)
		sum += v
	}
	res.Mean = sum / float64(len(env))
	if res.Max > 0 {
		res.Depth = 1 - res.Min/res.Max
	}
	return res
}

func dominantRate(env []float64, mean float64, cfg Config) (float64, error) {
	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(env))
	}
	n := min(len(env), fftSize)

	coeffs := window.Generate(cfg.WindowType, n, window.WithPeriodic())
	in := make([]complex128, fftSize)
	for i, w := range coeffs {
		in[i] = complex((env[i]-mean)*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("modulation: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("modulation: fft: %w", err)
	}

	binHz := cfg.SampleRate / float64(fftSize)
	maxBin := fftSize / 2
	lowerBin := clampInt(int(math.Ceil(cfg.MinRateHz/binHz)), 1, maxBin)

	mag := func(k int) float64 {
		x := out[k]
		return math.Hypot(real(x), imag(x))
	}

	best := lowerBin
	bestMag := -1.0
	for k := lowerBin; k <= maxBin; k++ {
		if m := mag(k); m > bestMag {
			best, bestMag = k, m
		}
	}

	return (float64(best) + peakOffset(mag, best, maxBin)) * binHz, nil
}

// peakOffset refines a spectral peak with a parabola through the
// neighbouring bins, returning a fractional bin offset in [-0.5, 0.5].
func peakOffset(mag func(int) float64, k, maxBin int) float64 {
	if k <= 0 || k >= maxBin {
		return 0
	}
	a, b, c := mag(k-1), mag(k), mag(k+1)
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return math.Max(-0.5, math.Min(0.5, 0.5*(a-c)/den))
}

func normalizeConfig(cfg Config) Config {
	if cfg.Threshold <= 0 {
		cfg.Threshold = defaultThreshold
	}
	if cfg.FFTSize < 0 {
		cfg.FFTSize = 0
	}
	if cfg.MinRateHz < 0 {
		cfg.MinRateHz = 0
	}
	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}
	return cfg
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
