package param

import (
	"math"
	"strconv"
	"sync/atomic"

	"github.com/cwbudde/lfocool/dsp/core"
	"github.com/cwbudde/lfocool/dsp/smooth"
)

// FloatOption configures a FloatParam.
type FloatOption func(*FloatParam)

// WithUnit sets the unit label appended to display strings, including any
// leading space (for example " dB").
func WithUnit(unit string) FloatOption {
	return func(p *FloatParam) {
		p.unit = unit
	}
}

// WithSmoother attaches a smoother of the given style and time constant.
func WithSmoother(style smooth.Style, timeMs float64) FloatOption {
	return func(p *FloatParam) {
		p.smoother = smooth.New(style, timeMs)
	}
}

// WithValueToString sets the plain value formatter.
func WithValueToString(format func(float64) string) FloatOption {
	return func(p *FloatParam) {
		p.valueToString = format
	}
}

// WithStringToValue sets the plain value parser.
func WithStringToValue(parse func(string) (float64, error)) FloatOption {
	return func(p *FloatParam) {
		p.stringToValue = parse
	}
}

// FloatParam is a continuous parameter.
//
// Setters and value reads are safe from any goroutine. The smoother returned
// by Smoothed must only be advanced by the audio goroutine.
type FloatParam struct {
	id           string
	name         string
	unit         string
	rng          Range
	defaultPlain float64

	plain      atomic.Uint64
	modulation atomic.Uint64

	smoother      *smooth.Smoother
	valueToString func(float64) string
	stringToValue func(string) (float64, error)
}

// NewFloat declares a parameter. The default value is clamped into rng.
// Without WithSmoother the parameter gets a smoother of style None.
func NewFloat(id, name string, defaultValue float64, rng Range, opts ...FloatOption) *FloatParam {
	p := &FloatParam{
		id:           id,
		name:         name,
		rng:          rng,
		defaultPlain: rng.Clamp(defaultValue),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.smoother == nil {
		p.smoother = smooth.New(smooth.None, 0)
	}

	p.plain.Store(math.Float64bits(p.defaultPlain))
	p.smoother.Reset(p.defaultPlain)
	return p
}

// ID returns the stable identifier hosts use for automation and persistence.
func (p *FloatParam) ID() string { return p.id }

// Name returns the human-readable name.
func (p *FloatParam) Name() string { return p.name }

// Unit returns the unit label.
func (p *FloatParam) Unit() string { return p.unit }

// Range returns the plain-value range.
func (p *FloatParam) Range() Range { return p.rng }

// DefaultPlainValue returns the declared default.
func (p *FloatParam) DefaultPlainValue() float64 { return p.defaultPlain }

// DefaultNormalizedValue returns the declared default in [0, 1].
func (p *FloatParam) DefaultNormalizedValue() float64 { return p.rng.Normalize(p.defaultPlain) }

// PlainValue returns the unmodulated plain value.
func (p *FloatParam) PlainValue() float64 {
	return math.Float64frombits(p.plain.Load())
}

// NormalizedValue returns the unmodulated value in [0, 1].
func (p *FloatParam) NormalizedValue() float64 {
	return p.rng.Normalize(p.PlainValue())
}

// SetPlainValue stores a plain value, clamped to the range, and retargets
// the smoother. NaN is ignored.
func (p *FloatParam) SetPlainValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.plain.Store(math.Float64bits(p.rng.Clamp(v)))
	p.smoother.SetTarget(p.ModulatedPlainValue())
}

// SetNormalizedValue stores a normalized value, clamped to [0, 1].
func (p *FloatParam) SetNormalizedValue(n float64) {
	if math.IsNaN(n) {
		return
	}
	p.SetPlainValue(p.rng.Unnormalize(n))
}

// ModulationOffset returns the normalized offset added on top of the value.
func (p *FloatParam) ModulationOffset() float64 {
	return math.Float64frombits(p.modulation.Load())
}

// SetModulationOffset sets a normalized offset applied on top of the stored
// value, as used by hosts with non-destructive parameter modulation.
func (p *FloatParam) SetModulationOffset(offset float64) {
	if math.IsNaN(offset) {
		return
	}
	p.modulation.Store(math.Float64bits(offset))
	p.smoother.SetTarget(p.ModulatedPlainValue())
}

// ModulatedNormalizedValue returns the normalized value including the
// modulation offset, clamped to [0, 1].
func (p *FloatParam) ModulatedNormalizedValue() float64 {
	offset := p.ModulationOffset()
	n := p.NormalizedValue()
	if offset == 0 {
		return n
	}
	return core.Clamp(n+offset, 0, 1)
}

// ModulatedPlainValue returns the plain value including the modulation offset.
func (p *FloatParam) ModulatedPlainValue() float64 {
	if p.ModulationOffset() == 0 {
		return p.PlainValue()
	}
	return p.rng.Unnormalize(p.ModulatedNormalizedValue())
}

// Smoothed returns the smoother following the modulated plain value.
func (p *FloatParam) Smoothed() *smooth.Smoother { return p.smoother }

// SetSampleRate forwards the processing rate to the smoother.
func (p *FloatParam) SetSampleRate(sampleRate float64) {
	p.smoother.SetSampleRate(sampleRate)
}

// ResetSmoother snaps the smoother to the current modulated plain value.
func (p *FloatParam) ResetSmoother() {
	p.smoother.Reset(p.ModulatedPlainValue())
}

// PlainValueToString formats a plain value, optionally with the unit.
func (p *FloatParam) PlainValueToString(plain float64, includeUnit bool) string {
	var s string
	if p.valueToString != nil {
		s = p.valueToString(plain)
	} else {
		s = strconv.FormatFloat(plain, 'f', 2, 64)
	}
	if includeUnit {
		s += p.unit
	}
	return s
}

// NormalizedValueToString formats a normalized value, optionally with the unit.
func (p *FloatParam) NormalizedValueToString(normalized float64, includeUnit bool) string {
	return p.PlainValueToString(p.rng.Unnormalize(normalized), includeUnit)
}

// StringToPlainValue parses a display string into a plain value clamped to the range.
func (p *FloatParam) StringToPlainValue(str string) (float64, error) {
	var (
		v   float64
		err error
	)
	if p.stringToValue != nil {
		v, err = p.stringToValue(str)
	} else {
		v, err = ParseNumber(str)
	}
	if err != nil {
		return 0, err
	}
	return p.rng.Clamp(v), nil
}

// StringToNormalizedValue parses a display string into a normalized value.
func (p *FloatParam) StringToNormalizedValue(str string) (float64, error) {
	v, err := p.StringToPlainValue(str)
	if err != nil {
		return 0, err
	}
	return p.rng.Normalize(v), nil
}

// String formats the current value with its unit.
func (p *FloatParam) String() string {
	return p.PlainValueToString(p.PlainValue(), true)
}
