package plugin

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/lfocool/dsp/buffer"
	"github.com/cwbudde/lfocool/dsp/core"
	"github.com/cwbudde/lfocool/dsp/lfo"
	"github.com/cwbudde/lfocool/dsp/param"
)

// LfoCool applies LFO-driven amplitude modulation to every channel of a block.
type LfoCool struct {
	cfg    config
	params *Params

	sampleRate float64
	osc        lfo.Oscillator

	// per-sample multipliers for the current segment
	envelope []float64
}

var _ Plugin = (*LfoCool)(nil)

// New creates a processor with default parameters and optional overrides.
// All memory Process needs is allocated here or in Initialize.
func New(opts ...Option) (*LfoCool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	params, err := newParams(cfg)
	if err != nil {
		return nil, fmt.Errorf("lfocool: %w", err)
	}

	p := &LfoCool{
		cfg:    cfg,
		params: params,
	}
	if err := p.Initialize(cfg.proc.SampleRate, cfg.proc.MaxBlockSize); err != nil {
		return nil, err
	}
	return p, nil
}

// Info returns the plugin metadata.
func (p *LfoCool) Info() Info { return DefaultInfo() }

// Params returns the processor's parameters.
func (p *LfoCool) Params() *Params { return p.params }

// Registry returns the parameters in declaration order.
func (p *LfoCool) Registry() *param.Registry { return p.params.registry }

// SampleRate returns the rate of the most recent block.
func (p *LfoCool) SampleRate() float64 { return p.sampleRate }

// Phase returns the oscillator phase in radians.
func (p *LfoCool) Phase() float64 { return p.osc.Phase() }

// PhaseIncrement returns the per-sample phase advance used for the most
// recent segment.
func (p *LfoCool) PhaseIncrement() float64 { return p.osc.Increment() }

// Initialize prepares the processor for a sample rate and maximum block
// size, then resets it. Hosts call it outside the audio callback.
func (p *LfoCool) Initialize(sampleRate float64, maxBlockSize int) error {
	proc := core.ProcessorConfig{SampleRate: sampleRate, MaxBlockSize: maxBlockSize}
	if err := proc.Validate(); err != nil {
		return fmt.Errorf("lfocool: %w", err)
	}

	p.cfg.proc = proc
	p.sampleRate = sampleRate
	p.params.registry.SetSampleRate(sampleRate)
	p.envelope = core.EnsureLen(p.envelope, maxBlockSize)
	p.Reset()
	return nil
}

// Reset snaps the smoothers to the current parameter values. The oscillator
// phase is kept unless WithPhaseResetOnReset was given.
func (p *LfoCool) Reset() {
	p.params.registry.ResetSmoothers()
	if p.cfg.resetPhase {
		p.osc.Reset()
	}
}

// Process modulates block in place and applies the automation in ctx.
// A nil ctx processes with the last known sample rate and no automation.
func (p *LfoCool) Process(block buffer.Block, ctx *ProcessContext) Status {
	var changes []param.Change
	if ctx != nil {
		if ctx.SampleRate > 0 && ctx.SampleRate != p.sampleRate {
			p.sampleRate = ctx.SampleRate
			p.params.registry.SetSampleRate(ctx.SampleRate)
		}
		changes = ctx.Changes
	}

	reg := p.params.registry
	if !p.cfg.sampleAccurate {
		for _, c := range changes {
			reg.Apply(c)
		}
		changes = nil
	}

	n := block.Len()
	for pos := 0; pos < n; {
		for len(changes) > 0 && changes[0].Offset <= pos {
			reg.Apply(changes[0])
			changes = changes[1:]
		}

		end := n
		if len(changes) > 0 && changes[0].Offset < end {
			end = changes[0].Offset
		}
		p.processSegment(block, pos, end)
		pos = end
	}

	for _, c := range changes {
		reg.Apply(c)
	}

	return StatusNormal
}

// processSegment modulates samples [start, end) of every channel. The
// frequency is read once per segment.
func (p *LfoCool) processSegment(block buffer.Block, start, end int) {
	freq := p.params.Frequency.Smoothed().Next()
	p.osc.SetIncrement(lfo.PhaseIncrement(freq, p.sampleRate))

	depth := p.params.GainMod
	for start < end {
		env := p.envelope[:min(end-start, len(p.envelope))]
		for i := range env {
			// Zero depth skips the smoother entirely.
			gain := 0.0
			if depth.ModulatedNormalizedValue() != 0 {
				gain = depth.Smoothed().Next()
			}
			env[i] = lfo.Multiplier(gain, p.osc.Next())
		}

		for _, ch := range block.Channels() {
			vecmath.MulBlockInPlace(ch[start:start+len(env)], env)
		}
		start += len(env)
	}
}
