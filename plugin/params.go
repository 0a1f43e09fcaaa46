package plugin

import (
	"github.com/cwbudde/lfocool/dsp/core"
	"github.com/cwbudde/lfocool/dsp/param"
	"github.com/cwbudde/lfocool/dsp/smooth"
)

// Parameter IDs. These are persisted by hosts and must not change.
const (
	FrequencyID = "frequency"
	GainModID   = "gain_mod"
)

const (
	// MaxFrequency is the upper bound of the frequency parameter.
	MaxFrequency = 100.0

	// MinGainModDB and MaxGainModDB bound the depth parameter in decibels.
	MinGainModDB = -60.0
	MaxGainModDB = 0.0

	// DepthSmoothingMs is the logarithmic smoothing time of the depth parameter.
	DepthSmoothingMs = 50.0
)

// Params holds the processor's parameters. Values may be written from any
// goroutine; smoothers are advanced only by Process.
type Params struct {
	Frequency *param.FloatParam
	GainMod   *param.FloatParam

	registry *param.Registry
}

func newParams(cfg config) (*Params, error) {
	frequency := param.NewFloat(FrequencyID, "Frequency", 0,
		param.LinearRange(0, MaxFrequency),
		param.WithSmoother(cfg.frequencyStyle, cfg.frequencyTimeMs),
		param.WithValueToString(param.HzThenKHz(2)),
		param.WithStringToValue(param.ParseHzThenKHz),
	)

	// Stored as linear gain; the skew makes the range look linear in dB.
	gainMod := param.NewFloat(GainModID, "Gain mod depth", core.DBToGain(MinGainModDB),
		param.SkewedRange(
			core.DBToGain(MinGainModDB),
			core.DBToGain(MaxGainModDB),
			param.GainSkewFactor(MinGainModDB, MaxGainModDB),
		),
		param.WithSmoother(smooth.Logarithmic, cfg.depthSmoothingMs),
		param.WithUnit(" dB"),
		param.WithValueToString(param.GainToDB(2)),
		param.WithStringToValue(param.ParseGainDB),
	)

	registry, err := param.NewRegistry(frequency, gainMod)
	if err != nil {
		return nil, err
	}

	return &Params{
		Frequency: frequency,
		GainMod:   gainMod,
		registry:  registry,
	}, nil
}

// Registry returns the parameters in declaration order.
func (p *Params) Registry() *param.Registry { return p.registry }

// SetGainModDB sets the depth from a decibel level.
func (p *Params) SetGainModDB(db float64) {
	p.GainMod.SetPlainValue(core.DBToGain(db))
}

// GainModDB returns the depth in decibels.
func (p *Params) GainModDB() float64 {
	return core.GainToDB(p.GainMod.PlainValue())
}
