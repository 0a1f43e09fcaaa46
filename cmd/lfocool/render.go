package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/cwbudde/lfocool/dsp/buffer"
	"github.com/cwbudde/lfocool/dsp/core"
	"github.com/cwbudde/lfocool/dsp/signal"
	"github.com/cwbudde/lfocool/internal/preset"
	"github.com/cwbudde/lfocool/internal/wavfile"
	"github.com/cwbudde/lfocool/plugin"
	timestats "github.com/cwbudde/lfocool/stats/time"
)

// renderConfig describes an offline pass of a test signal through the processor.
type renderConfig struct {
	sampleRate float64
	blockSize  int
	seconds    float64
	source     string
	seed       int64
	toneHz     float64
	amplitude  float64
	frequency  float64
	depthDB    float64
	presetPath string
}

func addRenderFlags(fs *flag.FlagSet) *renderConfig {
	cfg := &renderConfig{}
	fs.Float64Var(&cfg.sampleRate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&cfg.blockSize, "block", 512, "host block size in samples")
	fs.Float64Var(&cfg.seconds, "seconds", 4, "duration in seconds")
	fs.StringVar(&cfg.source, "source", "sine", "test signal: sine, noise or dc")
	fs.Int64Var(&cfg.seed, "seed", 1, "noise seed")
	fs.Float64Var(&cfg.toneHz, "tone", 440, "sine tone frequency in Hz")
	fs.Float64Var(&cfg.amplitude, "amp", 0.5, "test signal amplitude")
	fs.Float64Var(&cfg.frequency, "freq", 8, "LFO frequency parameter")
	fs.Float64Var(&cfg.depthDB, "depth-db", -6, "modulation depth in dB")
	fs.StringVar(&cfg.presetPath, "preset", "", "preset file overriding -freq and -depth-db")
	return cfg
}

func (cfg renderConfig) validate() error {
	if cfg.seconds <= 0 || math.IsInf(cfg.seconds, 0) || math.IsNaN(cfg.seconds) {
		return fmt.Errorf("duration must be > 0: %g", cfg.seconds)
	}
	if _, err := signal.ParseSource(cfg.source); err != nil {
		return err
	}
	if cfg.toneHz <= 0 || cfg.toneHz >= cfg.sampleRate/2 {
		return fmt.Errorf("tone must be in (0, %g): %g", cfg.sampleRate/2, cfg.toneHz)
	}
	if cfg.amplitude <= 0 || cfg.amplitude > 1 {
		return fmt.Errorf("amplitude must be in (0, 1]: %g", cfg.amplitude)
	}
	return nil
}

// newProcessor builds a processor with the configured parameters applied
// and its smoothers settled.
func (cfg renderConfig) newProcessor() (*plugin.LfoCool, error) {
	p, err := plugin.New(
		plugin.WithSampleRate(cfg.sampleRate),
		plugin.WithMaxBlockSize(cfg.blockSize),
	)
	if err != nil {
		return nil, err
	}

	settings := preset.Preset{Frequency: cfg.frequency, GainModDB: cfg.depthDB}
	if cfg.presetPath != "" {
		if settings, err = preset.Load(cfg.presetPath); err != nil {
			return nil, err
		}
	}
	settings.Apply(p.Params())
	p.Reset()
	return p, nil
}

// render returns the dry stereo test signal, the processed copy and the
// level statistics of the processed left channel, gathered block by block
// as a host meter would.
func render(cfg renderConfig) (dry, wet buffer.Block, level timestats.Stats, err error) {
	if err := cfg.validate(); err != nil {
		return buffer.Block{}, buffer.Block{}, level, err
	}
	p, err := cfg.newProcessor()
	if err != nil {
		return buffer.Block{}, buffer.Block{}, level, err
	}

	src, _ := signal.ParseSource(cfg.source)
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(cfg.sampleRate)},
		signal.WithSeed(cfg.seed),
	)
	frames := int(math.Round(cfg.seconds * cfg.sampleRate))
	mono, err := gen.Generate(src, cfg.toneHz, cfg.amplitude, frames)
	if err != nil {
		return buffer.Block{}, buffer.Block{}, level, err
	}

	dry, err = buffer.FromChannels(mono, slices.Clone(mono))
	if err != nil {
		return buffer.Block{}, buffer.Block{}, level, err
	}
	wet, err = buffer.FromChannels(slices.Clone(mono), slices.Clone(mono))
	if err != nil {
		return buffer.Block{}, buffer.Block{}, level, err
	}

	meter := timestats.NewStreamingStats()
	ctx := &plugin.ProcessContext{SampleRate: cfg.sampleRate}
	for start := 0; start < frames; start += cfg.blockSize {
		end := min(start+cfg.blockSize, frames)
		block, err := buffer.FromChannels(wet.Channel(0)[start:end], wet.Channel(1)[start:end])
		if err != nil {
			return buffer.Block{}, buffer.Block{}, level, err
		}
		p.Process(block, ctx)
		meter.Update(block.Channel(0))
	}

	return dry, wet, meter.Result(), nil
}

func renderCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	cfg := addRenderFlags(fs)
	out := fs.String("o", "", "output WAV file (required)")
	dryOut := fs.String("dry", "", "also write the unprocessed tone to this file")
	bits := fs.Int("bits", 24, "PCM bit depth: 16, 24 or 32")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		fs.Usage()
		return errors.New("render: -o is required")
	}

	dry, wet, level, err := render(*cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	rate := int(cfg.sampleRate)
	if err := wavfile.WriteFile(*out, wet, rate, *bits); err != nil {
		return err
	}
	if *dryOut != "" {
		if err := wavfile.WriteFile(*dryOut, dry, rate, *bits); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "wrote %s: %.2f s, %d Hz, %d-bit\n", *out, float64(wet.Len())/cfg.sampleRate, rate, *bits)
	fmt.Fprintf(stdout, "output peak %.2f dBFS, RMS %.2f dBFS\n", level.Peak_dB, level.RMS_dB)
	return nil
}
