package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/lfocool/dsp/buffer"
	"github.com/cwbudde/lfocool/dsp/window"
	"github.com/cwbudde/lfocool/internal/wavfile"
	"github.com/cwbudde/lfocool/measure/modulation"
	timestats "github.com/cwbudde/lfocool/stats/time"
)

func analyzeCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	cfg := addRenderFlags(fs)
	dryPath := fs.String("dry", "", "unprocessed WAV file")
	wetPath := fs.String("wet", "", "processed WAV file")
	minRate := fs.Float64("min-rate", 0, "ignore envelope rates below this frequency in Hz")
	windowName := fs.String("window", "hann", "analysis window: rectangular, hann, hamming, blackman, blackman-harris-4t, flat-top")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: lfocool analyze [-dry file -wet file] [render flags]\n\n")
		fmt.Fprintf(fs.Output(), "Without -dry and -wet a tone is rendered with the render flags.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	wt, err := window.ParseType(*windowName)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	var (
		dry, wet   buffer.Block
		sampleRate float64
	)
	switch {
	case *dryPath != "" && *wetPath != "":
		dry, wet, sampleRate, err = loadPair(*dryPath, *wetPath)
	case *dryPath != "" || *wetPath != "":
		return errors.New("analyze: -dry and -wet must be given together")
	default:
		dry, wet, _, err = render(*cfg)
		sampleRate = cfg.sampleRate
	}
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	analyzer := modulation.NewAnalyzer(modulation.Config{
		SampleRate: sampleRate,
		MinRateHz:  *minRate,
	}, modulation.WithWindow(wt))
	res, err := analyzer.Analyze(dry.Channel(0), wet.Channel(0))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\t%s\n", analyzer.Config().WindowType)
	fmt.Fprintf(tw, "Envelope rate\t%.3f Hz\n", res.RateHz)
	fmt.Fprintf(tw, "Frequency parameter\t%.3f\n", res.FrequencyParam())
	fmt.Fprintf(tw, "Depth\t%.4f (%.2f dB)\n", res.Depth, res.DepthDB())
	fmt.Fprintf(tw, "Envelope min/max/mean\t%.4f / %.4f / %.4f\n", res.Min, res.Max, res.Mean)

	dryLevel := timestats.Calculate(dry.Channel(0))
	wetLevel := timestats.Calculate(wet.Channel(0))
	fmt.Fprintf(tw, "Dry peak/RMS\t%.2f / %.2f dBFS\n", dryLevel.Peak_dB, dryLevel.RMS_dB)
	fmt.Fprintf(tw, "Wet peak/RMS\t%.2f / %.2f dBFS\n", wetLevel.Peak_dB, wetLevel.RMS_dB)
	fmt.Fprintf(tw, "Level change\t%.2f dB\n", timestats.LevelChangeDB(dryLevel, wetLevel))
	return tw.Flush()
}

func loadPair(dryPath, wetPath string) (dry, wet buffer.Block, sampleRate float64, err error) {
	dry, dryRate, err := wavfile.ReadFile(dryPath)
	if err != nil {
		return buffer.Block{}, buffer.Block{}, 0, err
	}
	wet, wetRate, err := wavfile.ReadFile(wetPath)
	if err != nil {
		return buffer.Block{}, buffer.Block{}, 0, err
	}
	if dryRate != wetRate {
		return buffer.Block{}, buffer.Block{}, 0, fmt.Errorf("sample rates differ: %d and %d", dryRate, wetRate)
	}
	if dry.NumChannels() == 0 || wet.NumChannels() == 0 {
		return buffer.Block{}, buffer.Block{}, 0, errors.New("empty audio file")
	}
	return dry, wet, float64(dryRate), nil
}
