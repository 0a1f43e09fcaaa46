package modulation

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/lfocool/dsp/window"
	"github.com/cwbudde/lfocool/internal/testutil"
)

// modulated returns dry scaled by 1 - gain + gain*(1+sin(2π·rate·t))/2.
func modulated(dry []float64, rate, gain, sampleRate float64) []float64 {
	wet := make([]float64, len(dry))
	for i, d := range dry {
		s := 0.5 * (1 + math.Sin(2*math.Pi*rate*float64(i)/sampleRate))
		wet[i] = d * (1 - gain + gain*s)
	}
	return wet
}

func TestAnalyzeSyntheticEnvelope(t *testing.T) {
	const sampleRate = 48000

	tests := []struct {
		name string
		rate float64
		gain float64
	}{
		{name: "slow shallow", rate: 2, gain: 0.1},
		{name: "medium", rate: 10, gain: 0.5},
		{name: "fast full", rate: 45, gain: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dry := testutil.DeterministicSine(1000, sampleRate, 0.7, 2*sampleRate)
			wet := modulated(dry, tt.rate, tt.gain, sampleRate)

			res, err := Analyze(dry, wet, Config{SampleRate: sampleRate})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}

			binHz := float64(sampleRate) / float64(nextPowerOf2(2*sampleRate))
			if math.Abs(res.RateHz-tt.rate) > binHz {
				t.Fatalf("RateHz = %v, want %v ± %v", res.RateHz, tt.rate, binHz)
			}
			if math.Abs(res.Depth-tt.gain) > 1e-3 {
				t.Fatalf("Depth = %v, want %v", res.Depth, tt.gain)
			}
			if math.Abs(res.Max-1) > 1e-3 {
				t.Fatalf("Max = %v, want 1", res.Max)
			}
			if math.Abs(res.FrequencyParam()-2*tt.rate) > 2*binHz {
				t.Fatalf("FrequencyParam() = %v, want %v", res.FrequencyParam(), 2*tt.rate)
			}
		})
	}
}

func TestAnalyzeFlatEnvelope(t *testing.T) {
	dry := testutil.DeterministicSine(440, 48000, 1, 4800)
	wet := make([]float64, len(dry))
	for i, d := range dry {
		wet[i] = 0.25 * d
	}

	res, err := Analyze(dry, wet, Config{SampleRate: 48000})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.RateHz != 0 {
		t.Fatalf("RateHz = %v, want 0", res.RateHz)
	}
	if math.Abs(res.Mean-0.25) > 1e-12 || math.Abs(res.Depth) > 1e-12 {
		t.Fatalf("Mean/Depth = %v/%v, want 0.25/0", res.Mean, res.Depth)
	}
	if !math.IsInf(res.DepthDB(), -1) {
		t.Fatalf("DepthDB() = %v, want -Inf", res.DepthDB())
	}
}

func TestAnalyzeMinRate(t *testing.T) {
	const sampleRate = 8000

	dry := testutil.Ones(4 * sampleRate)
	wet := make([]float64, len(dry))
	for i := range wet {
		ts := float64(i) / sampleRate
		wet[i] = 1 - 0.4*(1+math.Sin(2*math.Pi*1*ts))/2 - 0.1*(1+math.Sin(2*math.Pi*20*ts))/2
	}

	res, err := Analyze(dry, wet, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if math.Abs(res.RateHz-1) > 0.2 {
		t.Fatalf("RateHz = %v, want about 1", res.RateHz)
	}

	res, err = Analyze(dry, wet, Config{SampleRate: sampleRate, MinRateHz: 5})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if math.Abs(res.RateHz-20) > 0.2 {
		t.Fatalf("RateHz with MinRateHz = %v, want about 20", res.RateHz)
	}
}

func TestEnvelopeHoldsBelowThreshold(t *testing.T) {
	dry := []float64{0, 2, 0, 4, 1e-9}
	wet := []float64{5, 1, 7, 1, 3}

	env, err := Envelope(dry, wet, 0)
	if err != nil {
		t.Fatalf("Envelope() error = %v", err)
	}
	testutil.RequireSliceEqual(t, env, []float64{0.5, 0.5, 0.5, 0.25, 0.25})
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		dry  []float64
		wet  []float64
		cfg  Config
		want error
	}{
		{name: "length", dry: []float64{1, 1}, wet: []float64{1}, cfg: Config{SampleRate: 48000}, want: ErrLengthMismatch},
		{name: "empty", cfg: Config{SampleRate: 48000}, want: ErrEmptyInput},
		{name: "rate", dry: []float64{1}, wet: []float64{1}, want: ErrInvalidSampleRate},
		{name: "nan rate", dry: []float64{1}, wet: []float64{1}, cfg: Config{SampleRate: math.NaN()}, want: ErrInvalidSampleRate},
		{name: "silent", dry: make([]float64, 16), wet: make([]float64, 16), cfg: Config{SampleRate: 48000}, want: ErrNoSignal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.dry, tt.wet, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Analyze() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDepthDB(t *testing.T) {
	got := Result{Depth: 0.5}.DepthDB()
	if math.Abs(got-20*math.Log10(0.5)) > 1e-12 {
		t.Fatalf("DepthDB() = %v", got)
	}
}

func TestAnalyzerTruncatesToFFTSize(t *testing.T) {
	const sampleRate = 48000
	dry := testutil.Ones(3 * sampleRate)
	wet := modulated(dry, 12, 0.5, sampleRate)

	a := NewAnalyzer(Config{SampleRate: sampleRate, FFTSize: 65536})
	res, err := a.Analyze(dry, wet)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	binHz := sampleRate / 65536.0
	if math.Abs(res.RateHz-12) > binHz {
		t.Fatalf("RateHz = %v, want 12 ± %v", res.RateHz, binHz)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	const sampleRate = 48000
	dry := testutil.DeterministicSine(1000, sampleRate, 1, sampleRate)
	wet := modulated(dry, 5, 0.5, sampleRate)
	a := NewAnalyzer(Config{SampleRate: sampleRate})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(dry, wet); err != nil {
			b.Fatal(err)
		}
	}
}

func TestAnalyzeWindowTypes(t *testing.T) {
	const sampleRate = 48000
	dry := testutil.Ones(2 * sampleRate)
	wet := modulated(dry, 7, 0.3, sampleRate)

	for _, wt := range []window.Type{window.TypeHann, window.TypeBlackman, window.TypeBlackmanHarris4Term} {
		res, err := Analyze(dry, wet, Config{SampleRate: sampleRate, WindowType: wt})
		if err != nil {
			t.Fatalf("%v: Analyze() error = %v", wt, err)
		}
		if math.Abs(res.RateHz-7) > 0.4 {
			t.Fatalf("%v: RateHz = %v, want 7", wt, res.RateHz)
		}
	}
}

func TestAnalyzerWindowSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		opts []Option
		want window.Type
	}{
		{name: "zero config", cfg: Config{SampleRate: 48000}, want: window.TypeHann},
		{name: "config field", cfg: Config{SampleRate: 48000, WindowType: window.TypeFlatTop}, want: window.TypeFlatTop},
		{
			name: "rectangular option",
			cfg:  Config{SampleRate: 48000},
			opts: []Option{WithWindow(window.TypeRectangular)},
			want: window.TypeRectangular,
		},
		{
			name: "option overrides field",
			cfg:  Config{SampleRate: 48000, WindowType: window.TypeBlackman},
			opts: []Option{WithWindow(window.TypeRectangular)},
			want: window.TypeRectangular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewAnalyzer(tt.cfg, tt.opts...).Config().WindowType; got != tt.want {
				t.Fatalf("WindowType = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeRectangularWindow(t *testing.T) {
	const sampleRate = 48000
	// 12 Hz sits 0.1 bin above bin 4 at this length.
	dry := testutil.Ones(16384)
	wet := modulated(dry, 12, 0.5, sampleRate)

	rect, err := Analyze(dry, wet, Config{SampleRate: sampleRate}, WithWindow(window.TypeRectangular))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	hann, err := Analyze(dry, wet, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	binHz := sampleRate / 16384.0
	if math.Abs(rect.RateHz-12) > binHz {
		t.Fatalf("rectangular RateHz = %v, want 12 ± %v", rect.RateHz, binHz)
	}
	if rect.RateHz == hann.RateHz {
		t.Fatalf("rectangular and hann estimates are identical (%v); window ignored", rect.RateHz)
	}
}
