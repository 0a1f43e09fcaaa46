package param

import (
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/lfocool/dsp/smooth"
)

func newDepth() *FloatParam {
	return NewFloat("gain_mod", "Gain mod depth", 0.001,
		SkewedRange(0.001, 1, GainSkewFactor(-60, 0)),
		WithSmoother(smooth.Logarithmic, 50),
		WithUnit(" dB"),
		WithValueToString(GainToDB(2)),
		WithStringToValue(ParseGainDB),
	)
}

func TestFloatDefaults(t *testing.T) {
	p := newDepth()

	if p.PlainValue() != 0.001 {
		t.Fatalf("PlainValue() = %v, want 0.001", p.PlainValue())
	}
	if p.NormalizedValue() != 0 || p.ModulatedNormalizedValue() != 0 {
		t.Fatalf("normalized = %v / %v, want exact 0", p.NormalizedValue(), p.ModulatedNormalizedValue())
	}
	if p.DefaultNormalizedValue() != 0 {
		t.Fatalf("DefaultNormalizedValue() = %v, want 0", p.DefaultNormalizedValue())
	}
	if got := p.String(); got != "-60.00 dB" {
		t.Fatalf("String() = %q, want -60.00 dB", got)
	}
	if got := p.Smoothed().Current(); got != 0.001 {
		t.Fatalf("smoother current = %v, want 0.001", got)
	}
}

func TestFloatDefaultClamped(t *testing.T) {
	p := NewFloat("frequency", "Frequency", 250, LinearRange(0, 100))
	if p.PlainValue() != 100 {
		t.Fatalf("PlainValue() = %v, want 100", p.PlainValue())
	}
}

func TestFloatSetValuesRetargetSmoother(t *testing.T) {
	p := newDepth()
	p.SetPlainValue(1)

	if p.NormalizedValue() != 1 {
		t.Fatalf("NormalizedValue() = %v, want 1", p.NormalizedValue())
	}
	if p.Smoothed().Target() != 1 {
		t.Fatalf("smoother target = %v, want 1", p.Smoothed().Target())
	}

	p.SetNormalizedValue(0.5)
	if math.Abs(p.PlainValue()-math.Pow(10, -1.5)) > 1e-9 {
		t.Fatalf("PlainValue() = %v, want -30 dB gain", p.PlainValue())
	}

	p.SetPlainValue(math.NaN())
	if math.IsNaN(p.PlainValue()) {
		t.Fatal("NaN must be ignored")
	}

	p.SetPlainValue(5)
	if p.PlainValue() != 1 {
		t.Fatalf("PlainValue() = %v, want clamped 1", p.PlainValue())
	}
}

func TestFloatModulationOffset(t *testing.T) {
	p := NewFloat("frequency", "Frequency", 50, LinearRange(0, 100))

	p.SetModulationOffset(0.25)
	if got := p.ModulatedNormalizedValue(); got != 0.75 {
		t.Fatalf("ModulatedNormalizedValue() = %v, want 0.75", got)
	}
	if got := p.ModulatedPlainValue(); got != 75 {
		t.Fatalf("ModulatedPlainValue() = %v, want 75", got)
	}
	if got := p.PlainValue(); got != 50 {
		t.Fatalf("PlainValue() = %v, want unmodulated 50", got)
	}
	if got := p.Smoothed().Next(); got != 75 {
		t.Fatalf("smoothed = %v, want 75", got)
	}

	p.SetModulationOffset(1)
	if got := p.ModulatedNormalizedValue(); got != 1 {
		t.Fatalf("ModulatedNormalizedValue() = %v, want clamped 1", got)
	}
}

func TestFloatResetSmoother(t *testing.T) {
	p := newDepth()
	p.SetSampleRate(48000)
	p.SetPlainValue(1)
	p.Smoothed().Next()

	p.ResetSmoother()
	if got := p.Smoothed().Next(); got != 1 {
		t.Fatalf("Next() after reset = %v, want 1", got)
	}
}

func TestFloatStrings(t *testing.T) {
	p := newDepth()

	if got := p.NormalizedValueToString(1, true); got != "0.00 dB" {
		t.Fatalf("NormalizedValueToString(1) = %q", got)
	}
	if got := p.NormalizedValueToString(1, false); got != "0.00" {
		t.Fatalf("NormalizedValueToString(1, false) = %q", got)
	}

	n, err := p.StringToNormalizedValue("-30 dB")
	if err != nil {
		t.Fatalf("StringToNormalizedValue() error = %v", err)
	}
	if math.Abs(n-0.5) > 1e-9 {
		t.Fatalf("StringToNormalizedValue(-30 dB) = %v, want 0.5", n)
	}

	v, err := p.StringToPlainValue("+12 dB")
	if err != nil {
		t.Fatalf("StringToPlainValue() error = %v", err)
	}
	if v != 1 {
		t.Fatalf("StringToPlainValue(+12 dB) = %v, want clamped 1", v)
	}

	plain := NewFloat("x", "X", 0, LinearRange(0, 10))
	if got := plain.String(); got != "0.00" {
		t.Fatalf("default formatter = %q, want 0.00", got)
	}
	if _, err := plain.StringToPlainValue("abc"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFloatConcurrentWriters(t *testing.T) {
	p := newDepth()
	p.SetSampleRate(48000)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				p.SetNormalizedValue(float64((i+w)%11) / 10)
			}
		}(w)
	}

	for i := 0; i < 10000; i++ {
		v := p.Smoothed().Next()
		if math.IsNaN(v) || v < 0.001-1e-12 || v > 1+1e-12 {
			t.Fatalf("sample %d: %v outside range", i, v)
		}
		if n := p.ModulatedNormalizedValue(); n < 0 || n > 1 {
			t.Fatalf("normalized %v outside [0, 1]", n)
		}
	}
	wg.Wait()
}
