package window

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestGenerateAllTypes(t *testing.T) {
	for typ := range names {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 65)
			if len(w) != 65 {
				t.Fatalf("len=%d, want 65", len(w))
			}
			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if !almostEqual(v, w[len(w)-1-i], 1e-12) {
					t.Fatalf("coefficient[%d]=%v not symmetric", i, v)
				}
			}
			if !almostEqual(w[32], 1, 1e-6) {
				t.Fatalf("centre=%v, want 1", w[32])
			}
		})
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0)=%v, want nil", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 0 {
		t.Fatalf("Generate(1)=%v, want [0]", w)
	}
	if w := Generate(Type(99), 4); w[0] != 1 || w[3] != 1 {
		t.Fatalf("unknown type should be rectangular, got %v", w)
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
	if !almostEqual(b[8], 1, 1e-12) {
		t.Fatalf("periodic Hann peak=%v, want 1", b[8])
	}
}

func TestApplyInPlace(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)

	want := Generate(TypeHann, 5)
	for i := range buf {
		if !almostEqual(buf[i], 2*want[i], 1e-12) {
			t.Fatalf("buf[%d]=%v, want %v", i, buf[i], 2*want[i])
		}
	}

	Apply(TypeHann, nil)
}

func TestCoherentGain(t *testing.T) {
	tests := []struct {
		typ  Type
		want float64
	}{
		{TypeRectangular, 1},
		{TypeHann, 0.5},
		{TypeHamming, 0.54},
		{TypeBlackman, 0.42},
	}
	for _, tt := range tests {
		got := CoherentGain(Generate(tt.typ, 1024, WithPeriodic()))
		if !almostEqual(got, tt.want, 1e-9) {
			t.Fatalf("%v: coherent gain=%v, want %v", tt.typ, got, tt.want)
		}
	}
	if CoherentGain(nil) != 0 {
		t.Fatal("CoherentGain(nil) != 0")
	}
}

func TestParseType(t *testing.T) {
	for typ, name := range names {
		got, err := ParseType(" " + name + " ")
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q)=%v, %v", name, got, err)
		}
	}
	if _, err := ParseType("HANN"); err != nil {
		t.Fatalf("ParseType is case-insensitive: %v", err)
	}
	if _, err := ParseType("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("ParseType(kaiser) error=%v, want ErrUnknownType", err)
	}
	if s := Type(42).String(); s != "Type(42)" {
		t.Fatalf("String()=%q", s)
	}
}

func BenchmarkGenerateHann4096(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Generate(TypeHann, 4096, WithPeriodic())
	}
}
