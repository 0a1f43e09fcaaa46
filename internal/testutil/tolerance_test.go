package testutil

import "testing"

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-10}, 1e-9)
	RequireSliceEqual(t, []float64{0.5, -1}, []float64{0.5, -1})
	RequireFinite(t, []float64{0, 1e300})
	RequireWithin(t, []float64{0, 0.5, 1}, 0, 1)
}
