package smooth

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Style selects the interpolation curve of a Smoother.
type Style int

const (
	// None applies targets immediately.
	None Style = iota
	// Linear interpolates with a constant additive step.
	Linear
	// Logarithmic interpolates with a constant multiplicative step.
	Logarithmic
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case None:
		return "none"
	case Linear:
		return "linear"
	case Logarithmic:
		return "logarithmic"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Smoother interpolates toward a target value one sample at a time.
//
// Next, Reset and SetSampleRate belong to the audio goroutine. SetTarget,
// Target and Style are safe from any goroutine.
type Smoother struct {
	style  Style
	timeMs float64

	target atomic.Uint64

	// audio goroutine state
	sampleRate float64
	seen       uint64
	current    float64
	step       float64
	stepsLeft  int
	mulStep    bool
}

// New returns a Smoother of the given style reaching each new target after
// timeMs milliseconds. Negative or non-finite times are treated as zero.
func New(style Style, timeMs float64) *Smoother {
	if timeMs < 0 || math.IsNaN(timeMs) || math.IsInf(timeMs, 0) {
		timeMs = 0
	}
	s := &Smoother{
		style:      style,
		timeMs:     timeMs,
		sampleRate: 48000,
	}
	s.Reset(0)
	return s
}

// Style returns the interpolation style.
func (s *Smoother) Style() Style { return s.style }

// TimeMs returns the smoothing time in milliseconds.
func (s *Smoother) TimeMs() float64 { return s.timeMs }

// SetSampleRate sets the rate used to convert the smoothing time into steps.
// It affects targets observed after the call. Non-positive or non-finite
// rates are ignored.
func (s *Smoother) SetSampleRate(sampleRate float64) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return
	}
	s.sampleRate = sampleRate
}

// SampleRate returns the rate used for step computation.
func (s *Smoother) SampleRate() float64 { return s.sampleRate }

// Steps returns the number of Next calls a full transition takes.
func (s *Smoother) Steps() int {
	if s.style == None {
		return 0
	}
	return int(math.Round(s.timeMs / 1000 * s.sampleRate))
}

// SetTarget records a new destination value. In-flight samples are not
// affected until the next call to Next. NaN targets are ignored.
func (s *Smoother) SetTarget(value float64) {
	if math.IsNaN(value) {
		return
	}
	s.target.Store(math.Float64bits(value))
}

// Target returns the most recently set destination value.
func (s *Smoother) Target() float64 {
	return math.Float64frombits(s.target.Load())
}

// Reset snaps both the current value and the target to value.
func (s *Smoother) Reset(value float64) {
	bits := math.Float64bits(value)
	s.target.Store(bits)
	s.seen = bits
	s.current = value
	s.step = 0
	s.stepsLeft = 0
}

// Current returns the value produced by the last call to Next.
func (s *Smoother) Current() float64 { return s.current }

// StepsLeft returns the number of Next calls until the current target is reached.
func (s *Smoother) StepsLeft() int { return s.stepsLeft }

// IsSmoothing reports whether a transition is in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.stepsLeft > 0 || s.target.Load() != s.seen
}

// Next advances one sample and returns the interpolated value.
func (s *Smoother) Next() float64 {
	if bits := s.target.Load(); bits != s.seen {
		s.retarget(bits)
	}

	switch {
	case s.stepsLeft == 0:
		return s.current
	case s.stepsLeft == 1:
		s.current = math.Float64frombits(s.seen)
	case s.mulStep:
		s.current *= s.step
	default:
		s.current += s.step
	}
	s.stepsLeft--

	return s.current
}

// NextBlock fills dst with successive values from Next.
func (s *Smoother) NextBlock(dst []float64) {
	for i := range dst {
		dst[i] = s.Next()
	}
}

func (s *Smoother) retarget(bits uint64) {
	s.seen = bits
	target := math.Float64frombits(bits)

	steps := s.Steps()
	if steps <= 0 || target == s.current {
		s.current = target
		s.stepsLeft = 0
		return
	}

	s.stepsLeft = steps
	s.mulStep = false
	if s.style == Logarithmic && s.current > 0 && target > 0 {
		s.mulStep = true
		s.step = math.Pow(target/s.current, 1/float64(steps))
		return
	}
	// Linear, and logarithmic across or onto zero where a ratio is undefined.
	s.step = (target - s.current) / float64(steps)
}
