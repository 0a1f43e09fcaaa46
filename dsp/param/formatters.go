package param

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/lfocool/dsp/core"
)

// ErrParse is returned when a display string cannot be converted to a value.
var ErrParse = errors.New("param: cannot parse value")

// HzThenKHz returns a formatter printing values below 1000 as "x Hz" and
// larger values as "x kHz", both with the given number of decimals.
func HzThenKHz(digits int) func(float64) string {
	return func(hz float64) string {
		if hz < 1000 {
			return strconv.FormatFloat(hz, 'f', digits, 64) + " Hz"
		}
		return strconv.FormatFloat(hz/1000, 'f', digits, 64) + " kHz"
	}
}

// ParseHzThenKHz parses strings produced by HzThenKHz. The unit is optional
// and case-insensitive; a "k" prefix scales by 1000.
func ParseHzThenKHz(str string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	s = strings.TrimSpace(strings.TrimSuffix(s, "hz"))

	scale := 1.0
	if strings.HasSuffix(s, "k") {
		scale = 1000
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: frequency %q", ErrParse, str)
	}
	return v * scale, nil
}

// GainToDB returns a formatter printing a linear gain in decibels with the
// given number of decimals. Gains at the silence floor print as "-inf".
// The unit is left to the parameter.
func GainToDB(digits int) func(float64) string {
	return func(gain float64) string {
		db := core.GainToDB(gain)
		if db <= core.MinusInfinityDB {
			return "-inf"
		}
		return strconv.FormatFloat(db, 'f', digits, 64)
	}
}

// ParseGainDB parses a decibel string, with or without a "dB" suffix, into a
// linear gain. "-inf" maps to zero gain.
func ParseGainDB(str string) (float64, error) {
	s := strings.TrimRight(strings.TrimSpace(str), " dDbB")
	if strings.EqualFold(s, "-inf") {
		return 0, nil
	}

	db, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: level %q", ErrParse, str)
	}
	return core.DBToGain(db), nil
}

// ParseNumber parses a bare decimal number.
func ParseNumber(str string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, str)
	}
	return v, nil
}
