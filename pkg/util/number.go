package util

import (
	"math"
	"strconv"
	"strings"
)

// exactDigits is enough fractional digits to print any float64 exactly.
const exactDigits = 1074

// FormatFixed renders v with exactly places decimals the way browsers
// render Number.prototype.toFixed: the exact binary value is rounded to
// the nearest decimal, ties go away from zero, values from 1e21 up use
// exponent notation, and negative zero prints unsigned.
func FormatFixed(v float64, places int) string {
	if s, ok := special(v); ok {
		return s
	}
	if math.Abs(v) >= 1e21 {
		return FormatNumber(v)
	}
	places = min(max(places, 0), 100)

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	intPart, frac, _ := strings.Cut(strconv.FormatFloat(v, 'f', exactDigits, 64), ".")
	digits := []byte(intPart + frac[:places])
	if frac[places] >= '5' {
		digits = increment(digits)
	}

	split := len(digits) - places
	out := string(digits[:split])
	if places > 0 {
		out += "." + string(digits[split:])
	}
	return sign + out
}

// increment adds one to a run of decimal digits, growing it on carry out.
func increment(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}

// FormatNumber renders the shortest decimal that round-trips v, with
// exponent notation only outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	if s, ok := special(v); ok {
		return s
	}
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func special(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}
