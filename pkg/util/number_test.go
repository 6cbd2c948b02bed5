package util

import (
	"math"
	"testing"
)

func TestFormatFixed(t *testing.T) {
	cases := []struct {
		v      float64
		places int
		want   string
	}{
		{(10.0 - 8.0) * 0.15, 2, "0.30"},
		{0, 2, "0.00"},
		{math.Copysign(0, -1), 2, "0.00"},
		{-0.15, 2, "-0.15"},
		{10, 1, "10.0"},
		{9.96, 1, "10.0"},
		{1e21, 2, "1e+21"},
		{0.1875, 2, "0.19"},
		{-0.1875, 2, "-0.19"},
		{1.005, 2, "1.00"},
		{-0.001, 2, "-0.00"},
		{99.95, 1, "100.0"},
		{2.5, 0, "3"},
	}
	for _, c := range cases {
		if got := FormatFixed(c.v, c.places); got != c.want {
			t.Fatalf("FormatFixed(%v, %d) = %q, want %q", c.v, c.places, got, c.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		82:     "82",
		82.5:   "82.5",
		0:      "0",
		1e-7:   "1e-7",
		2.5e22: "2.5e+22",
	}
	for v, want := range cases {
		if got := FormatNumber(v); got != want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestFormatSpecialValues(t *testing.T) {
	if got := FormatFixed(math.NaN(), 2); got != "NaN" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatNumber(math.Inf(-1)); got != "-Infinity" {
		t.Fatalf("unexpected %q", got)
	}
}
