package coords

import (
	"errors"
	"math"
	"testing"
)

func TestParseRASexagesimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12:30:49.4", 187.70583333333333},
		{"12h30m49.4s", 187.70583333333333},
		{"12 30 49.4", 187.70583333333333},
		{"00:42:44.3", 10.684583333333333},
		{"0h0m0s", 0},
	}
	for _, c := range cases {
		got, err := ParseRA(c.in)
		if err != nil {
			t.Fatalf("ParseRA(%q): %v", c.in, err)
		}
		if math.Abs(got-c.want) > 1e-6 {
			t.Fatalf("ParseRA(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseRADecimal(t *testing.T) {
	got, err := ParseRA("187.70583")
	if err != nil {
		t.Fatalf("decimal: %v", err)
	}
	if math.Abs(got-187.70583) > 1e-9 {
		t.Fatalf("got %v", got)
	}
}

func TestParseRAErrors(t *testing.T) {
	for _, in := range []string{"", "12:30", "12:xx:49", "half past twelve"} {
		if _, err := ParseRA(in); err == nil {
			t.Fatalf("ParseRA(%q): expected error", in)
		} else {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ParseRA(%q): error type %T", in, err)
			}
		}
	}
}

func TestParseDecDMS(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"+12:23:28", 12.391111111111112},
		{"-12:23:28", -12.391111111111112},
		{"12 23 28", 12.391111111111112},
		{"+41d16m9s", 41.269166666666667},
		{"-41d16m9s", -41.269166666666667},
	}
	for _, c := range cases {
		got, err := ParseDec(c.in)
		if err != nil {
			t.Fatalf("ParseDec(%q): %v", c.in, err)
		}
		if math.Abs(got-c.want) > 1e-6 {
			t.Fatalf("ParseDec(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDecDecimal(t *testing.T) {
	for _, c := range []struct {
		in   string
		want float64
	}{
		{"-30.5", -30.5},
		{"41.269°", 41.269},
	} {
		got, err := ParseDec(c.in)
		if err != nil {
			t.Fatalf("ParseDec(%q): %v", c.in, err)
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("ParseDec(%q) = %v", c.in, got)
		}
	}
}

func TestParseDecErrors(t *testing.T) {
	for _, in := range []string{"", "12:23", "north a bit"} {
		if _, err := ParseDec(in); err == nil {
			t.Fatalf("ParseDec(%q): expected error", in)
		}
	}
}

func TestWrap180Idempotent(t *testing.T) {
	for _, x := range []float64{-720, -540.25, -180, -179.999, 0, 179.999, 180, 359, 720.5, 1e6} {
		w := Wrap180(x)
		if w < -180 || w >= 180 {
			t.Fatalf("Wrap180(%v) = %v out of [-180,180)", x, w)
		}
		if ww := Wrap180(w); math.Abs(ww-w) > 1e-9 {
			t.Fatalf("Wrap180 not idempotent at %v: %v != %v", x, ww, w)
		}
	}
}
