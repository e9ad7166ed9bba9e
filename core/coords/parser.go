// Package coords parses free-form celestial coordinate text as entered by
// operators: sexagesimal with any mix of colon, letter or space separators,
// or plain decimal degrees. It also carries the angle-wrapping helper shared
// by the sky-position math.
package coords

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError reports malformed coordinate text. It is fatal to the single
// field being parsed; callers decide whether the enclosing operation aborts.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

// sexagesimal reports whether the text looks like an H:M:S / D:M:S form
// rather than a plain decimal: unit letters, colons, or exactly three
// whitespace-separated tokens.
func sexagesimal(s string) bool {
	if strings.ContainsAny(s, ":hmsHMS") {
		return true
	}
	return len(strings.Fields(s)) == 3
}

// splitTokens strips unit letters, degree marks and colons, then splits the
// remainder into whitespace-separated numeric tokens.
func splitTokens(s string) ([]float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', 'h', 'm', 's', 'H', 'M', 'S', 'd', 'D', '°', '\'', '"':
			return ' '
		}
		return r
	}, s)
	fields := strings.Fields(cleaned)
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("token %q is not numeric", f)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// ParseRA converts right ascension text to decimal degrees. Sexagesimal input
// is interpreted as hours, minutes, seconds and scaled by 15 degrees/hour.
func ParseRA(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &ParseError{Input: text, Reason: "empty"}
	}
	if !sexagesimal(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &ParseError{Input: text, Reason: "not a decimal degree value"}
		}
		return v, nil
	}
	vals, err := splitTokens(s)
	if err != nil {
		return 0, &ParseError{Input: text, Reason: err.Error()}
	}
	if len(vals) < 3 {
		return 0, &ParseError{Input: text, Reason: fmt.Sprintf("expected 3 numeric tokens, got %d", len(vals))}
	}
	h, m, sec := vals[0], vals[1], vals[2]
	return (h + m/60 + sec/3600) * 15, nil
}

// ParseDec converts declination text to decimal degrees. Plain decimal is
// tried first (an optional degree symbol is stripped); otherwise the text is
// treated as D:M:S with the sign taken from a leading '+' or '-'.
func ParseDec(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &ParseError{Input: text, Reason: "empty"}
	}
	if v, err := strconv.ParseFloat(strings.TrimSuffix(s, "°"), 64); err == nil {
		return v, nil
	}
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1.0
		s = s[1:]
	}
	vals, err := splitTokens(s)
	if err != nil {
		return 0, &ParseError{Input: text, Reason: err.Error()}
	}
	if len(vals) < 3 {
		return 0, &ParseError{Input: text, Reason: fmt.Sprintf("expected 3 numeric tokens, got %d", len(vals))}
	}
	d, m, sec := vals[0], vals[1], vals[2]
	if d < 0 {
		// Sign already consumed above; a negative degrees token here means
		// input like "- 12 23 28" split oddly. Treat magnitude only.
		d = -d
		sign = -1.0
	}
	return sign * (d + m/60 + sec/3600), nil
}

// Wrap180 wraps an angle into [-180,180). Idempotent for all finite inputs.
func Wrap180(deg float64) float64 {
	return math.Mod(math.Mod(deg+180, 360)+360, 360) - 180
}
