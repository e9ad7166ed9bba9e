// Package assemble turns labeled operator input into typed Target,
// TargetConfig and Observation documents and stages them in the record store.
package assemble

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rbrederode/odt/core/model"
)

// Field is one labeled raw value as captured from the input form.
type Field struct {
	Label string
	Value any
}

// Fields is a normalized document: lower-cased, underscore-separated keys
// with coerced values. Order is tracked separately so duplicate suffixing is
// deterministic.
type Fields struct {
	keys   []string
	values map[string]any
}

// Normalize builds a Fields document from labeled pairs. Keys are lower-cased
// with spaces replaced by underscores. The first occurrence of a key keeps
// the bare name; later occurrences are suffixed _1, _2, ... in encounter
// order, so repeated form labels stay distinguishable.
func Normalize(pairs []Field) Fields {
	f := Fields{values: make(map[string]any, len(pairs))}
	counts := make(map[string]int, len(pairs))
	for _, p := range pairs {
		base := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p.Label)), " ", "_")
		key := base
		if n := counts[base]; n > 0 {
			key = fmt.Sprintf("%s_%d", base, n)
		}
		counts[base]++
		f.keys = append(f.keys, key)
		f.values[key] = coerce(p.Value)
	}
	return f
}

// coerce wraps temporal values as datetime documents and converts
// numeric-looking strings to numbers; everything else passes through.
func coerce(v any) any {
	switch val := v.(type) {
	case time.Time:
		return model.Datetime(val)
	case string:
		s := strings.TrimSpace(val)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return val
	default:
		return v
	}
}

// Get returns the value for a normalized key.
func (f Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// String returns the value for key as a string, if it is one.
func (f Fields) String(key string) (string, bool) {
	v, ok := f.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Number returns the value for key as a float64, if it is one.
func (f Fields) Number(key string) (float64, bool) {
	v, ok := f.values[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

// Keys returns the normalized keys in encounter order.
func (f Fields) Keys() []string { return f.keys }

// Len returns the number of fields.
func (f Fields) Len() int { return len(f.keys) }
