package model

import "time"

// EnumValue is the wire wrapper for enum-tagged fields. Every structured
// value in a stored document carries a kind discriminator.
type EnumValue struct {
	Kind     string `json:"kind"`
	EnumName string `json:"enum_name"`
	Value    string `json:"value"`
}

// Enum wraps a value of the named enumeration.
func Enum(name, value string) EnumValue {
	return EnumValue{Kind: "enum", EnumName: name, Value: value}
}

// DatetimeValue is the wire wrapper for timestamps.
type DatetimeValue struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Datetime wraps a timestamp as an ISO 8601 string in UTC.
func Datetime(t time.Time) DatetimeValue {
	return DatetimeValue{Kind: "datetime", Value: t.UTC().Format(time.RFC3339)}
}
