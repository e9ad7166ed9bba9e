package model

import "strings"

// FeedType identifies the front-end feed selected for a target's receiver
// chain.
type FeedType int

const (
	// FeedNone leaves the feed selection to the dish default.
	FeedNone FeedType = iota
	// FeedH3T1420 is the 3-turn helical feed for the 1420 MHz band.
	FeedH3T1420
	// FeedH7T1420 is the 7-turn helical feed for the 1420 MHz band.
	FeedH7T1420
	// FeedLF400 is the loop feed for the 400 MHz band.
	FeedLF400
	// FeedLoad is the calibration load.
	FeedLoad
)

// String returns the upper-snake-case name used in stored documents.
func (ft FeedType) String() string {
	switch ft {
	case FeedNone:
		return "NONE"
	case FeedH3T1420:
		return "H3T_1420"
	case FeedH7T1420:
		return "H7T_1420"
	case FeedLF400:
		return "LF_400"
	case FeedLoad:
		return "LOAD"
	default:
		return "UNKNOWN"
	}
}

// ParseFeedType maps a free-text feed name to a FeedType. The input is
// normalized to upper-snake-case before matching. The second return value
// reports whether the name was recognized.
func ParseFeedType(s string) (FeedType, bool) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch name {
	case "NONE":
		return FeedNone, true
	case "H3T_1420":
		return FeedH3T1420, true
	case "H7T_1420":
		return FeedH7T1420, true
	case "LF_400":
		return FeedLF400, true
	case "LOAD":
		return FeedLoad, true
	}
	return FeedNone, false
}

// Enum wraps the feed as a stored document value.
func (ft FeedType) Enum() EnumValue {
	return Enum("FeedType", ft.String())
}
