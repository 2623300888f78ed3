package util

import (
	"strconv"
	"time"
)

// navDateLayout is the dd-mm-yyyy format used by the AMFI NAV feeds.
const navDateLayout = "02-01-2006"

// ParseNavDate parses a NAV feed date (dd-mm-yyyy) as UTC midnight.
func ParseNavDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(navDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseNavValue parses a NAV quoted as a decimal string. Zero and negative
// quotes are treated as invalid; feeds use them for suspended schemes.
func ParseNavValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
