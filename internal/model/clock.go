package model

import (
	"regexp"
	"strings"
)

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})(?::\d{2})?$`)

// ToClock normalizes a wall-clock value to canonical "HH:MM". Accepted
// inputs are "HH:MM" and "HH:MM:SS"; anything else yields "".
func ToClock(raw string) string {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ""
	}
	return m[1] + ":" + m[2]
}

// SplitClock decomposes a canonical "HH:MM" value into its hour and minute
// parts for two separate numeric inputs. Empty input yields empty parts.
func SplitClock(hhmm string) (hh, mm string) {
	if hhmm == "" {
		return "", ""
	}
	parts := strings.SplitN(hhmm, ":", 2)
	hh = parts[0]
	if len(parts) > 1 {
		mm = parts[1]
	}
	return hh, mm
}

// Pad2 left-pads a part entered as a separate field to two digits before
// recombining into canonical form. Empty stays empty so a blank input does
// not fabricate "00".
func Pad2(part string) string {
	part = strings.TrimSpace(part)
	if part == "" {
		return ""
	}
	for len(part) < 2 {
		part = "0" + part
	}
	return part
}

// JoinClock recombines hour and minute parts into canonical "HH:MM", or ""
// when either part is blank.
func JoinClock(hh, mm string) string {
	hh, mm = Pad2(hh), Pad2(mm)
	if hh == "" || mm == "" {
		return ""
	}
	return ToClock(hh + ":" + mm)
}
