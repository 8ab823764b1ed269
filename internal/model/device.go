package model

import "encoding/json"

// Weekday tokens used by notification windows and schedule rules.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

// Weekdays lists every valid weekday token in calendar order.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsWeekday reports whether token belongs to the weekday enumeration.
func IsWeekday(token string) bool {
	for _, day := range Weekdays {
		if day == token {
			return true
		}
	}
	return false
}

// ID is a directory-assigned device identifier. The directory service has
// been observed to serialize ids both as JSON strings and as numbers, so
// decoding tolerates either.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// ScheduleRule is one per-weekday time-window override, independent of the
// device's weekly notification window.
type ScheduleRule struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Complete reports whether every part of the rule is set.
func (r ScheduleRule) Complete() bool {
	return r.Day != "" && r.Start != "" && r.End != ""
}

// Device is the reconciled read model for one monitored device.
type Device struct {
	ID              ID             `json:"id"`
	Name            string         `json:"name"`
	IP              string         `json:"ip"`
	Online          bool           `json:"online"`
	LatencyMS       *int           `json:"latencyMs,omitempty"`
	PingEvery       int            `json:"pingEvery"`
	Always          bool           `json:"always"`
	MinOfflineAlarm int            `json:"minOfflineAlarm"`
	Start           string         `json:"start,omitempty"`
	End             string         `json:"end,omitempty"`
	NotifyDays      []string       `json:"notifyDays"`
	ScheduleRules   []ScheduleRule `json:"scheduleRules"`
}

// Clone returns a copy that shares no slices or pointers with the receiver.
func (d Device) Clone() Device {
	out := d
	if d.LatencyMS != nil {
		v := *d.LatencyMS
		out.LatencyMS = &v
	}
	if d.NotifyDays != nil {
		out.NotifyDays = append([]string(nil), d.NotifyDays...)
	}
	if d.ScheduleRules != nil {
		out.ScheduleRules = append([]ScheduleRule(nil), d.ScheduleRules...)
	}
	return out
}
