package editor

import (
	"strconv"
	"strings"

	"github.com/AdrienBref/networkTester-front/internal/model"
)

const (
	defaultPingEvery       = 1000
	minPingEvery           = 100
	defaultMinOfflineAlarm = 0
)

// FormValues carries operator-entered edit-form state. Numeric fields stay
// raw strings so an unparseable entry falls back to its default instead of
// failing the whole form.
type FormValues struct {
	Name            string
	IP              string
	PingEvery       string
	MinOfflineAlarm string
	Always          bool
	StartHour       string
	StartMinute     string
	EndHour         string
	EndMinute       string
	NotifyDays      []string
	ScheduleRules   []model.ScheduleRule
}

// parsedForm is a validated form, ready for payload building. Start and
// End are nil when the window is unset or forced off by the always flag.
type parsedForm struct {
	Name            string
	IP              string
	PingEvery       int
	MinOfflineAlarm int
	Always          bool
	Start           *string
	End             *string
	NotifyDays      []string
	ScheduleRules   []model.ScheduleRule
}

// parseForm validates shared create/update rules. When the always flag is
// set, the weekly window and notify-days are forced empty in the result no
// matter what the form controls displayed.
func parseForm(form FormValues) (parsedForm, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return parsedForm{}, &ValidationError{Field: "name", Reason: "is required"}
	}
	ip := strings.TrimSpace(form.IP)
	if ip == "" {
		return parsedForm{}, &ValidationError{Field: "ip", Reason: "is required"}
	}

	pingEvery := parseIntDefault(form.PingEvery, defaultPingEvery)
	if pingEvery < minPingEvery {
		return parsedForm{}, &ValidationError{Field: "pingInterval", Reason: "must be at least 100 ms"}
	}
	minOffline := parseIntDefault(form.MinOfflineAlarm, defaultMinOfflineAlarm)
	if minOffline < 0 {
		return parsedForm{}, &ValidationError{Field: "minOfflineAlarm", Reason: "must not be negative"}
	}

	parsed := parsedForm{
		Name:            name,
		IP:              ip,
		PingEvery:       pingEvery,
		MinOfflineAlarm: minOffline,
		Always:          form.Always,
		Start:           optionalClock(form.StartHour, form.StartMinute),
		End:             optionalClock(form.EndHour, form.EndMinute),
		NotifyDays:      validDays(form.NotifyDays),
		ScheduleRules:   CollectRules(form.ScheduleRules),
	}

	if parsed.Always {
		parsed.Start = nil
		parsed.End = nil
		parsed.NotifyDays = []string{}
	}
	return parsed, nil
}

func parseIntDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

func optionalClock(hour, minute string) *string {
	hhmm := model.JoinClock(hour, minute)
	if hhmm == "" {
		return nil
	}
	return &hhmm
}

func validDays(days []string) []string {
	out := []string{}
	for _, day := range days {
		if model.IsWeekday(day) {
			out = append(out, day)
		}
	}
	return out
}

// formFromDevice rebuilds the full form state for a stored record. Inline
// single-field edits start from here so the record-replacing update never
// clobbers unrelated fields with stale defaults.
func formFromDevice(dev model.Device) FormValues {
	startHour, startMinute := model.SplitClock(dev.Start)
	endHour, endMinute := model.SplitClock(dev.End)
	return FormValues{
		Name:            dev.Name,
		IP:              dev.IP,
		PingEvery:       strconv.Itoa(dev.PingEvery),
		MinOfflineAlarm: strconv.Itoa(dev.MinOfflineAlarm),
		Always:          dev.Always,
		StartHour:       startHour,
		StartMinute:     startMinute,
		EndHour:         endHour,
		EndMinute:       endMinute,
		NotifyDays:      append([]string(nil), dev.NotifyDays...),
		ScheduleRules:   append([]model.ScheduleRule(nil), dev.ScheduleRules...),
	}
}
