package directory

import (
	"encoding/json"
	"fmt"

	"github.com/AdrienBref/networkTester-front/internal/model"
)

// The directory uses two names for the same concept on several fields
// depending on the endpoint: a notify-days list arrives as either
// "notifyDays" or "notificationDays", and the window bounds as either the
// plain name or the "Time"-suffixed one. deviceRecord declares every
// observed alias; coalescing happens in one place so the fallback order is
// deterministic rather than scattered across call sites.
type deviceRecord struct {
	ID               model.ID             `json:"id"`
	Name             string               `json:"name"`
	IP               string               `json:"ip"`
	PingInterval     *int                 `json:"pingInterval"`
	TestAlways       bool                 `json:"testAlways"`
	MinOfflineAlarm  *int                 `json:"minOfflineAlarm"`
	Start            string               `json:"start"`
	StartTime        string               `json:"startTime"`
	End              string               `json:"end"`
	EndTime          string               `json:"endTime"`
	NotifyDays       []string             `json:"notifyDays"`
	NotificationDays []string             `json:"notificationDays"`
	ScheduleRules    []model.ScheduleRule `json:"scheduleRules"`
}

const (
	defaultPingEvery       = 1000
	defaultMinOfflineAlarm = 0
)

// toDevice normalizes one raw record: alias coalescing, clock
// normalization and per-field defaults. Reachability starts false with no
// latency; only the live feed speaks for it.
func (r deviceRecord) toDevice() model.Device {
	dev := model.Device{
		ID:              r.ID,
		Name:            r.Name,
		IP:              r.IP,
		Online:          false,
		PingEvery:       defaultPingEvery,
		Always:          r.TestAlways,
		MinOfflineAlarm: defaultMinOfflineAlarm,
		Start:           firstClock(r.StartTime, r.Start),
		End:             firstClock(r.EndTime, r.End),
		NotifyDays:      firstDayList(r.NotifyDays, r.NotificationDays),
		ScheduleRules:   normalizeRules(r.ScheduleRules),
	}
	if r.PingInterval != nil {
		dev.PingEvery = *r.PingInterval
	}
	if r.MinOfflineAlarm != nil {
		dev.MinOfflineAlarm = *r.MinOfflineAlarm
	}
	return dev
}

func firstClock(aliases ...string) string {
	for _, raw := range aliases {
		if hhmm := model.ToClock(raw); hhmm != "" {
			return hhmm
		}
	}
	return ""
}

func firstDayList(aliases ...[]string) []string {
	for _, list := range aliases {
		if list != nil {
			return append([]string(nil), list...)
		}
	}
	return nil
}

func normalizeRules(rules []model.ScheduleRule) []model.ScheduleRule {
	if rules == nil {
		return nil
	}
	out := make([]model.ScheduleRule, 0, len(rules))
	for _, rule := range rules {
		rule.Start = model.ToClock(rule.Start)
		rule.End = model.ToClock(rule.End)
		out = append(out, rule)
	}
	return out
}

// decodeRecipients accepts the three response shapes the recipients
// endpoint has been observed to produce: a list of plain strings, a list
// of {email} objects, or an {emails: [...]} object. The shapes are tried
// in that order.
func decodeRecipients(body []byte) ([]string, error) {
	var plain []string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain, nil
	}

	var wrapped []struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		out := make([]string, 0, len(wrapped))
		for _, item := range wrapped {
			out = append(out, item.Email)
		}
		return out, nil
	}

	var object struct {
		Emails []string `json:"emails"`
	}
	if err := json.Unmarshal(body, &object); err == nil && object.Emails != nil {
		return object.Emails, nil
	}

	return nil, fmt.Errorf("unrecognized recipients shape: %s", truncate(body, 128))
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
