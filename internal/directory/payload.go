package directory

import "github.com/AdrienBref/networkTester-front/internal/model"

// UpdatePayload is the record-replacing body for PUT /api/devices/{id}.
type UpdatePayload struct {
	ID              model.ID             `json:"id"`
	Name            string               `json:"name"`
	IP              string               `json:"ip"`
	PingInterval    int                  `json:"pingInterval"`
	TestAlways      bool                 `json:"testAlways"`
	MinOfflineAlarm int                  `json:"minOfflineAlarm"`
	Start           *string              `json:"start"`
	End             *string              `json:"end"`
	NotifyDays      []string             `json:"notifyDays"`
	ScheduleRules   []model.ScheduleRule `json:"scheduleRules"`
}

// CreatePayload is the body for POST /api/devices/createDevice. The create
// endpoint names several fields differently from the update endpoint; the
// divergence is the server's contract, not ours to repair.
type CreatePayload struct {
	Name             string   `json:"name"`
	IP               string   `json:"ip"`
	PingInterval     int      `json:"pingInterval"`
	TestAlways       bool     `json:"testAlways"`
	MinOfflineAlarm  int      `json:"minOfflineAlarm"`
	NotificationDays []string `json:"notificationDays"`
	StartTime        *string  `json:"startTime"`
	EndTime          *string  `json:"endTime"`
}

type recipientPayload struct {
	Email string `json:"email"`
}
