package editor

import "github.com/AdrienBref/networkTester-front/internal/model"

// Session is the state of one edit dialog: the target device and its rule
// drafts. It replaces any notion of a module-level "currently editing"
// pointer; whoever opens the dialog owns the session and drops it when the
// dialog closes.
type Session struct {
	DeviceID   model.ID
	Drafts     *RuleDrafts
	rulesShown bool
}

// Begin opens an edit session for dev, seeding the rule drafts from its
// stored rules. The rule surface starts visible when rules already exist.
func Begin(dev model.Device) *Session {
	return &Session{
		DeviceID:   dev.ID,
		Drafts:     NewRuleDrafts(dev.ScheduleRules),
		rulesShown: len(dev.ScheduleRules) > 0,
	}
}

// ShowRules marks the rule-editing surface visible. Once shown it stays
// shown for the rest of the session; no other field change hides it.
func (s *Session) ShowRules() { s.rulesShown = true }

func (s *Session) RulesVisible() bool { return s.rulesShown }

// ControlLocks reports which edit-form control groups are disabled.
type ControlLocks struct {
	WeeklyWindow bool
	NotifyDays   bool
	RuleEditor   bool
}

// Locks returns the lock state for a given always flag: the weekly window
// and notify-day controls lock while always-test is on, the rule editor
// never locks.
func (s *Session) Locks(always bool) ControlLocks {
	return ControlLocks{WeeklyWindow: always, NotifyDays: always, RuleEditor: false}
}
