package editor

import "github.com/AdrienBref/networkTester-front/internal/model"

// DefaultRuleDraft seeds a fresh draft row.
var DefaultRuleDraft = model.ScheduleRule{Day: model.Monday, Start: "08:00", End: "17:00"}

// RuleDrafts is the mutable ordered list of in-progress schedule rules for
// one edit session. Rows are positional; removing one does not renumber or
// re-identify the rest.
type RuleDrafts struct {
	rows []model.ScheduleRule
}

// NewRuleDrafts seeds the draft list from a device's existing rules.
func NewRuleDrafts(rules []model.ScheduleRule) *RuleDrafts {
	return &RuleDrafts{rows: append([]model.ScheduleRule(nil), rules...)}
}

// Add appends a draft row; a nil seed appends the default rule.
func (d *RuleDrafts) Add(seed *model.ScheduleRule) {
	if seed == nil {
		d.rows = append(d.rows, DefaultRuleDraft)
		return
	}
	d.rows = append(d.rows, *seed)
}

// Remove deletes the row at index; out-of-range indexes are ignored.
func (d *RuleDrafts) Remove(index int) {
	if index < 0 || index >= len(d.rows) {
		return
	}
	d.rows = append(d.rows[:index], d.rows[index+1:]...)
}

// Set replaces the row at index, for edits made in place.
func (d *RuleDrafts) Set(index int, rule model.ScheduleRule) {
	if index < 0 || index >= len(d.rows) {
		return
	}
	d.rows[index] = rule
}

// Rows returns a copy of the draft rows in order.
func (d *RuleDrafts) Rows() []model.ScheduleRule {
	return append([]model.ScheduleRule(nil), d.rows...)
}

func (d *RuleDrafts) Len() int { return len(d.rows) }

// Collect returns the submittable rules: drafts with any of day, start or
// end unset are dropped, the rest keep their order. Dropped drafts are
// never persisted.
func (d *RuleDrafts) Collect() []model.ScheduleRule {
	return CollectRules(d.rows)
}

// CollectRules filters a rule list down to complete, normalized rules.
func CollectRules(rules []model.ScheduleRule) []model.ScheduleRule {
	out := make([]model.ScheduleRule, 0, len(rules))
	for _, rule := range rules {
		rule.Start = model.ToClock(rule.Start)
		rule.End = model.ToClock(rule.End)
		if !rule.Complete() {
			continue
		}
		out = append(out, rule)
	}
	return out
}
