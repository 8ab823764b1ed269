package store

import (
	"sync"

	"github.com/AdrienBref/networkTester-front/internal/model"
)

// Patch carries the reachability fields a live change may apply. Policy
// fields are deliberately absent so a patch can never clobber them.
type Patch struct {
	Online    *bool
	LatencyMS *int
}

// Store is the single authoritative in-memory view of the device
// collection. Devices keep snapshot arrival order; in-place updates never
// reorder. All mutation goes through the named operations below.
type Store struct {
	mu      sync.RWMutex
	devices []model.Device
	index   map[model.ID]int
}

func New() *Store {
	return &Store{index: make(map[model.ID]int)}
}

// ReplaceAll discards the previous content and seeds the store from one
// full snapshot.
func (s *Store) ReplaceAll(devices []model.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices = make([]model.Device, 0, len(devices))
	s.index = make(map[model.ID]int, len(devices))
	for _, dev := range devices {
		if _, exists := s.index[dev.ID]; exists {
			continue
		}
		s.index[dev.ID] = len(s.devices)
		s.devices = append(s.devices, dev.Clone())
	}
}

// ApplyPatch applies only the fields carried by p to the matching record.
// Unknown ids are reported as false, never created: the device may have
// been deleted server-side since the last snapshot.
func (s *Store) ApplyPatch(id model.ID, p Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}
	if p.Online != nil {
		s.devices[i].Online = *p.Online
	}
	if p.LatencyMS != nil {
		v := *p.LatencyMS
		s.devices[i].LatencyMS = &v
	}
	return true
}

// UpsertFromEcho merges a server-authoritative echo over the existing
// record, or inserts it when the id is new. Fields the echo does not carry
// keep their last known value: nil slices preserve notifyDays and
// scheduleRules, empty strings preserve name, ip, start and end.
// Reachability always survives an echo untouched.
func (s *Store) UpsertFromEcho(echo model.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[echo.ID]
	if !ok {
		s.index[echo.ID] = len(s.devices)
		s.devices = append(s.devices, echo.Clone())
		return
	}

	current := &s.devices[i]
	if echo.Name != "" {
		current.Name = echo.Name
	}
	if echo.IP != "" {
		current.IP = echo.IP
	}
	current.PingEvery = echo.PingEvery
	current.Always = echo.Always
	current.MinOfflineAlarm = echo.MinOfflineAlarm
	if echo.Start != "" {
		current.Start = echo.Start
	}
	if echo.End != "" {
		current.End = echo.End
	}
	if echo.NotifyDays != nil {
		current.NotifyDays = append([]string(nil), echo.NotifyDays...)
	}
	if echo.ScheduleRules != nil {
		current.ScheduleRules = append([]model.ScheduleRule(nil), echo.ScheduleRules...)
	}
}

// Remove deletes the record; safe to call for an absent id.
func (s *Store) Remove(id model.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return
	}
	s.devices = append(s.devices[:i], s.devices[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.devices); j++ {
		s.index[s.devices[j].ID] = j
	}
}

// Get returns a detached copy of one record.
func (s *Store) Get(id model.ID) (model.Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Device{}, false
	}
	return s.devices[i].Clone(), true
}

// List returns a detached copy of the collection in snapshot order.
func (s *Store) List() []model.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Device, 0, len(s.devices))
	for _, dev := range s.devices {
		out = append(out, dev.Clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices)
}
