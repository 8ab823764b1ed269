package store

import "sync"

// Phase is the snapshot loader's externally visible state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseEmpty   Phase = "empty"
	PhaseReady   Phase = "ready"
)

// Status is the operator-visible load state of the device collection.
type Status struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
	Devices int    `json:"devices"`
}

// StatusBoard publishes the loader's status to the view layer.
type StatusBoard struct {
	mu     sync.RWMutex
	status Status
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{status: Status{Phase: PhaseIdle}}
}

func (b *StatusBoard) SetLoading() {
	b.set(Status{Phase: PhaseLoading})
}

// SetError records a failed load; the device count of the last good load
// is not meaningful here and resets to zero.
func (b *StatusBoard) SetError(message string) {
	b.set(Status{Phase: PhaseError, Message: message})
}

func (b *StatusBoard) SetLoaded(devices int) {
	phase := PhaseReady
	if devices == 0 {
		phase = PhaseEmpty
	}
	b.set(Status{Phase: phase, Devices: devices})
}

func (b *StatusBoard) Get() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

func (b *StatusBoard) set(s Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = s
}
