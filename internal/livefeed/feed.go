// Package livefeed subscribes to the directory's push channel of per-device
// reachability changes and applies them to the store.
package livefeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AdrienBref/networkTester-front/internal/model"
	"github.com/AdrienBref/networkTester-front/internal/store"
)

// Change is one inbound reachability event. UpdatedAt is carried but never
// used for ordering: messages are applied in arrival order, and a stale
// overwrite self-corrects on the next message.
type Change struct {
	ID        model.ID `json:"id"`
	Online    bool     `json:"online"`
	LatencyMS int      `json:"latencyMs"`
	UpdatedAt string   `json:"updatedAt"`
}

// Feed is a restartable subscription to the change topic. A permanently
// unreachable channel degrades the dashboard to snapshot-only operation;
// it never crashes it.
type Feed struct {
	endpoint string
	topic    string
	delay    time.Duration
	logger   *slog.Logger
}

func New(endpoint, topic string, delay time.Duration, logger *slog.Logger) *Feed {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Feed{endpoint: endpoint, topic: topic, delay: delay, logger: logger}
}

// Subscribe returns a lazy, unbounded sequence of change events. The
// channel closes when ctx is done. Reconnection happens inside the
// subscription with a fixed delay, indefinitely and without backoff
// growth; individual lost messages are accepted as permanent.
func (f *Feed) Subscribe(ctx context.Context) <-chan Change {
	out := make(chan Change, 64)
	go f.run(ctx, out)
	return out
}

func (f *Feed) run(ctx context.Context, out chan<- Change) {
	defer close(out)
	for {
		if ctx.Err() != nil {
			return
		}
		err := f.session(ctx, out)
		if err != nil && ctx.Err() == nil {
			f.logger.Warn("live feed disconnected", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(f.delay):
		}
	}
}

func (f *Feed) session(ctx context.Context, out chan<- Change) error {
	wsURL, err := toWebsocketURL(f.endpoint)
	if err != nil {
		return err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	subscribe := map[string]any{"type": "subscribe", "destination": f.topic}
	if err := conn.WriteJSON(subscribe); err != nil {
		return err
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		change, ok := f.decode(msg)
		if !ok {
			continue
		}
		select {
		case out <- change:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// decode drops malformed frames; they never terminate the subscription.
func (f *Feed) decode(msg []byte) (Change, bool) {
	var change Change
	if err := json.Unmarshal(msg, &change); err != nil {
		f.logger.Warn("live feed frame dropped", "err", err)
		return Change{}, false
	}
	if change.ID == "" {
		f.logger.Warn("live feed frame dropped", "reason", "missing device id")
		return Change{}, false
	}
	return change, true
}

// Pump applies changes to the store until the channel closes. Each patch
// carries exactly the reachability fields; a change for an id unknown to
// the store is reported and skipped, never inserted.
func Pump(changes <-chan Change, st *store.Store, logger *slog.Logger) {
	for change := range changes {
		online := change.Online
		latency := change.LatencyMS
		if !st.ApplyPatch(change.ID, store.Patch{Online: &online, LatencyMS: &latency}) {
			logger.Debug("live change for unknown device", "id", change.ID)
		}
	}
}

func toWebsocketURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	return u.String(), nil
}
