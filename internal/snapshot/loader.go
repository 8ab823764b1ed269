// Package snapshot seeds the device collection store from one full read of
// the directory service.
package snapshot

import (
	"context"
	"log/slog"

	"github.com/AdrienBref/networkTester-front/internal/directory"
	"github.com/AdrienBref/networkTester-front/internal/store"
)

type Loader struct {
	client *directory.Client
	store  *store.Store
	status *store.StatusBoard
	logger *slog.Logger
}

func New(client *directory.Client, st *store.Store, status *store.StatusBoard, logger *slog.Logger) *Loader {
	return &Loader{client: client, store: st, status: status, logger: logger}
}

// Load fetches the full device list and replaces the store's content. On
// any failure the store keeps its last known good state and only the
// status board reflects the error; there is no automatic retry.
func (l *Loader) Load(ctx context.Context) error {
	l.status.SetLoading()

	devices, err := l.client.FetchDevices(ctx)
	if err != nil {
		l.status.SetError(err.Error())
		l.logger.Warn("snapshot load failed", "err", err)
		return err
	}

	l.store.ReplaceAll(devices)
	l.status.SetLoaded(l.store.Len())
	l.logger.Info("snapshot loaded", "devices", l.store.Len())
	return nil
}
