// Package httpapi exposes the reconciled device view and the edit
// operations over a local HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AdrienBref/networkTester-front/internal/directory"
	"github.com/AdrienBref/networkTester-front/internal/editor"
	"github.com/AdrienBref/networkTester-front/internal/model"
	"github.com/AdrienBref/networkTester-front/internal/snapshot"
	"github.com/AdrienBref/networkTester-front/internal/store"
)

type API struct {
	store     *store.Store
	status    *store.StatusBoard
	loader    *snapshot.Loader
	submitter *editor.Submitter
	logger    *slog.Logger
}

func New(st *store.Store, status *store.StatusBoard, loader *snapshot.Loader, submitter *editor.Submitter, logger *slog.Logger) *API {
	return &API{store: st, status: status, loader: loader, submitter: submitter, logger: logger}
}

func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", a.health)
	r.Route("/api", func(api chi.Router) {
		api.Get("/view/devices", a.listDevices)
		api.Get("/view/status", a.viewStatus)
		api.Post("/view/refresh", a.refresh)

		api.Post("/edit/devices", a.createDevice)
		api.Put("/edit/devices/{id}", a.updateDevice)
		api.Patch("/edit/devices/{id}/inline", a.inlineEdit)
		api.Delete("/edit/devices/{id}", a.deleteDevice)

		api.Get("/edit/recipients", a.listRecipients)
		api.Put("/edit/recipients", a.saveRecipients)
	})
	return r
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "load": a.status.Get().Phase})
}

func (a *API) listDevices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": a.store.List()})
}

func (a *API) viewStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.status.Get())
}

// refresh re-runs the snapshot load. Loading never retries on its own, so
// this is the operator's retry path after a failed load.
func (a *API) refresh(w http.ResponseWriter, r *http.Request) {
	if err := a.loader.Load(r.Context()); err != nil {
		a.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.status.Get())
}

// deviceForm is the JSON edit-form body. Numeric fields arrive as strings,
// matching the form controls they come from.
type deviceForm struct {
	Name            string               `json:"name"`
	IP              string               `json:"ip"`
	PingEvery       string               `json:"pingEvery"`
	MinOfflineAlarm string               `json:"minOfflineAlarm"`
	Always          bool                 `json:"always"`
	StartHour       string               `json:"startHour"`
	StartMinute     string               `json:"startMinute"`
	EndHour         string               `json:"endHour"`
	EndMinute       string               `json:"endMinute"`
	NotifyDays      []string             `json:"notifyDays"`
	ScheduleRules   []model.ScheduleRule `json:"scheduleRules"`
}

func (f deviceForm) values() editor.FormValues {
	return editor.FormValues{
		Name:            f.Name,
		IP:              f.IP,
		PingEvery:       f.PingEvery,
		MinOfflineAlarm: f.MinOfflineAlarm,
		Always:          f.Always,
		StartHour:       f.StartHour,
		StartMinute:     f.StartMinute,
		EndHour:         f.EndHour,
		EndMinute:       f.EndMinute,
		NotifyDays:      f.NotifyDays,
		ScheduleRules:   f.ScheduleRules,
	}
}

func (a *API) createDevice(w http.ResponseWriter, r *http.Request) {
	var form deviceForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	device, err := a.submitter.SubmitCreate(r.Context(), form.values())
	if err != nil {
		a.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

func (a *API) updateDevice(w http.ResponseWriter, r *http.Request) {
	var form deviceForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	device, err := a.submitter.SubmitUpdate(r.Context(), model.ID(chi.URLParam(r, "id")), form.values())
	if err != nil {
		a.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}

func (a *API) inlineEdit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	device, err := a.submitter.SubmitInlineField(
		r.Context(),
		model.ID(chi.URLParam(r, "id")),
		editor.InlineField(payload.Field),
		payload.Value,
	)
	if err != nil {
		a.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}

func (a *API) deleteDevice(w http.ResponseWriter, r *http.Request) {
	if err := a.submitter.SubmitDelete(r.Context(), model.ID(chi.URLParam(r, "id"))); err != nil {
		a.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *API) listRecipients(w http.ResponseWriter, r *http.Request) {
	emails, err := a.submitter.LoadRecipients(r.Context())
	if err != nil {
		a.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"emails": emails})
}

func (a *API) saveRecipients(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Emails []string `json:"emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	if err := a.submitter.SaveRecipients(r.Context(), payload.Emails); err != nil {
		a.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// writeFailure maps the error taxonomy onto responses: a locally rejected
// value is the caller's fault, anything involving the directory round trip
// is a gateway failure.
func (a *API) writeFailure(w http.ResponseWriter, err error) {
	var validation *editor.ValidationError
	if errors.As(err, &validation) {
		writeError(w, http.StatusBadRequest, "validation_failed", validation.Error())
		return
	}
	var transport *directory.TransportError
	if errors.As(err, &transport) {
		writeError(w, http.StatusBadGateway, "directory_unreachable", transport.Error())
		return
	}
	var malformed *directory.MalformedResponseError
	if errors.As(err, &malformed) {
		writeError(w, http.StatusBadGateway, "directory_malformed", malformed.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

// RunServer starts and gracefully stops the HTTP server with context
// cancellation.
func RunServer(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
