package editor

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/AdrienBref/networkTester-front/internal/directory"
	"github.com/AdrienBref/networkTester-front/internal/model"
	"github.com/AdrienBref/networkTester-front/internal/store"
)

// Submitter propagates operator edits to the directory service and merges
// the authoritative echo back into the store. The locally entered values
// are never trusted as final.
type Submitter struct {
	client *directory.Client
	store  *store.Store
	logger *slog.Logger
}

func NewSubmitter(client *directory.Client, st *store.Store, logger *slog.Logger) *Submitter {
	return &Submitter{client: client, store: st, logger: logger}
}

// SubmitCreate validates the form, registers the device and inserts the
// echoed record. Validation failures make no network call.
func (s *Submitter) SubmitCreate(ctx context.Context, form FormValues) (model.Device, error) {
	parsed, err := parseForm(form)
	if err != nil {
		return model.Device{}, err
	}

	payload := directory.CreatePayload{
		Name:             parsed.Name,
		IP:               parsed.IP,
		PingInterval:     parsed.PingEvery,
		TestAlways:       parsed.Always,
		MinOfflineAlarm:  parsed.MinOfflineAlarm,
		NotificationDays: parsed.NotifyDays,
		StartTime:        parsed.Start,
		EndTime:          parsed.End,
	}
	echo, err := s.client.CreateDevice(ctx, payload)
	if err != nil {
		s.logger.Warn("device create failed", "name", parsed.Name, "err", err)
		return model.Device{}, err
	}

	s.store.UpsertFromEcho(echo)
	s.logger.Info("device created", "id", echo.ID, "name", echo.Name)
	saved, _ := s.store.Get(echo.ID)
	return saved, nil
}

// SubmitUpdate validates the form and replaces the stored record for id,
// then merges the echo over the store entry.
func (s *Submitter) SubmitUpdate(ctx context.Context, id model.ID, form FormValues) (model.Device, error) {
	parsed, err := parseForm(form)
	if err != nil {
		return model.Device{}, err
	}

	payload := directory.UpdatePayload{
		ID:              id,
		Name:            parsed.Name,
		IP:              parsed.IP,
		PingInterval:    parsed.PingEvery,
		TestAlways:      parsed.Always,
		MinOfflineAlarm: parsed.MinOfflineAlarm,
		Start:           parsed.Start,
		End:             parsed.End,
		NotifyDays:      parsed.NotifyDays,
		ScheduleRules:   parsed.ScheduleRules,
	}
	echo, err := s.client.UpdateDevice(ctx, payload)
	if err != nil {
		s.logger.Warn("device update failed", "id", id, "err", err)
		return model.Device{}, err
	}

	s.store.UpsertFromEcho(echo)
	s.logger.Info("device updated", "id", echo.ID)
	saved, _ := s.store.Get(echo.ID)
	return saved, nil
}

// InlineField names the summary-view fields editable without opening the
// full form.
type InlineField string

const (
	InlinePingEvery       InlineField = "pingEvery"
	InlineMinOfflineAlarm InlineField = "minOfflineAlarm"
	InlineAlways          InlineField = "always"
)

// SubmitInlineField saves a single-field edit made on the summary view.
// The update contract is record-replacing, not field-patching, so the full
// current record is read back from the store, the one field overlaid, and
// the whole record resubmitted.
func (s *Submitter) SubmitInlineField(ctx context.Context, id model.ID, field InlineField, value string) (model.Device, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return model.Device{}, &ValidationError{Field: "id", Reason: "unknown device"}
	}

	form := formFromDevice(current)
	switch field {
	case InlinePingEvery:
		form.PingEvery = value
	case InlineMinOfflineAlarm:
		form.MinOfflineAlarm = value
	case InlineAlways:
		always, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return model.Device{}, &ValidationError{Field: string(field), Reason: "must be true or false"}
		}
		form.Always = always
	default:
		return model.Device{}, &ValidationError{Field: string(field), Reason: "is not inline-editable"}
	}

	return s.SubmitUpdate(ctx, id, form)
}

// SubmitDelete removes the device. The store entry goes away only after
// the server confirms; there is no optimistic removal.
func (s *Submitter) SubmitDelete(ctx context.Context, id model.ID) error {
	if err := s.client.DeleteDevice(ctx, id); err != nil {
		s.logger.Warn("device delete failed", "id", id, "err", err)
		return err
	}
	s.store.Remove(id)
	s.logger.Info("device deleted", "id", id)
	return nil
}
