package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AdrienBref/networkTester-front/internal/directory"
	"github.com/AdrienBref/networkTester-front/internal/model"
	"github.com/AdrienBref/networkTester-front/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	submitter *Submitter
	store     *store.Store
	requests  *atomic.Int64
	lastBody  *atomic.Value
}

// newFixture spins up a directory stub that counts requests, remembers the
// last JSON body and answers with the supplied handler.
func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()
	requests := &atomic.Int64{}
	lastBody := &atomic.Value{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			lastBody.Store(raw)
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	st := store.New()
	client := directory.NewClient(ts.URL, 5*time.Second, testLogger())
	return &fixture{
		submitter: NewSubmitter(client, st, testLogger()),
		store:     st,
		requests:  requests,
		lastBody:  lastBody,
	}
}

func (f *fixture) body(t *testing.T) map[string]any {
	t.Helper()
	raw, _ := f.lastBody.Load().([]byte)
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode captured body %q: %v", raw, err)
	}
	return out
}

func validForm() FormValues {
	return FormValues{
		Name:            "router",
		IP:              "10.0.0.1",
		PingEvery:       "1000",
		MinOfflineAlarm: "5",
		StartHour:       "8",
		StartMinute:     "0",
		EndHour:         "17",
		EndMinute:       "30",
		NotifyDays:      []string{model.Monday, model.Friday},
	}
}

func TestSubmitCreateRejectsLowPingIntervalWithoutNetworkCall(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	form := validForm()
	form.PingEvery = "50"
	_, err := f.submitter.SubmitCreate(context.Background(), form)

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if validation.Field != "pingInterval" {
		t.Fatalf("Field = %q, want pingInterval", validation.Field)
	}
	if f.requests.Load() != 0 {
		t.Fatalf("validation failure issued %d network requests", f.requests.Load())
	}
}

func TestSubmitCreateRequiresNameAndIP(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	form := validForm()
	form.Name = "   "
	if _, err := f.submitter.SubmitCreate(context.Background(), form); err == nil {
		t.Fatalf("blank name accepted")
	}

	form = validForm()
	form.IP = ""
	if _, err := f.submitter.SubmitCreate(context.Background(), form); err == nil {
		t.Fatalf("blank ip accepted")
	}
	if f.requests.Load() != 0 {
		t.Fatalf("validation failures issued network requests")
	}
}

func TestSubmitCreateDefaultsUnparseableNumbers(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d9","name":"router","ip":"10.0.0.1","pingInterval":1000}`))
	})

	form := validForm()
	form.PingEvery = "a lot"
	form.MinOfflineAlarm = "soon"
	if _, err := f.submitter.SubmitCreate(context.Background(), form); err != nil {
		t.Fatalf("SubmitCreate() error: %v", err)
	}

	body := f.body(t)
	if body["pingInterval"] != float64(1000) {
		t.Fatalf("pingInterval = %v, want default 1000", body["pingInterval"])
	}
	if body["minOfflineAlarm"] != float64(0) {
		t.Fatalf("minOfflineAlarm = %v, want default 0", body["minOfflineAlarm"])
	}
}

func TestSubmitCreateNegativeAlarmRejected(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	form := validForm()
	form.MinOfflineAlarm = "-1"
	var validation *ValidationError
	if _, err := f.submitter.SubmitCreate(context.Background(), form); !errors.As(err, &validation) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if f.requests.Load() != 0 {
		t.Fatalf("validation failure issued a network request")
	}
}

func TestAlwaysFlagForcesWindowEmpty(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d1","name":"router","ip":"10.0.0.1"}`))
	})

	form := validForm()
	form.Always = true
	if _, err := f.submitter.SubmitUpdate(context.Background(), "d1", form); err != nil {
		t.Fatalf("SubmitUpdate() error: %v", err)
	}

	body := f.body(t)
	if body["start"] != nil || body["end"] != nil {
		t.Fatalf("always=true payload window = %v-%v, want null-null", body["start"], body["end"])
	}
	days, ok := body["notifyDays"].([]any)
	if !ok || len(days) != 0 {
		t.Fatalf("always=true payload notifyDays = %v, want []", body["notifyDays"])
	}
	if body["testAlways"] != true {
		t.Fatalf("testAlways = %v, want true", body["testAlways"])
	}
}

func TestAlwaysFlagKeepsScheduleRulesInPayload(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d1","name":"router","ip":"10.0.0.1"}`))
	})

	form := validForm()
	form.Always = true
	form.ScheduleRules = []model.ScheduleRule{{Day: model.Saturday, Start: "10:00", End: "12:00"}}
	if _, err := f.submitter.SubmitUpdate(context.Background(), "d1", form); err != nil {
		t.Fatalf("SubmitUpdate() error: %v", err)
	}

	rules, ok := f.body(t)["scheduleRules"].([]any)
	if !ok || len(rules) != 1 {
		t.Fatalf("always=true dropped scheduleRules from payload: %v", f.body(t)["scheduleRules"])
	}
}

func TestSubmitUpdateEchoOmittingRulesPreservesThem(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d2","name":"switch","ip":"10.0.0.2","pingInterval":2000}`))
	})
	f.store.ReplaceAll([]model.Device{{
		ID: "d2", Name: "switch", IP: "10.0.0.2", PingEvery: 1000,
		ScheduleRules: []model.ScheduleRule{{Day: model.Monday, Start: "08:00", End: "17:00"}},
	}})

	form := validForm()
	form.Name = "switch"
	form.IP = "10.0.0.2"
	saved, err := f.submitter.SubmitUpdate(context.Background(), "d2", form)
	if err != nil {
		t.Fatalf("SubmitUpdate() error: %v", err)
	}

	if saved.PingEvery != 2000 {
		t.Fatalf("echo not applied: PingEvery = %d", saved.PingEvery)
	}
	if len(saved.ScheduleRules) != 1 || saved.ScheduleRules[0].Day != model.Monday {
		t.Fatalf("scheduleRules lost on echo merge: %+v", saved.ScheduleRules)
	}
}

func TestSubmitUpdateTransportErrorLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	f.store.ReplaceAll([]model.Device{{ID: "d1", Name: "router", IP: "10.0.0.1", PingEvery: 1000}})

	_, err := f.submitter.SubmitUpdate(context.Background(), "d1", validForm())
	var transport *directory.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error = %v, want TransportError", err)
	}

	dev, _ := f.store.Get("d1")
	if dev.PingEvery != 1000 {
		t.Fatalf("failed update changed the store: %+v", dev)
	}
}

func TestSubmitInlineFieldResendsFullRecord(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d1","name":"router","ip":"10.0.0.1","pingInterval":2500}`))
	})
	f.store.ReplaceAll([]model.Device{{
		ID: "d1", Name: "router", IP: "10.0.0.1",
		PingEvery: 1000, MinOfflineAlarm: 3,
		Start: "08:00", End: "17:00",
		NotifyDays:    []string{model.Monday},
		ScheduleRules: []model.ScheduleRule{{Day: model.Friday, Start: "09:00", End: "12:00"}},
	}})

	if _, err := f.submitter.SubmitInlineField(context.Background(), "d1", InlinePingEvery, "2500"); err != nil {
		t.Fatalf("SubmitInlineField() error: %v", err)
	}

	body := f.body(t)
	if body["pingInterval"] != float64(2500) {
		t.Fatalf("changed field not applied: %v", body["pingInterval"])
	}
	// The unrelated fields must come from the store, not from defaults.
	if body["name"] != "router" || body["ip"] != "10.0.0.1" {
		t.Fatalf("identity fields clobbered: %v", body)
	}
	if body["minOfflineAlarm"] != float64(3) {
		t.Fatalf("minOfflineAlarm clobbered: %v", body["minOfflineAlarm"])
	}
	if body["start"] != "08:00" || body["end"] != "17:00" {
		t.Fatalf("window clobbered: %v-%v", body["start"], body["end"])
	}
	days, _ := body["notifyDays"].([]any)
	if len(days) != 1 {
		t.Fatalf("notifyDays clobbered: %v", body["notifyDays"])
	}
	rules, _ := body["scheduleRules"].([]any)
	if len(rules) != 1 {
		t.Fatalf("scheduleRules clobbered: %v", body["scheduleRules"])
	}
}

func TestSubmitInlineFieldUnknownDevice(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var validation *ValidationError
	_, err := f.submitter.SubmitInlineField(context.Background(), "ghost", InlinePingEvery, "2000")
	if !errors.As(err, &validation) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if f.requests.Load() != 0 {
		t.Fatalf("unknown device still issued a request")
	}
}

func TestSubmitInlineAlwaysParsesBool(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"d1","name":"router","ip":"10.0.0.1","testAlways":true}`))
	})
	f.store.ReplaceAll([]model.Device{{ID: "d1", Name: "router", IP: "10.0.0.1", PingEvery: 1000}})

	if _, err := f.submitter.SubmitInlineField(context.Background(), "d1", InlineAlways, "true"); err != nil {
		t.Fatalf("SubmitInlineField() error: %v", err)
	}
	if f.body(t)["testAlways"] != true {
		t.Fatalf("always not applied: %v", f.body(t)["testAlways"])
	}

	var validation *ValidationError
	if _, err := f.submitter.SubmitInlineField(context.Background(), "d1", InlineAlways, "maybe"); !errors.As(err, &validation) {
		t.Fatalf("bad bool accepted")
	}
}

func TestSubmitDeleteRemovesOnlyAfterConfirmation(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	f.store.ReplaceAll([]model.Device{{ID: "d1", Name: "router", IP: "10.0.0.1"}})

	if err := f.submitter.SubmitDelete(context.Background(), "d1"); err == nil {
		t.Fatalf("SubmitDelete() error = nil, want non-nil")
	}
	if _, ok := f.store.Get("d1"); !ok {
		t.Fatalf("device removed before server confirmation")
	}
}

func TestSubmitDeleteSuccess(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	f.store.ReplaceAll([]model.Device{{ID: "d1", Name: "router", IP: "10.0.0.1"}})

	if err := f.submitter.SubmitDelete(context.Background(), "d1"); err != nil {
		t.Fatalf("SubmitDelete() error: %v", err)
	}
	if _, ok := f.store.Get("d1"); ok {
		t.Fatalf("device still present after confirmed delete")
	}
}

func TestSubmitCreateInsertsEcho(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":42,"name":"camera","ip":"10.0.0.9","pingInterval":1000}`))
	})

	form := validForm()
	form.Name = "camera"
	form.IP = "10.0.0.9"
	saved, err := f.submitter.SubmitCreate(context.Background(), form)
	if err != nil {
		t.Fatalf("SubmitCreate() error: %v", err)
	}
	if saved.ID != "42" {
		t.Fatalf("saved ID = %q, want \"42\"", saved.ID)
	}
	if _, ok := f.store.Get("42"); !ok {
		t.Fatalf("created device not inserted into store")
	}
}
