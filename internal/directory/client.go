package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/AdrienBref/networkTester-front/internal/model"
)

// Client talks to the Device Directory Service. Failed requests are never
// retried here; the operator re-triggers the action.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	httpc := resty.New().
		SetBaseURL(strings.TrimSuffix(strings.TrimSpace(baseURL), "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-Id", uuid.NewString())
			return nil
		})
	return &Client{http: httpc, logger: logger}
}

// FetchDevices reads the full device snapshot.
func (c *Client) FetchDevices(ctx context.Context) ([]model.Device, error) {
	const op = "fetch devices"
	resp, err := c.http.R().SetContext(ctx).Get("/api/devices")
	if err := requestOutcome(op, resp, err); err != nil {
		return nil, err
	}

	var records []deviceRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}

	devices := make([]model.Device, 0, len(records))
	for _, record := range records {
		devices = append(devices, record.toDevice())
	}
	return devices, nil
}

// UpdateDevice replaces the stored record and returns the server's echo.
func (c *Client) UpdateDevice(ctx context.Context, payload UpdatePayload) (model.Device, error) {
	const op = "update device"
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", payload.ID.String()).
		SetBody(payload).
		Put("/api/devices/{id}")
	if err := requestOutcome(op, resp, err); err != nil {
		return model.Device{}, err
	}
	return decodeEcho(op, resp.Body())
}

// CreateDevice registers a new device and returns the echo carrying its
// assigned id.
func (c *Client) CreateDevice(ctx context.Context, payload CreatePayload) (model.Device, error) {
	const op = "create device"
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/devices/createDevice")
	if err := requestOutcome(op, resp, err); err != nil {
		return model.Device{}, err
	}
	return decodeEcho(op, resp.Body())
}

// DeleteDevice removes the device server-side. No body is expected.
func (c *Client) DeleteDevice(ctx context.Context, id model.ID) error {
	const op = "delete device"
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		Delete("/api/devices/deleteDevice/{id}")
	return requestOutcome(op, resp, err)
}

// FetchRecipients reads the global alert-email list, tolerating the three
// known response shapes.
func (c *Client) FetchRecipients(ctx context.Context) ([]string, error) {
	const op = "fetch recipients"
	resp, err := c.http.R().SetContext(ctx).Get("/api/email/recipients")
	if err := requestOutcome(op, resp, err); err != nil {
		return nil, err
	}

	emails, err := decodeRecipients(resp.Body())
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	return emails, nil
}

// SaveRecipients replaces the global alert-email list.
func (c *Client) SaveRecipients(ctx context.Context, emails []string) error {
	const op = "save recipients"
	payload := make([]recipientPayload, 0, len(emails))
	for _, email := range emails {
		payload = append(payload, recipientPayload{Email: email})
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Put("/api/email/recipients")
	return requestOutcome(op, resp, err)
}

func decodeEcho(op string, body []byte) (model.Device, error) {
	var record deviceRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return model.Device{}, &MalformedResponseError{Op: op, Err: err}
	}
	if record.ID == "" {
		return model.Device{}, &MalformedResponseError{Op: op, Err: errMissingID}
	}
	return record.toDevice(), nil
}

func requestOutcome(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return &TransportError{Op: op, Status: resp.StatusCode()}
	}
	return nil
}
