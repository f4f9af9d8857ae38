// Package httpstore implements RemoteTaskStore against the HTTP surface of
// adapters/httpserver. The server offers no push channel, so Subscribe is a
// polling fallback: the list endpoint is re-queried on an interval and a
// snapshot is delivered only when the result set changed.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/example/twodo/internal/core/fault"
	"github.com/example/twodo/internal/ports/secondary"
)

// defaultPollInterval is how often the polling subscription re-queries the
// store. Countdown refresh does not depend on it; the synchronizer derives
// locally between polls.
const defaultPollInterval = 15 * time.Second

type taskPayload struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	DueAt     time.Time `json:"dueAt"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type patchPayload struct {
	Name      *string    `json:"name,omitempty"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
}

// Client implements secondary.RemoteTaskStore over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		pollInterval: defaultPollInterval,
	}
}

// SetPollInterval overrides the subscription polling cadence.
func (c *Client) SetPollInterval(d time.Duration) {
	c.pollInterval = d
}

// Insert persists a new task and returns the store-assigned id.
func (c *Client) Insert(ctx context.Context, rec secondary.TaskRecord) (string, error) {
	body, err := json.Marshal(taskPayload{
		UserID:    rec.UserID,
		Name:      rec.Name,
		DueAt:     rec.DueAt,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Completed: rec.Completed,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode task: %w", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, http.StatusCreated, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// Patch applies a partial-field update to a task.
func (c *Client) Patch(ctx context.Context, id string, patch secondary.TaskPatch) error {
	body, err := json.Marshal(patchPayload{
		Name:      patch.Name,
		DueAt:     patch.DueAt,
		Completed: patch.Completed,
	})
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}
	return c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), body, http.StatusNoContent, nil)
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

// Get retrieves a single task by id.
func (c *Client) Get(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	var payload taskPayload
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	rec := toRecord(payload)
	return &rec, nil
}

// List retrieves a user's tasks in store order.
func (c *Client) List(ctx context.Context, userID string) ([]secondary.TaskRecord, error) {
	var payloads []taskPayload
	path := "/tasks?user=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &payloads); err != nil {
		return nil, err
	}

	recs := make([]secondary.TaskRecord, len(payloads))
	for i, p := range payloads {
		recs[i] = toRecord(p)
	}
	return recs, nil
}

// Subscribe opens a polling subscription. The first poll always delivers;
// later polls deliver only when the result set changed. Transport failures
// go to the error channel and polling continues, so the subscription
// recovers by itself once the store is reachable again.
func (c *Client) Subscribe(ctx context.Context, userID string) (secondary.TaskSubscription, error) {
	initial, err := c.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub := &pollSubscription{
		snapshots: make(chan []secondary.TaskRecord, 1),
		errs:      make(chan error, 1),
		stop:      make(chan struct{}),
	}
	sub.snapshots <- initial

	go c.poll(sub, userID, initial)
	return sub, nil
}

func (c *Client) poll(sub *pollSubscription, userID string, last []secondary.TaskRecord) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sub.stop:
			close(sub.snapshots)
			close(sub.errs)
			return
		case <-ticker.C:
		}

		recs, err := c.List(context.Background(), userID)
		if err != nil {
			select {
			case sub.errs <- err:
			default:
			}
			continue
		}
		if reflect.DeepEqual(recs, last) {
			continue
		}
		last = recs
		sub.deliver(recs)
	}
}

// do runs one request and decodes the response, mapping HTTP statuses onto
// the engine's failure kinds.
func (c *Client) do(ctx context.Context, method, path string, body []byte, wantStatus int, out any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("task store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fault.NotFound("task store: %s", decodeError(resp))
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("task store returned %d: %s", resp.StatusCode, decodeError(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode task store response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return resp.Status
}

func toRecord(p taskPayload) secondary.TaskRecord {
	return secondary.TaskRecord{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		DueAt:     p.DueAt,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Completed: p.Completed,
		CreatedAt: p.CreatedAt,
	}
}

// pollSubscription implements secondary.TaskSubscription over a poll loop.
type pollSubscription struct {
	snapshots chan []secondary.TaskRecord
	errs      chan error
	stop      chan struct{}
	closeOnce sync.Once
}

func (p *pollSubscription) Snapshots() <-chan []secondary.TaskRecord { return p.snapshots }
func (p *pollSubscription) Errs() <-chan error                       { return p.errs }

// deliver coalesces: a slow consumer observes the latest snapshot and the
// poll loop never blocks.
func (p *pollSubscription) deliver(recs []secondary.TaskRecord) {
	for {
		select {
		case p.snapshots <- recs:
			return
		default:
			select {
			case <-p.snapshots:
			default:
			}
		}
	}
}

// Close stops the poll loop. The channels close once the loop exits.
func (p *pollSubscription) Close() error {
	p.closeOnce.Do(func() { close(p.stop) })
	return nil
}

// Ensure Client implements the interface
var _ secondary.RemoteTaskStore = (*Client)(nil)
