package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"lpt-event/internal/logger"
	"lpt-event/internal/models"
)

// ErrNotFound is returned when the service answers 404.
var ErrNotFound = errors.New("event not found")

// APIError carries the status and detail of a non-2xx response, most
// commonly a 422 validation failure.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

// Client is a typed wrapper over the event API with a read-through
// query cache. List and Get serve from cache when possible; every
// successful mutation invalidates the collection key, and update and
// delete also invalidate the id key, so the next read re-fetches.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Cache    QueryCache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

func New(baseURL string, cache QueryCache) *Client {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Cache:    cache,
		CacheTTL: 60 * time.Second,
	}
}

func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	if data := c.cached(ctx, EventsKey); data != nil {
		var events []models.Event
		if err := json.Unmarshal(data, &events); err == nil {
			return events, nil
		}
		// Unreadable cache entry, drop it and fall through
		c.Cache.Invalidate(ctx, EventsKey)
	}

	body, err := c.do(ctx, http.MethodGet, "/api/events", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	c.store(ctx, EventsKey, body)
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	key := EventKey(id)
	if data := c.cached(ctx, key); data != nil {
		var event models.Event
		if err := json.Unmarshal(data, &event); err == nil {
			return &event, nil
		}
		c.Cache.Invalidate(ctx, key)
	}

	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/events/%d", id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	c.store(ctx, key, body)
	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, payload models.EventCreate) (*models.Event, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/events", payload, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to decode created event: %w", err)
	}

	c.invalidate(ctx, EventsKey)
	return &event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, payload models.EventUpdate) (*models.Event, error) {
	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/events/%d", id), payload, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to decode updated event: %w", err)
	}

	c.invalidate(ctx, EventsKey, EventKey(id))
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) (*models.DeleteConfirmation, error) {
	body, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var confirmation models.DeleteConfirmation
	if err := json.Unmarshal(body, &confirmation); err != nil {
		return nil, fmt.Errorf("failed to decode delete confirmation: %w", err)
	}

	c.invalidate(ctx, EventsKey, EventKey(id))
	return &confirmation, nil
}

// do performs one request-response exchange. The client never retries;
// failures surface to the caller with prior cache state intact.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, wantStatus int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, c.errorFromResponse(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) errorFromResponse(status int, body []byte) error {
	if status == http.StatusNotFound {
		return ErrNotFound
	}
	var errBody struct {
		Detail string `json:"detail"`
	}
	detail := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Detail != "" {
		detail = errBody.Detail
	}
	return &APIError{Status: status, Detail: detail}
}

func (c *Client) cached(ctx context.Context, key string) []byte {
	data, err := c.Cache.Get(ctx, key)
	if err != nil {
		// A broken cache degrades to a plain fetch
		if c.Logger != nil {
			c.Logger.Warn("CACHE", fmt.Sprintf("Failed to read %s: %v", key, err))
		}
		return nil
	}
	return data
}

func (c *Client) store(ctx context.Context, key string, data []byte) {
	if err := c.Cache.Set(ctx, key, data, c.CacheTTL); err != nil && c.Logger != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("Failed to store %s: %v", key, err))
	}
}

func (c *Client) invalidate(ctx context.Context, keys ...string) {
	if err := c.Cache.Invalidate(ctx, keys...); err != nil && c.Logger != nil {
		c.Logger.Warn("CACHE", fmt.Sprintf("Failed to invalidate %v: %v", keys, err))
	}
}
