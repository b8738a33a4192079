package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookctl/internal/config"
	"bookctl/internal/domain"
	"bookctl/internal/metrics"
	"bookctl/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const maxErrorBody = 1 << 20

// Client calls the remote event-booking API against a single base URL.
// Authorized calls attach "Authorization: Bearer <token>" from the
// session store; failures are normalized into *Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   domain.SessionStore
	limiter    *rate.Limiter
	logger     *zerolog.Logger
}

// New constructs a client from config. The session store supplies the
// bearer token for authorized calls.
func New(cfg config.APIConfig, sessions domain.SessionStore, logger *zerolog.Logger) *Client {
	metrics.Register()

	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 5
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		sessions:   sessions,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst),
		logger:     logger,
	}
}

// Register signs up a new account. A 2xx response carries no mandated body.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "/auth/register", req, nil, false)
}

// Login exchanges credentials for a token and the user payload.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "/auth/login", req, &resp, false)
	return resp, err
}

// ListEvents returns the full catalog.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := c.do(ctx, http.MethodGet, "/events", "/events", nil, &events, true)
	return events, err
}

// GetEvent returns a single event by id.
func (c *Client) GetEvent(ctx context.Context, id int64) (models.Event, error) {
	var event models.Event
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), "/events/:id", nil, &event, true)
	return event, err
}

// CreateEvent creates an event and returns the canonical server entity.
func (c *Client) CreateEvent(ctx context.Context, draft models.EventDraft) (models.Event, error) {
	var event models.Event
	err := c.do(ctx, http.MethodPost, "/events", "/events", draft, &event, true)
	return event, err
}

// UpdateEvent replaces an event's fields and returns the canonical entity.
func (c *Client) UpdateEvent(ctx context.Context, id int64, draft models.EventDraft) (models.Event, error) {
	var event models.Event
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), "/events/:id", draft, &event, true)
	return event, err
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), "/events/:id", nil, nil, true)
}

// ListBookings returns the bookings of one user.
func (c *Client) ListBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	path := fmt.Sprintf("/bookings?userId=%d", userID)
	err := c.do(ctx, http.MethodGet, path, "/bookings", nil, &bookings, true)
	return bookings, err
}

// CreateBooking books an event and returns the canonical booking.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	var booking models.Booking
	err := c.do(ctx, http.MethodPost, "/bookings", "/bookings", req, &booking, true)
	return booking, err
}

func (c *Client) do(ctx context.Context, method, path, label string, body, out interface{}, authorized bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return transportError(err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return transportError(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return transportError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if authorized {
		session, ok, err := c.sessions.Load(ctx)
		if err != nil || !ok || !session.Valid() {
			metrics.IncRequest(label, metrics.OutcomeError)
			return ErrNoToken
		}
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncRequest(label, metrics.OutcomeError)
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).
			Str("request_id", requestID).Msg("API request failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		metrics.IncRequest(label, metrics.OutcomeError)
		apiErr := normalize(resp.StatusCode, raw)
		c.logger.Warn().Int("status", resp.StatusCode).Str("method", method).
			Str("path", path).Str("request_id", requestID).Msg(apiErr.Message)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			metrics.IncRequest(label, metrics.OutcomeError)
			return transportError(err)
		}
	}

	metrics.IncRequest(label, metrics.OutcomeOK)
	c.logger.Debug().Int("status", resp.StatusCode).Str("method", method).
		Str("path", path).Str("request_id", requestID).Msg("API request ok")
	return nil
}
