// Package api is the transport wrapper around the plant persistence
// service. It owns the wire format and translates every HTTP or network
// failure into an apperr code; raw transport errors never leave this
// package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"plantpulse/internal/apperr"
	"plantpulse/internal/plant"
)

// TokenSource supplies the caller's bearer credential; "" means signed out.
type TokenSource interface {
	Token() string
}

// Client issues CRUD requests against the persistence API.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    *logrus.Logger
}

// New creates a client for the API at baseURL. tokens may not be nil; pass
// the auth session.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		base:   trimSlash(baseURL),
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		log:    log,
	}
}

// List fetches all plant records, optionally filtered server-side by owner
// email.
func (c *Client) List(ctx context.Context, ownerEmail string) ([]plant.Plant, error) {
	endpoint := c.base + "/plants"
	if ownerEmail != "" {
		endpoint += "?userEmail=" + url.QueryEscape(ownerEmail)
	}
	var out []wirePlant
	if err := c.do(ctx, http.MethodGet, endpoint, nil, false, &out); err != nil {
		return nil, err
	}
	plants := make([]plant.Plant, 0, len(out))
	for _, w := range out {
		plants = append(plants, w.toPlant())
	}
	return plants, nil
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, id string) (plant.Plant, error) {
	var out wirePlant
	if err := c.do(ctx, http.MethodGet, c.base+"/plants/"+url.PathEscape(id), nil, false, &out); err != nil {
		return plant.Plant{}, err
	}
	return out.toPlant(), nil
}

// Create posts a new record; the server assigns the id and returns the
// stored object.
func (c *Client) Create(ctx context.Context, p plant.Plant) (plant.Plant, error) {
	var out wirePlant
	if err := c.do(ctx, http.MethodPost, c.base+"/plants", fromPlant(p), false, &out); err != nil {
		return plant.Plant{}, err
	}
	created := out.toPlant()
	if created.ID == "" {
		return plant.Plant{}, apperr.New(apperr.CodeServer, "server returned a record without an id")
	}
	return created, nil
}

// Update replaces the record with id. Requires a bearer credential; the
// request body never carries the id field.
func (c *Client) Update(ctx context.Context, id string, p plant.Plant) (plant.Plant, error) {
	var out wirePlant
	if err := c.do(ctx, http.MethodPut, c.base+"/plants/"+url.PathEscape(id), fromPlant(p), true, &out); err != nil {
		return plant.Plant{}, err
	}
	updated := out.toPlant()
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, nil
}

// Delete removes the record with id. Requires a bearer credential.
func (c *Client) Delete(ctx context.Context, id string) error {
	// The server answers with a confirmation {message}; nothing to keep.
	var out struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodDelete, c.base+"/plants/"+url.PathEscape(id), nil, true, &out)
}

// do runs one request/response cycle. authed operations fail with
// CodeUnauthorized before any network I/O when no credential is available.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, authed bool, out any) error {
	token := ""
	if authed {
		token = c.tokens.Token()
		if token == "" {
			return apperr.New(apperr.CodeUnauthorized, "sign in to modify plants")
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(apperr.CodeInternal, "encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "build request", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return apperr.Wrap(apperr.CodeCancelled, "request cancelled", err)
		}
		c.log.WithFields(logrus.Fields{"request_id": reqID, "method": method, "url": endpoint}).
			WithError(err).Warn("network failure")
		return apperr.Wrap(apperr.CodeNetwork, "could not reach the plant server", err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"request_id": reqID,
		"method":     method,
		"url":        endpoint,
		"status":     resp.StatusCode,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return apperr.Wrap(apperr.CodeServer, "malformed server response", err)
		}
	}
	return nil
}

// statusError maps a non-2xx response to a typed error, carrying the
// server-provided detail when the body has one.
func statusError(resp *http.Response) error {
	detail := serverMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperr.New(apperr.CodeUnauthorized, orDefault(detail, "credential missing or invalid"))
	case resp.StatusCode == http.StatusForbidden:
		return apperr.New(apperr.CodeForbidden, orDefault(detail, "not allowed"))
	case resp.StatusCode == http.StatusNotFound:
		return apperr.New(apperr.CodeNotFound, orDefault(detail, "plant not found"))
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return apperr.New(apperr.CodeValidation, orDefault(detail, "the server rejected the record"))
	case resp.StatusCode >= 500:
		return apperr.Newf(apperr.CodeServer, "server error (%d)", resp.StatusCode)
	}
	return apperr.Newf(apperr.CodeServer, "unexpected status %d", resp.StatusCode)
}

func serverMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	if json.Unmarshal(data, &payload) == nil {
		return payload.Message
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
