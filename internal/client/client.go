// Package client is the editor's HTTP adapter to the load map REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/loadmap"
)

const defaultBaseURL = "http://localhost:5501"

// LoadMapClient talks to /api/loadmaps on BaseURL.
type LoadMapClient struct {
	BaseURL string
	Client  *http.Client
}

// NewLoadMapClient creates a client for baseURL, falling back to
// LOADMAP_API_URL and then the local default port.
func NewLoadMapClient(baseURL string) *LoadMapClient {
	if baseURL == "" {
		baseURL = os.Getenv("LOADMAP_API_URL")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &LoadMapClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ClientError is returned for transport failures and non-2xx responses.
type ClientError struct {
	Code       string
	Message    string
	StatusCode int
	Details    string
	Err        error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.StatusCode == http.StatusNotFound
}

// ============================================================================
// Load map operations
// ============================================================================

// List fetches summaries, filtered by query when it is not blank.
func (c *LoadMapClient) List(ctx context.Context, query string) ([]loadmap.Summary, error) {
	endpoint := "/api/loadmaps"
	if q := strings.TrimSpace(query); q != "" {
		endpoint += "?q=" + url.QueryEscape(q)
	}

	var items []loadmap.Summary
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []loadmap.Summary{}
	}
	return items, nil
}

// Get fetches one full record.
func (c *LoadMapClient) Get(ctx context.Context, id uint) (*loadmap.LoadMap, error) {
	var m loadmap.LoadMap
	if err := c.doJSON(ctx, http.MethodGet, recordPath(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create POSTs a new record and returns it with its assigned id.
func (c *LoadMapClient) Create(ctx context.Context, m *loadmap.LoadMap) (*loadmap.LoadMap, error) {
	body := *m
	body.ID = 0

	var saved loadmap.LoadMap
	if err := c.doJSON(ctx, http.MethodPost, "/api/loadmaps", &body, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Replace PUTs the full record to id. The id travels in the path only, so
// the body has the same shape as a create.
func (c *LoadMapClient) Replace(ctx context.Context, id uint, m *loadmap.LoadMap) (*loadmap.LoadMap, error) {
	body := *m
	body.ID = 0

	var saved loadmap.LoadMap
	if err := c.doJSON(ctx, http.MethodPut, recordPath(id), &body, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete removes record id.
func (c *LoadMapClient) Delete(ctx context.Context, id uint) error {
	var ack struct {
		OK bool `json:"ok"`
	}
	return c.doJSON(ctx, http.MethodDelete, recordPath(id), nil, &ack)
}

// DownloadExport streams /export.<format> of record id into w.
func (c *LoadMapClient) DownloadExport(ctx context.Context, id uint, format string, w io.Writer) (int64, error) {
	endpoint := fmt.Sprintf("%s/export.%s", recordPath(id), format)

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := c.handleHTTPError(resp, endpoint); err != nil {
		return 0, err
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &ClientError{
			Code:       constants.ErrCodeNetworkError,
			Message:    "Failed to read export",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	return n, nil
}

func recordPath(id uint) string {
	return fmt.Sprintf("/api/loadmaps/%d", id)
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

func (c *LoadMapClient) do(ctx context.Context, method, endpoint string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, &ClientError{
				Code:    constants.ErrCodeBadRequest,
				Message: "Failed to marshal request body",
				Err:     err,
			}
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return nil, &ClientError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	return resp, nil
}

// doJSON sends payload (when non-nil) and decodes a 2xx body into result.
func (c *LoadMapClient) doJSON(ctx context.Context, method, endpoint string, payload, result interface{}) error {
	resp, err := c.do(ctx, method, endpoint, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &ClientError{
			Code:       constants.ErrCodeNetworkError,
			Message:    "Failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return buildHTTPError(resp.StatusCode, method, endpoint, string(bodyBytes))
	}

	if result == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return &ClientError{
			Code:       constants.ErrCodeDecodeError,
			Message:    "Failed to decode response",
			StatusCode: resp.StatusCode,
			Details:    string(bodyBytes),
			Err:        err,
		}
	}
	return nil
}

func (c *LoadMapClient) handleHTTPError(resp *http.Response, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	return buildHTTPError(resp.StatusCode, resp.Request.Method, endpoint, string(bodyBytes))
}

// buildHTTPError maps a status code to a ClientError, preferring the
// backend's {"error": ...} message when present.
func buildHTTPError(statusCode int, method, endpoint, body string) error {
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal([]byte(body), &envelope)

	code := constants.ErrCodeServerError
	switch {
	case statusCode == http.StatusNotFound:
		code = constants.ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		code = constants.ErrCodeRateLimited
	case statusCode >= 400 && statusCode < 500:
		code = constants.ErrCodeBadRequest
	}

	msg := envelope.Error
	if msg == "" {
		msg = constants.GetErrorMessage(code)
	}

	return &ClientError{
		Code:       code,
		Message:    fmt.Sprintf("%s %s: HTTP %d: %s", method, endpoint, statusCode, msg),
		StatusCode: statusCode,
		Details:    body,
	}
}
