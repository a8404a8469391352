// Package submit posts talent records to the remote talent API.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/use-agent/talentclip/models"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// HTTPError is returned when the endpoint answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Client sends one record per call. It never retries.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
}

// NewClient creates a Client for endpoint. A zero timeout means the
// request is bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
		http:     &http.Client{},
	}
}

// Submit posts rec as JSON. Any 2xx status is success and the body is
// ignored. A non-2xx status yields *HTTPError.
func (c *Client) Submit(ctx context.Context, rec *models.TalentRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("submit: marshal record: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "talentclip/1.0")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp),
	}
}

// errorMessage returns the "message" field of a JSON error body, falling
// back to "Error <status>" when the body is not JSON or has no message.
func errorMessage(resp *http.Response) string {
	fallback := fmt.Sprintf("Error %d", resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return fallback
	}

	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}

	switch m := body.Message.(type) {
	case string:
		if strings.TrimSpace(m) != "" {
			return m
		}
	case []any:
		// Some frameworks send a list of validation messages.
		parts := make([]string, 0, len(m))
		for _, p := range m {
			parts = append(parts, fmt.Sprint(p))
		}
		if joined := strings.Join(parts, ","); joined != "" {
			return joined
		}
	}
	return fallback
}
