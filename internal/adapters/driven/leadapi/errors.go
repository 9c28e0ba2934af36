package leadapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// errTransport marks failures to reach the server.
var errTransport = errors.New("send request")

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string

	// RetryAfterSeconds is the server's Retry-After value, if any.
	RetryAfterSeconds int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lead api: %d: %s", e.StatusCode, e.Message)
}

// RetryAfter returns how long the server asked clients to wait.
func (e *APIError) RetryAfter() time.Duration {
	return time.Duration(e.RetryAfterSeconds) * time.Second
}

// Temporary reports whether the request may succeed if repeated.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// errorFields are the body fields searched for a message, in order.
var errorFields = []string{"detail", "error.message", "error", "message"}

func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.StatusCode, body),
	}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		e.RetryAfterSeconds = secs
	}
	return e
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		for _, field := range errorFields {
			if r := gjson.GetBytes(body, field); r.Exists() && r.Type == gjson.String && r.String() != "" {
				return r.String()
			}
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
		return text
	}
	return http.StatusText(status)
}

// isTransient reports whether err is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return errors.Is(err, errTransport)
}
