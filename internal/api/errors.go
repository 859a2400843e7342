package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a failed API call: non-success status, success=false, or a body
// without the envelope.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}

	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is an API 401 or 403.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}

	return false
}

const defaultErrorMessage = "error connecting to the server, try again"

// errorMessage picks message, detail or error from a failed response body,
// in that order.
func errorMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Detail  json.RawMessage `json:"detail"`
		Error   json.RawMessage `json:"error"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return defaultErrorMessage
	}

	for _, raw := range []json.RawMessage{payload.Message, payload.Detail, payload.Error} {
		if msg := rawText(raw); msg != "" {
			return msg
		}
	}

	return defaultErrorMessage
}

// rawText renders a JSON string as-is and anything else (validation error
// lists, objects) compactly.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(string(raw))
}
