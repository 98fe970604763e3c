package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/akimovd/wastepoint/internal/common"
)

// APIError is a non-2xx backend response. Message is the human-readable text
// from the error payload, when the backend provided one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Unwrap maps the status code onto the shared sentinels so callers can use
// errors.Is without inspecting status codes themselves.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return common.ErrUnauthorized
	case e.Status >= http.StatusInternalServerError:
		return common.ErrUnavailable
	}
	return nil
}

// ErrorMessage extracts the backend-provided message from err, falling back
// to the given generic text. Used to build user-facing notifications.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
