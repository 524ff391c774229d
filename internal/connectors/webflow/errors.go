package webflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError represents a Webflow error response body.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("webflow: API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("webflow: API error %d: %s", e.StatusCode, e.Message)
}

// RateLimitError indicates the 60 rpm limit was exceeded.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("webflow: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "webflow: rate limit exceeded"
}

// apiErrorFromBody decodes an error response body into an APIError,
// falling back to the HTTP status text for non-JSON bodies.
func apiErrorFromBody(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates an invalid token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsRateLimited checks if the error indicates throttling.
func IsRateLimited(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}
