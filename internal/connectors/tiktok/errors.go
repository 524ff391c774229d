package tiktok

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Vendor envelope codes with dedicated handling.
const (
	// CodeOK is the success code in the response envelope.
	CodeOK = 0

	// CodeInvalidToken indicates the access token is invalid or expired.
	CodeInvalidToken = 40105

	// CodeRateLimited indicates the app-level QPS limit was exceeded.
	CodeRateLimited = 40100
)

// APIError represents a Marketing API error envelope.
type APIError struct {
	HTTPStatus int
	Code       int64
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("tiktok: API error %d: %s (request %s)", e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("tiktok: API error %d: %s", e.Code, e.Message)
}

// RateLimitError indicates the request was throttled by the vendor.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("tiktok: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "tiktok: rate limit exceeded"
}

// IsUnauthorized checks if the error indicates an invalid token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeInvalidToken || apiErr.HTTPStatus == http.StatusUnauthorized
	}
	return false
}

// IsRateLimited checks if the error indicates throttling.
func IsRateLimited(err error) bool {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeRateLimited
	}
	return false
}
