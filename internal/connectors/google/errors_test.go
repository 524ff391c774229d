package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil passes through", err: nil, want: nil},
		{name: "401 maps to unauthorized", err: &googleapi.Error{Code: http.StatusUnauthorized}, want: ErrUnauthorized},
		{name: "403 maps to forbidden", err: &googleapi.Error{Code: http.StatusForbidden}, want: ErrForbidden},
		{name: "404 maps to not found", err: &googleapi.Error{Code: http.StatusNotFound}, want: ErrNotFound},
		{name: "429 maps to rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, want: ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapError(tt.err))
		})
	}
}

func TestWrapError_UnknownCodePassesThrough(t *testing.T) {
	gerr := &googleapi.Error{Code: http.StatusInternalServerError, Message: "boom"}
	assert.Equal(t, gerr, WrapError(gerr))
}

func TestWrapError_NonGoogleErrorPassesThrough(t *testing.T) {
	err := errors.New("plain error")
	assert.Equal(t, err, WrapError(err))
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("get message: %w", &googleapi.Error{Code: http.StatusNotFound})

	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(errors.New("other")))

	assert.True(t, IsUnauthorized(&googleapi.Error{Code: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(ErrUnauthorized))
	assert.False(t, IsUnauthorized(ErrNotFound))

	assert.True(t, IsForbidden(ErrForbidden))
	assert.True(t, IsRateLimited(&googleapi.Error{Code: http.StatusTooManyRequests}))
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1})

	assert.True(t, limiter.Allow())

	limiter.RecordRateLimitError(60)
	assert.False(t, limiter.Allow())
}

func TestNewRateLimiter_KnownServices(t *testing.T) {
	for _, svc := range []ServiceType{ServiceGmail, ServiceDrive, ServiceYouTube} {
		assert.NotNil(t, NewRateLimiter(svc))
	}
	// Unknown services fall back to defaults rather than panicking.
	assert.NotNil(t, NewRateLimiter(ServiceType("calendar")))
}
