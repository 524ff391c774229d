package gmail

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// DefaultUserID addresses the authenticated user in every Gmail call.
const DefaultUserID = "me"

// Client wraps the Gmail API service with rate limiting and typed errors.
type Client struct {
	svc     *gmail.Service
	limiter *google.RateLimiter
	userID  string
}

// NewClient creates a Gmail client around an existing API service.
func NewClient(svc *gmail.Service) *Client {
	return &Client{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceGmail),
		userID:  DefaultUserID,
	}
}

// NewClientWithLimiter creates a Gmail client with a custom rate limiter.
// Used in tests to avoid throttling against httptest servers.
func NewClientWithLimiter(svc *gmail.Service, limiter *google.RateLimiter) *Client {
	return &Client{
		svc:     svc,
		limiter: limiter,
		userID:  DefaultUserID,
	}
}

// Service returns the underlying Gmail API service.
func (c *Client) Service() *gmail.Service {
	return c.svc
}

// wait blocks on the rate limiter before a request is issued.
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// Profile returns the authenticated user's address and mailbox counters.
func (c *Client) Profile(ctx context.Context) (*gmail.Profile, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	profile, err := c.svc.Users.GetProfile(c.userID).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return profile, nil
}
