package drive

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// Client wraps the Drive API service with rate limiting and typed
// errors.
type Client struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// NewClient creates a Drive client around an existing API service.
func NewClient(svc *drive.Service) *Client {
	return &Client{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDrive),
	}
}

// NewClientWithLimiter creates a Drive client with a custom rate
// limiter. Used in tests.
func NewClientWithLimiter(svc *drive.Service, limiter *google.RateLimiter) *Client {
	return &Client{
		svc:     svc,
		limiter: limiter,
	}
}

// Service returns the underlying Drive API service.
func (c *Client) Service() *drive.Service {
	return c.svc
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// About returns the user and storage quota attached to the credentials.
func (c *Client) About(ctx context.Context) (*drive.About, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	about, err := c.svc.About.Get().Fields(googleapi.Field("user, storageQuota")).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return about, nil
}

// ListSharedDrives drains the shared drives the user can access.
func (c *Client) ListSharedDrives(ctx context.Context) ([]*drive.Drive, error) {
	var all []*drive.Drive
	pageToken := ""

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Drives.List().PageSize(100).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, google.WrapError(err)
		}
		all = append(all, resp.Drives...)

		if resp.NextPageToken == "" {
			return all, nil
		}
		pageToken = resp.NextPageToken
	}
}
