package youtube

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/youtube/v3"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// Client wraps the YouTube API service with rate limiting, typed
// errors, and a resumable uploader.
type Client struct {
	svc     *youtube.Service
	limiter *google.RateLimiter

	// httpClient performs resumable upload requests and must carry the
	// same credentials as svc.
	httpClient *http.Client
	uploadURL  string
}

// NewClient creates a YouTube client around an existing API service.
// httpClient authorises the resumable upload requests; pass nil if
// uploads are not needed.
func NewClient(svc *youtube.Service, httpClient *http.Client) *Client {
	return &Client{
		svc:        svc,
		limiter:    google.NewRateLimiter(google.ServiceYouTube),
		httpClient: httpClient,
		uploadURL:  DefaultUploadURL,
	}
}

// NewClientWithLimiter creates a YouTube client with a custom rate
// limiter and upload endpoint. Used in tests.
func NewClientWithLimiter(svc *youtube.Service, httpClient *http.Client, limiter *google.RateLimiter, uploadURL string) *Client {
	return &Client{
		svc:        svc,
		limiter:    limiter,
		httpClient: httpClient,
		uploadURL:  uploadURL,
	}
}

// Service returns the underlying YouTube API service.
func (c *Client) Service() *youtube.Service {
	return c.svc
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
