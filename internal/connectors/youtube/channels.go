package youtube

import (
	"context"

	"google.golang.org/api/youtube/v3"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

var channelParts = []string{"snippet", "statistics", "contentDetails"}

// GetMyChannel returns the authenticated user's channel.
func (c *Client) GetMyChannel(ctx context.Context) (*youtube.Channel, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Channels.List(channelParts).Mine(true).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	if len(resp.Items) == 0 {
		return nil, google.ErrNotFound
	}
	return resp.Items[0], nil
}

// GetChannels fetches channels by ID.
func (c *Client) GetChannels(ctx context.Context, ids []string) ([]*youtube.Channel, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Channels.List(channelParts).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp.Items, nil
}
