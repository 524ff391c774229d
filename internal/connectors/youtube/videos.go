package youtube

import (
	"context"
	"io"

	"google.golang.org/api/youtube/v3"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// Parts commonly requested from the videos endpoint.
var defaultVideoParts = []string{"snippet", "status", "statistics"}

// maxSearchPage is the largest page size the search endpoint accepts.
const maxSearchPage = 50

// ListVideos fetches full video resources by ID.
func (c *Client) ListVideos(ctx context.Context, ids []string) ([]*youtube.Video, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Videos.List(defaultVideoParts).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp.Items, nil
}

// SearchVideos searches the channel's (or all of YouTube's) videos and
// returns up to max results. A max of 0 drains all pages.
func (c *Client) SearchVideos(ctx context.Context, query, channelID string, max int) ([]*youtube.SearchResult, error) {
	var all []*youtube.SearchResult
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

		call := c.svc.Search.List([]string{"snippet"}).
			Type("video").
			MaxResults(maxSearchPage).
			Context(ctx)
		if query != "" {
			call = call.Q(query)
		}
		if channelID != "" {
			call = call.ChannelId(channelID)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, google.WrapError(err)
		}
		all = append(all, resp.Items...)

		if max > 0 && len(all) >= max {
			return all[:max], nil
		}
		if resp.NextPageToken == "" {
			return all, nil
		}
		pageToken = resp.NextPageToken
	}
}

// VideoUpdate carries the mutable snippet/status fields of a video.
type VideoUpdate struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
}

// UpdateVideo updates a video's snippet and status. Unset fields keep
// their current values, which requires fetching the video first since
// the API replaces the whole part.
func (c *Client) UpdateVideo(ctx context.Context, id string, update VideoUpdate) (*youtube.Video, error) {
	videos, err := c.ListVideos(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, google.ErrNotFound
	}
	video := videos[0]

	if update.Title != "" {
		video.Snippet.Title = update.Title
	}
	if update.Description != "" {
		video.Snippet.Description = update.Description
	}
	if update.Tags != nil {
		video.Snippet.Tags = update.Tags
	}
	if update.CategoryID != "" {
		video.Snippet.CategoryId = update.CategoryID
	}
	if update.PrivacyStatus != "" {
		if video.Status == nil {
			video.Status = &youtube.VideoStatus{}
		}
		video.Status.PrivacyStatus = update.PrivacyStatus
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	updated, err := c.svc.Videos.Update([]string{"snippet", "status"}, video).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return updated, nil
}

// DeleteVideo permanently removes a video.
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Videos.Delete(id).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}

// Ratings accepted by RateVideo.
const (
	RatingLike    = "like"
	RatingDislike = "dislike"
	RatingNone    = "none"
)

// RateVideo adds or removes the authenticated user's rating.
func (c *Client) RateVideo(ctx context.Context, id, rating string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Videos.Rate(id, rating).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}

// SetThumbnail uploads a custom thumbnail image for a video.
func (c *Client) SetThumbnail(ctx context.Context, videoID string, media io.Reader) (*youtube.ThumbnailSetResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Thumbnails.Set(videoID).Media(media).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp, nil
}
