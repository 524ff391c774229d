package youtube

import (
	"context"
	"io"

	"google.golang.org/api/youtube/v3"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// ListCaptions returns the caption tracks of a video.
func (c *Client) ListCaptions(ctx context.Context, videoID string) ([]*youtube.Caption, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp.Items, nil
}

// DownloadCaption downloads a caption track's content.
func (c *Client) DownloadCaption(ctx context.Context, captionID string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Captions.Download(captionID).Context(ctx).Download()
	if err != nil {
		return nil, google.WrapError(err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// UploadCaption attaches a new caption track to a video.
func (c *Client) UploadCaption(ctx context.Context, videoID, language, name string, media io.Reader) (*youtube.Caption, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	caption := &youtube.Caption{
		Snippet: &youtube.CaptionSnippet{
			VideoId:  videoID,
			Language: language,
			Name:     name,
		},
	}
	created, err := c.svc.Captions.Insert([]string{"snippet"}, caption).Media(media).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// DeleteCaption removes a caption track.
func (c *Client) DeleteCaption(ctx context.Context, captionID string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Captions.Delete(captionID).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}
