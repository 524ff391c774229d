package youtube

import (
	"context"

	"google.golang.org/api/youtube/v3"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// maxPlaylistPage is the largest page size the playlist endpoints accept.
const maxPlaylistPage = 50

// ListPlaylists drains the authenticated user's playlists, or a
// channel's when channelID is set.
func (c *Client) ListPlaylists(ctx context.Context, channelID string) ([]*youtube.Playlist, error) {
	var all []*youtube.Playlist
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

		call := c.svc.Playlists.List([]string{"snippet", "status", "contentDetails"}).
			MaxResults(maxPlaylistPage).
			Context(ctx)
		if channelID != "" {
			call = call.ChannelId(channelID)
		} else {
			call = call.Mine(true)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, google.WrapError(err)
		}
		all = append(all, resp.Items...)

		if resp.NextPageToken == "" {
			return all, nil
		}
		pageToken = resp.NextPageToken
	}
}

// CreatePlaylist creates a playlist with the given privacy status.
func (c *Client) CreatePlaylist(ctx context.Context, title, description, privacyStatus string) (*youtube.Playlist, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	playlist := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
		Status: &youtube.PlaylistStatus{
			PrivacyStatus: privacyStatus,
		},
	}
	created, err := c.svc.Playlists.Insert([]string{"snippet", "status"}, playlist).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// UpdatePlaylist renames a playlist and updates its description.
func (c *Client) UpdatePlaylist(ctx context.Context, id, title, description string) (*youtube.Playlist, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	playlist := &youtube.Playlist{
		Id: id,
		Snippet: &youtube.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
	}
	updated, err := c.svc.Playlists.Update([]string{"snippet"}, playlist).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return updated, nil
}

// DeletePlaylist removes a playlist (its videos are untouched).
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Playlists.Delete(id).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}

// ListPlaylistItems drains the items of a playlist.
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID string) ([]*youtube.PlaylistItem, error) {
	var all []*youtube.PlaylistItem
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

		call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(maxPlaylistPage).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, google.WrapError(err)
		}
		all = append(all, resp.Items...)

		if resp.NextPageToken == "" {
			return all, nil
		}
		pageToken = resp.NextPageToken
	}
}

// AddPlaylistItem appends a video to a playlist.
func (c *Client) AddPlaylistItem(ctx context.Context, playlistID, videoID string) (*youtube.PlaylistItem, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}
	added, err := c.svc.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return added, nil
}

// RemovePlaylistItem removes an item (by playlist item ID, not video ID).
func (c *Client) RemovePlaylistItem(ctx context.Context, itemID string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.PlaylistItems.Delete(itemID).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}
