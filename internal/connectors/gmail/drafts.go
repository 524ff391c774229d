package gmail

import (
	"context"
	"encoding/base64"

	"google.golang.org/api/gmail/v1"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// ListDrafts returns one page of drafts.
func (c *Client) ListDrafts(ctx context.Context, maxResults int64, pageToken string) (*gmail.ListDraftsResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Users.Drafts.List(c.userID).Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp, nil
}

// GetDraft fetches a draft including its message.
func (c *Client) GetDraft(ctx context.Context, id string) (*gmail.Draft, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	draft, err := c.svc.Users.Drafts.Get(c.userID, id).Format(FormatFull).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return draft, nil
}

// CreateDraft creates a draft from a raw RFC 2822 message.
func (c *Client) CreateDraft(ctx context.Context, raw []byte, threadID string) (*gmail.Draft, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	draft := &gmail.Draft{
		Message: &gmail.Message{
			Raw:      base64.URLEncoding.EncodeToString(raw),
			ThreadId: threadID,
		},
	}
	created, err := c.svc.Users.Drafts.Create(c.userID, draft).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// UpdateDraft replaces a draft's message with a new raw payload.
func (c *Client) UpdateDraft(ctx context.Context, id string, raw []byte, threadID string) (*gmail.Draft, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	draft := &gmail.Draft{
		Message: &gmail.Message{
			Raw:      base64.URLEncoding.EncodeToString(raw),
			ThreadId: threadID,
		},
	}
	updated, err := c.svc.Users.Drafts.Update(c.userID, id, draft).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return updated, nil
}

// DeleteDraft discards a draft.
func (c *Client) DeleteDraft(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Users.Drafts.Delete(c.userID, id).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}

// SendDraft sends an existing draft as-is.
func (c *Client) SendDraft(ctx context.Context, id string) (*gmail.Message, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	msg, err := c.svc.Users.Drafts.Send(c.userID, &gmail.Draft{Id: id}).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return msg, nil
}
