package gmail

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
	"github.com/conduit-labs/conduit-cli/internal/logger"
)

// Message formats accepted by GetMessage.
const (
	FormatFull     = "full"
	FormatRaw      = "raw"
	FormatMetadata = "metadata"
	FormatMinimal  = "minimal"
)

// maxListPage is the largest page size the Gmail list endpoints accept.
const maxListPage = 500

// ListOptions controls a message or thread listing.
type ListOptions struct {
	// Query is a Gmail search query ("from:x is:unread", etc).
	Query string
	// LabelIDs restricts results to messages carrying all given labels.
	LabelIDs []string
	// MaxResults caps a single page (up to 500).
	MaxResults int64
	// PageToken resumes a previous listing.
	PageToken string
	// IncludeSpamTrash includes SPAM and TRASH messages.
	IncludeSpamTrash bool
}

// ListMessages returns one page of message stubs matching the options.
func (c *Client) ListMessages(ctx context.Context, opts ListOptions) (*gmail.ListMessagesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Users.Messages.List(c.userID).Context(ctx)
	if opts.Query != "" {
		call = call.Q(opts.Query)
	}
	if len(opts.LabelIDs) > 0 {
		call = call.LabelIds(opts.LabelIDs...)
	}
	if opts.MaxResults > 0 {
		call = call.MaxResults(opts.MaxResults)
	}
	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}
	if opts.IncludeSpamTrash {
		call = call.IncludeSpamTrash(true)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp, nil
}

// SearchMessageIDs drains the paginated message listing for a query and
// returns up to max matching IDs. A max of 0 means no cap.
func (c *Client) SearchMessageIDs(ctx context.Context, query string, labelIDs []string, max int) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		select {
		case <-ctx.Done():
			return ids, ctx.Err()
		default:
		}

		pageSize := int64(maxListPage)
		if max > 0 && max-len(ids) < maxListPage {
			pageSize = int64(max - len(ids))
		}

		resp, err := c.ListMessages(ctx, ListOptions{
			Query:      query,
			LabelIDs:   labelIDs,
			MaxResults: pageSize,
			PageToken:  pageToken,
		})
		if err != nil {
			return nil, err
		}

		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		logger.Debug("gmail: collected %d message IDs so far", len(ids))

		if max > 0 && len(ids) >= max {
			return ids[:max], nil
		}
		if resp.NextPageToken == "" {
			return ids, nil
		}
		pageToken = resp.NextPageToken
	}
}

// GetMessage fetches a single message in the given format.
func (c *Client) GetMessage(ctx context.Context, id, format string) (*gmail.Message, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Users.Messages.Get(c.userID, id).Context(ctx)
	if format != "" {
		call = call.Format(format)
	}

	msg, err := call.Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return msg, nil
}

// GetRawMessage fetches a message in raw format and decodes the RFC 2822
// payload.
func (c *Client) GetRawMessage(ctx context.Context, id string) ([]byte, error) {
	msg, err := c.GetMessage(ctx, id, FormatRaw)
	if err != nil {
		return nil, err
	}

	raw, err := base64.URLEncoding.DecodeString(msg.Raw)
	if err != nil {
		return nil, fmt.Errorf("decode raw message %s: %w", id, err)
	}
	return raw, nil
}

// ModifyMessage adds and removes labels on a single message.
func (c *Client) ModifyMessage(ctx context.Context, id string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req := &gmail.ModifyMessageRequest{
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}
	msg, err := c.svc.Users.Messages.Modify(c.userID, id, req).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return msg, nil
}

// TrashMessage moves a message to the trash.
func (c *Client) TrashMessage(ctx context.Context, id string) (*gmail.Message, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	msg, err := c.svc.Users.Messages.Trash(c.userID, id).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return msg, nil
}

// UntrashMessage restores a message from the trash.
func (c *Client) UntrashMessage(ctx context.Context, id string) (*gmail.Message, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	msg, err := c.svc.Users.Messages.Untrash(c.userID, id).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return msg, nil
}

// DeleteMessage permanently deletes a message, bypassing the trash.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Users.Messages.Delete(c.userID, id).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}

// SendMessage sends a raw RFC 2822 message. A non-empty threadID threads
// the message into an existing conversation.
func (c *Client) SendMessage(ctx context.Context, raw []byte, threadID string) (*gmail.Message, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	msg := &gmail.Message{
		Raw:      base64.URLEncoding.EncodeToString(raw),
		ThreadId: threadID,
	}
	sent, err := c.svc.Users.Messages.Send(c.userID, msg).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return sent, nil
}
