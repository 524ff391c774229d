package gmail

import (
	"context"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// Label visibility values accepted by the API.
const (
	LabelShow         = "labelShow"
	LabelHide         = "labelHide"
	LabelShowIfUnread = "labelShowIfUnread"
	MessageShow       = "show"
	MessageHide       = "hide"
)

// ListLabels returns all labels in the mailbox (system and user).
func (c *Client) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Users.Labels.List(c.userID).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp.Labels, nil
}

// GetLabel fetches a single label with its message counts.
func (c *Client) GetLabel(ctx context.Context, id string) (*gmail.Label, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	label, err := c.svc.Users.Labels.Get(c.userID, id).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return label, nil
}

// CreateLabel creates a user label with default visibility.
func (c *Client) CreateLabel(ctx context.Context, name string) (*gmail.Label, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	label := &gmail.Label{
		Name:                  name,
		LabelListVisibility:   LabelShow,
		MessageListVisibility: MessageShow,
	}
	created, err := c.svc.Users.Labels.Create(c.userID, label).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// UpdateLabel renames a label.
func (c *Client) UpdateLabel(ctx context.Context, id, name string) (*gmail.Label, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	updated, err := c.svc.Users.Labels.Patch(c.userID, id, &gmail.Label{Name: name}).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return updated, nil
}

// DeleteLabel removes a user label. System labels cannot be deleted.
func (c *Client) DeleteLabel(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Users.Labels.Delete(c.userID, id).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}

// ResolveLabelID maps a label name to its ID. Lookup is by exact name,
// falling back to a case-insensitive match the way the Gmail UI does.
func (c *Client) ResolveLabelID(ctx context.Context, name string) (string, error) {
	labels, err := c.ListLabels(ctx)
	if err != nil {
		return "", err
	}

	for _, l := range labels {
		if l.Name == name {
			return l.Id, nil
		}
	}
	for _, l := range labels {
		if strings.EqualFold(l.Name, name) {
			return l.Id, nil
		}
	}
	return "", google.ErrNotFound
}
