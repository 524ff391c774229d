package gmail

import (
	"context"

	"google.golang.org/api/gmail/v1"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// FilterSpec describes a filter to create: what to match and what to do.
type FilterSpec struct {
	From           string
	To             string
	Subject        string
	Query          string
	AddLabelIDs    []string
	RemoveLabelIDs []string
	Forward        string
}

// ListFilters returns the mailbox's filters.
func (c *Client) ListFilters(ctx context.Context) ([]*gmail.Filter, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Users.Settings.Filters.List(c.userID).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp.Filter, nil
}

// GetFilter fetches a single filter.
func (c *Client) GetFilter(ctx context.Context, id string) (*gmail.Filter, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	filter, err := c.svc.Users.Settings.Filters.Get(c.userID, id).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return filter, nil
}

// CreateFilter creates a filter from a spec.
func (c *Client) CreateFilter(ctx context.Context, spec FilterSpec) (*gmail.Filter, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	filter := &gmail.Filter{
		Criteria: &gmail.FilterCriteria{
			From:    spec.From,
			To:      spec.To,
			Subject: spec.Subject,
			Query:   spec.Query,
		},
		Action: &gmail.FilterAction{
			AddLabelIds:    spec.AddLabelIDs,
			RemoveLabelIds: spec.RemoveLabelIDs,
			Forward:        spec.Forward,
		},
	}
	created, err := c.svc.Users.Settings.Filters.Create(c.userID, filter).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// DeleteFilter removes a filter.
func (c *Client) DeleteFilter(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Users.Settings.Filters.Delete(c.userID, id).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}
