package gmail

import (
	"context"

	"google.golang.org/api/gmail/v1"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// ListThreads returns one page of threads matching the options.
func (c *Client) ListThreads(ctx context.Context, opts ListOptions) (*gmail.ListThreadsResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Users.Threads.List(c.userID).Context(ctx)
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

// GetThread fetches a thread with all of its messages.
func (c *Client) GetThread(ctx context.Context, id, format string) (*gmail.Thread, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Users.Threads.Get(c.userID, id).Context(ctx)
	if format != "" {
		call = call.Format(format)
	}

	thread, err := call.Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return thread, nil
}

// ModifyThread adds and removes labels on every message in a thread.
func (c *Client) ModifyThread(ctx context.Context, id string, addLabelIDs, removeLabelIDs []string) (*gmail.Thread, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req := &gmail.ModifyThreadRequest{
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}
	thread, err := c.svc.Users.Threads.Modify(c.userID, id, req).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return thread, nil
}

// TrashThread moves a whole thread to the trash.
func (c *Client) TrashThread(ctx context.Context, id string) (*gmail.Thread, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	thread, err := c.svc.Users.Threads.Trash(c.userID, id).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return thread, nil
}

// DeleteThread permanently deletes a thread and all of its messages.
func (c *Client) DeleteThread(ctx context.Context, id string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Users.Threads.Delete(c.userID, id).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}
