package gmail

import (
	"context"
	"sync"

	"google.golang.org/api/gmail/v1"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
	"github.com/conduit-labs/conduit-cli/internal/logger"
)

const (
	// DefaultChunkSize is the number of concurrent per-message calls in
	// one bulk chunk. Chunk N completes before chunk N+1 starts.
	DefaultChunkSize = 50

	// MaxBatchIDs is the vendor cap on IDs per batchModify/batchDelete
	// call.
	MaxBatchIDs = 1000
)

// BulkFailure records one message that a bulk operation could not touch.
type BulkFailure struct {
	ID  string
	Err error
}

// BulkResult summarises a bulk operation.
type BulkResult struct {
	Total     int
	Succeeded int
	Failures  []BulkFailure
}

// BulkOptions selects the messages a bulk operation applies to and how
// it runs.
type BulkOptions struct {
	// Query selects messages by Gmail search query.
	Query string
	// LabelIDs further restricts matches.
	LabelIDs []string
	// Max caps how many messages are touched; 0 means all matches.
	Max int
	// ChunkSize bounds per-chunk fan-out (default DefaultChunkSize).
	ChunkSize int
	// AddLabelIDs / RemoveLabelIDs apply to BulkModify only.
	AddLabelIDs    []string
	RemoveLabelIDs []string
	// UseBatch routes modify/delete through the native batch endpoints
	// (up to 1000 IDs per call, no per-item failure reporting).
	UseBatch bool
}

// BulkModify applies label changes to every message matching the query.
func (c *Client) BulkModify(ctx context.Context, opts BulkOptions) (*BulkResult, error) {
	ids, err := c.SearchMessageIDs(ctx, opts.Query, opts.LabelIDs, opts.Max)
	if err != nil {
		return nil, err
	}

	if opts.UseBatch {
		return c.batchApply(ctx, ids, func(ctx context.Context, chunk []string) error {
			req := &gmail.BatchModifyMessagesRequest{
				Ids:            chunk,
				AddLabelIds:    opts.AddLabelIDs,
				RemoveLabelIds: opts.RemoveLabelIDs,
			}
			if err := c.wait(ctx); err != nil {
				return err
			}
			return google.WrapError(c.svc.Users.Messages.BatchModify(c.userID, req).Context(ctx).Do())
		})
	}

	return c.bulkApply(ctx, ids, opts.ChunkSize, func(ctx context.Context, id string) error {
		_, err := c.ModifyMessage(ctx, id, opts.AddLabelIDs, opts.RemoveLabelIDs)
		return err
	})
}

// BulkTrash moves every matching message to the trash. There is no
// native batch endpoint for trashing, so this is always per-item.
func (c *Client) BulkTrash(ctx context.Context, opts BulkOptions) (*BulkResult, error) {
	ids, err := c.SearchMessageIDs(ctx, opts.Query, opts.LabelIDs, opts.Max)
	if err != nil {
		return nil, err
	}

	return c.bulkApply(ctx, ids, opts.ChunkSize, func(ctx context.Context, id string) error {
		_, err := c.TrashMessage(ctx, id)
		return err
	})
}

// BulkDelete permanently deletes every matching message.
func (c *Client) BulkDelete(ctx context.Context, opts BulkOptions) (*BulkResult, error) {
	ids, err := c.SearchMessageIDs(ctx, opts.Query, opts.LabelIDs, opts.Max)
	if err != nil {
		return nil, err
	}

	if opts.UseBatch {
		return c.batchApply(ctx, ids, func(ctx context.Context, chunk []string) error {
			req := &gmail.BatchDeleteMessagesRequest{Ids: chunk}
			if err := c.wait(ctx); err != nil {
				return err
			}
			return google.WrapError(c.svc.Users.Messages.BatchDelete(c.userID, req).Context(ctx).Do())
		})
	}

	return c.bulkApply(ctx, ids, opts.ChunkSize, c.DeleteMessage)
}

// bulkApply runs op once per ID with bounded fan-out: each chunk runs
// concurrently, and a chunk must finish before the next one starts.
// Per-item failures are collected, not fatal.
func (c *Client) bulkApply(
	ctx context.Context, ids []string, chunkSize int, op func(context.Context, string) error,
) (*BulkResult, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	result := &BulkResult{Total: len(ids)}
	if len(ids) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	for _, chunk := range chunkIDs(ids, chunkSize) {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var wg sync.WaitGroup
		for _, id := range chunk {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				if err := op(ctx, id); err != nil {
					mu.Lock()
					result.Failures = append(result.Failures, BulkFailure{ID: id, Err: err})
					mu.Unlock()
					return
				}
				mu.Lock()
				result.Succeeded++
				mu.Unlock()
			}(id)
		}
		wg.Wait()
		logger.Debug("gmail: bulk chunk done, %d/%d succeeded", result.Succeeded, result.Total)
	}

	return result, nil
}

// batchApply runs a native batch endpoint over chunks of at most
// MaxBatchIDs. A failed call fails all IDs in its chunk.
func (c *Client) batchApply(
	ctx context.Context, ids []string, op func(context.Context, []string) error,
) (*BulkResult, error) {
	result := &BulkResult{Total: len(ids)}
	if len(ids) == 0 {
		return result, nil
	}

	for _, chunk := range chunkIDs(ids, MaxBatchIDs) {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := op(ctx, chunk); err != nil {
			for _, id := range chunk {
				result.Failures = append(result.Failures, BulkFailure{ID: id, Err: err})
			}
			continue
		}
		result.Succeeded += len(chunk)
	}

	return result, nil
}

// chunkIDs partitions ids into fixed-size chunks; the last chunk may be
// short.
func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
