package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/api/youtube/v3"

	"github.com/conduit-labs/conduit-cli/internal/logger"
)

const (
	// DefaultUploadURL is the resumable upload endpoint for videos.
	DefaultUploadURL = "https://www.googleapis.com/upload/youtube/v3/videos"

	// UploadChunkSize is the fixed chunk size. Google requires chunks
	// in multiples of 256 KiB except the final one.
	UploadChunkSize = 256 * 1024
)

// ErrNoUploadClient indicates the client was built without an
// authorised HTTP client for uploads.
var ErrNoUploadClient = errors.New("youtube: no HTTP client configured for uploads")

// UploadSpec carries the metadata of a video to upload.
type UploadSpec struct {
	Title             string
	Description       string
	Tags              []string
	CategoryID        string
	PrivacyStatus     string
	NotifySubscribers bool
}

// UploadError is an unexpected response during a resumable upload. The
// session URL allows the caller to resume or abandon the session.
type UploadError struct {
	StatusCode int
	SessionURL string
	Message    string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("youtube: upload failed with status %d: %s", e.StatusCode, e.Message)
}

// StartResumableUpload opens an upload session and returns its URL.
func (c *Client) StartResumableUpload(ctx context.Context, spec UploadSpec, totalSize int64) (string, error) {
	if c.httpClient == nil {
		return "", ErrNoUploadClient
	}
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       spec.Title,
			Description: spec.Description,
			Tags:        spec.Tags,
			CategoryId:  spec.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: spec.PrivacyStatus,
		},
	}
	body, err := json.Marshal(video)
	if err != nil {
		return "", fmt.Errorf("encode video metadata: %w", err)
	}

	reqURL := fmt.Sprintf("%s?uploadType=resumable&part=snippet,status&notifySubscribers=%t",
		c.uploadURL, spec.NotifySubscribers)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Upload-Content-Type", "video/*")
	req.Header.Set("X-Upload-Content-Length", strconv.FormatInt(totalSize, 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("start upload session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &UploadError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	sessionURL := resp.Header.Get("Location")
	if sessionURL == "" {
		return "", errors.New("youtube: upload session response missing Location header")
	}
	return sessionURL, nil
}

// UploadChunks sends the video data to an open session in fixed 256 KiB
// chunks, tracking byte offsets across the server's 308 responses, and
// returns the created video once the server answers 200 or 201.
func (c *Client) UploadChunks(ctx context.Context, sessionURL string, data []byte) (*youtube.Video, error) {
	if c.httpClient == nil {
		return nil, ErrNoUploadClient
	}

	total := int64(len(data))
	offset := int64(0)

	for offset < total {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		end := offset + UploadChunkSize
		if end > total {
			end = total
		}
		chunk := data[offset:end]

		req, err := http.NewRequestWithContext(ctx, http.MethodPut, sessionURL, bytes.NewReader(chunk))
		if err != nil {
			return nil, fmt.Errorf("create chunk request: %w", err)
		}
		req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, end-1, total))
		req.ContentLength = int64(len(chunk))

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("upload chunk at offset %d: %w", offset, err)
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			var video youtube.Video
			err := json.NewDecoder(resp.Body).Decode(&video)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("decode completed upload: %w", err)
			}
			logger.Info("youtube: upload complete, video %s", video.Id)
			return &video, nil

		case 308: // Resume Incomplete
			// The Range header reports what the server has; a missing
			// header means nothing new was persisted, so re-send from
			// the previous offset.
			if committed, ok := parseRangeEnd(resp.Header.Get("Range")); ok {
				offset = committed + 1
			}
			resp.Body.Close()
			logger.Debug("youtube: uploaded %d/%d bytes", offset, total)

		default:
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, &UploadError{
				StatusCode: resp.StatusCode,
				SessionURL: sessionURL,
				Message:    strings.TrimSpace(string(raw)),
			}
		}
	}

	return nil, &UploadError{SessionURL: sessionURL, Message: "upload ended without completion response"}
}

// UploadVideo opens a session and uploads the whole buffer.
func (c *Client) UploadVideo(ctx context.Context, spec UploadSpec, data []byte) (*youtube.Video, error) {
	sessionURL, err := c.StartResumableUpload(ctx, spec, int64(len(data)))
	if err != nil {
		return nil, err
	}
	return c.UploadChunks(ctx, sessionURL, data)
}

// parseRangeEnd extracts the last committed byte from a "bytes=0-N"
// Range header.
func parseRangeEnd(header string) (int64, bool) {
	if header == "" {
		return 0, false
	}
	header = strings.TrimPrefix(header, "bytes=")
	parts := strings.SplitN(header, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	end, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return end, true
}
