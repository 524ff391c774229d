package youtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

func testUploadClient(uploadURL string) *Client {
	limiter := google.NewRateLimiterWithConfig(google.RateLimitConfig{
		RequestsPerSecond: 1000,
		BurstSize:         1000,
	})
	return NewClientWithLimiter(nil, http.DefaultClient, limiter, uploadURL)
}

func TestStartResumableUpload(t *testing.T) {
	var gotQuery, gotLength string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotLength = r.Header.Get("X-Upload-Content-Length")
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Location", "http://session.example/upload-session")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := testUploadClient(srv.URL)
	sessionURL, err := client.StartResumableUpload(context.Background(), UploadSpec{
		Title:         "clip",
		PrivacyStatus: "private",
	}, 1024)

	require.NoError(t, err)
	assert.Equal(t, "http://session.example/upload-session", sessionURL)
	assert.Contains(t, gotQuery, "uploadType=resumable")
	assert.Contains(t, gotQuery, "part=snippet,status")
	assert.Equal(t, "1024", gotLength)
}

func TestStartResumableUpload_MissingLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := testUploadClient(srv.URL)
	_, err := client.StartResumableUpload(context.Background(), UploadSpec{Title: "clip"}, 10)

	assert.ErrorContains(t, err, "Location")
}

func TestStartResumableUpload_NoHTTPClient(t *testing.T) {
	limiter := google.NewRateLimiterWithConfig(google.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1000})
	client := NewClientWithLimiter(nil, nil, limiter, DefaultUploadURL)

	_, err := client.StartResumableUpload(context.Background(), UploadSpec{}, 0)
	assert.ErrorIs(t, err, ErrNoUploadClient)
}

func TestUploadChunks_MultipleChunks(t *testing.T) {
	// Three chunks: two full 256 KiB chunks plus a 100-byte tail.
	total := 2*UploadChunkSize + 100
	data := bytes.Repeat([]byte{0xAB}, total)

	var ranges []string
	received := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		ranges = append(ranges, r.Header.Get("Content-Range"))

		chunk, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received += len(chunk)

		if received < total {
			w.Header().Set("Range", fmt.Sprintf("bytes=0-%d", received-1))
			w.WriteHeader(308)
			return
		}
		fmt.Fprint(w, `{"id":"vid-123"}`)
	}))
	defer srv.Close()

	client := testUploadClient(srv.URL)
	video, err := client.UploadChunks(context.Background(), srv.URL, data)

	require.NoError(t, err)
	assert.Equal(t, "vid-123", video.Id)
	assert.Equal(t, total, received)

	require.Len(t, ranges, 3)
	assert.Equal(t, fmt.Sprintf("bytes 0-%d/%d", UploadChunkSize-1, total), ranges[0])
	assert.Equal(t, fmt.Sprintf("bytes %d-%d/%d", UploadChunkSize, 2*UploadChunkSize-1, total), ranges[1])
	assert.Equal(t, fmt.Sprintf("bytes %d-%d/%d", 2*UploadChunkSize, total-1, total), ranges[2])
}

func TestUploadChunks_ResendAfterMissingRange(t *testing.T) {
	data := bytes.Repeat([]byte{0x01}, 100)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// 308 without a Range header: nothing was persisted, the
			// client must re-send from the same offset.
			w.WriteHeader(308)
			return
		}
		assert.Equal(t, "bytes 0-99/100", r.Header.Get("Content-Range"))
		fmt.Fprint(w, `{"id":"vid-retry"}`)
	}))
	defer srv.Close()

	client := testUploadClient(srv.URL)
	video, err := client.UploadChunks(context.Background(), srv.URL, data)

	require.NoError(t, err)
	assert.Equal(t, "vid-retry", video.Id)
	assert.Equal(t, 2, calls)
}

func TestUploadChunks_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "quota exceeded")
	}))
	defer srv.Close()

	client := testUploadClient(srv.URL)
	_, err := client.UploadChunks(context.Background(), srv.URL, []byte("data"))

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, http.StatusForbidden, uploadErr.StatusCode)
	assert.Equal(t, srv.URL, uploadErr.SessionURL)
	assert.Contains(t, uploadErr.Message, "quota exceeded")
}

func TestParseRangeEnd(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantEnd int64
		wantOK  bool
	}{
		{name: "normal range", header: "bytes=0-262143", wantEnd: 262143, wantOK: true},
		{name: "empty header", header: "", wantOK: false},
		{name: "malformed", header: "garbage", wantOK: false},
		{name: "non-numeric end", header: "bytes=0-x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := parseRangeEnd(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantEnd, end)
			}
		})
	}
}
