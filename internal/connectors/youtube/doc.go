// Package youtube wraps the YouTube Data API v3 behind a typed client:
// videos, playlists, channels, captions, thumbnails, and resumable
// video upload. Metadata endpoints go through the generated API client;
// the upload path implements Google's resumable protocol directly so
// chunk sizing and offsets stay under caller control.
package youtube
