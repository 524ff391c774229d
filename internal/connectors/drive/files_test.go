package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultExportMime(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		want     string
	}{
		{name: "google doc exports as text", mimeType: MimeTypeGoogleDoc, want: ExportMimeText},
		{name: "google sheet exports as csv", mimeType: MimeTypeGoogleSheet, want: ExportMimeCSV},
		{name: "google slides export as text", mimeType: MimeTypeGoogleSlides, want: ExportMimeText},
		{name: "binary file has no export format", mimeType: "image/png", want: ""},
		{name: "folder has no export format", mimeType: MimeTypeFolder, want: ""},
		{name: "empty mime type", mimeType: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultExportMime(tt.mimeType))
		})
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain name untouched", in: "Reports", want: "Reports"},
		{name: "single quote escaped", in: "Bob's files", want: `Bob\'s files`},
		{name: "backslash escaped", in: `a\b`, want: `a\\b`},
		{name: "backslash before quote", in: `a\'b`, want: `a\\\'b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeQuery(tt.in))
		})
	}
}
