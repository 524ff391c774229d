package drive

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// CreateFolder creates a folder, optionally under a parent.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*drive.File, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	meta := &drive.File{
		Name:     name,
		MimeType: MimeTypeFolder,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	folder, err := c.svc.Files.Create(meta).SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return folder, nil
}

// ResolveFolderPath walks a slash-separated path ("Reports/2026/Q3")
// from the root and returns the ID of the final folder.
func (c *Client) ResolveFolderPath(ctx context.Context, path string) (string, error) {
	parentID := "root"

	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}

		query := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
			escapeQuery(segment), parentID, MimeTypeFolder)
		files, err := c.ListAllFiles(ctx, ListOptions{Query: query})
		if err != nil {
			return "", err
		}
		if len(files) == 0 {
			return "", fmt.Errorf("folder %q not found under parent %s: %w", segment, parentID, google.ErrNotFound)
		}
		parentID = files[0].Id
	}

	return parentID, nil
}

// escapeQuery escapes single quotes and backslashes inside a Drive
// query string literal.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
