package drive

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
	"github.com/conduit-labs/conduit-cli/internal/logger"
)

// Google Workspace MIME types that must be exported, not downloaded.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = "application/vnd.google-apps.folder"
)

// Default export formats for Workspace files.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
	ExportMimePDF  = "application/pdf"
)

// fileFields is the field mask requested on file resources.
const fileFields = "id, name, mimeType, size, parents, modifiedTime, webViewLink, trashed"

// ListOptions controls a file listing.
type ListOptions struct {
	// Query is a Drive search query ("name contains 'report'", etc).
	Query string
	// DriveID scopes the listing to one shared drive.
	DriveID string
	// PageSize caps one page (up to 1000).
	PageSize int64
	// PageToken resumes a previous listing.
	PageToken string
}

// ListFiles returns one page of files matching the options.
func (c *Client) ListFiles(ctx context.Context, opts ListOptions) (*drive.FileList, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	call := c.svc.Files.List().
		PageSize(pageSize).
		Fields(googleapi.Field("nextPageToken, files(" + fileFields + ")")).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx)
	if opts.Query != "" {
		call = call.Q(opts.Query)
	}
	if opts.DriveID != "" {
		call = call.DriveId(opts.DriveID).Corpora("drive")
	}
	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return resp, nil
}

// ListAllFiles drains the file listing for a query.
func (c *Client) ListAllFiles(ctx context.Context, opts ListOptions) ([]*drive.File, error) {
	var all []*drive.File

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		resp, err := c.ListFiles(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Files...)
		logger.Debug("drive: collected %d files so far", len(all))

		if resp.NextPageToken == "" {
			return all, nil
		}
		opts.PageToken = resp.NextPageToken
	}
}

// GetFile fetches a file's metadata.
func (c *Client) GetFile(ctx context.Context, fileID string) (*drive.File, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	file, err := c.svc.Files.Get(fileID).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return file, nil
}

// DownloadFile streams a binary file's content to w. Workspace files
// must go through ExportFile instead.
func (c *Client) DownloadFile(ctx context.Context, fileID string, w io.Writer) (int64, error) {
	if err := c.wait(ctx); err != nil {
		return 0, err
	}

	resp, err := c.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return 0, google.WrapError(err)
	}
	defer resp.Body.Close()

	return io.Copy(w, resp.Body)
}

// ExportFile converts a Google Workspace file and streams the result to
// w. An empty exportMime picks a sensible default per source type.
func (c *Client) ExportFile(ctx context.Context, fileID, mimeType, exportMime string, w io.Writer) (int64, error) {
	if exportMime == "" {
		exportMime = DefaultExportMime(mimeType)
	}
	if exportMime == "" {
		return 0, fmt.Errorf("drive: no export format for %q", mimeType)
	}

	if err := c.wait(ctx); err != nil {
		return 0, err
	}

	resp, err := c.svc.Files.Export(fileID, exportMime).Context(ctx).Download()
	if err != nil {
		return 0, google.WrapError(err)
	}
	defer resp.Body.Close()

	return io.Copy(w, resp.Body)
}

// DefaultExportMime maps a Workspace MIME type to its default export
// format. Returns "" for types that download directly.
func DefaultExportMime(mimeType string) string {
	switch mimeType {
	case MimeTypeGoogleDoc:
		return ExportMimeText
	case MimeTypeGoogleSheet:
		return ExportMimeCSV
	case MimeTypeGoogleSlides:
		return ExportMimeText
	default:
		return ""
	}
}

// UploadFile creates a file from a reader, optionally under a parent
// folder.
func (c *Client) UploadFile(ctx context.Context, name, parentID, contentType string, media io.Reader) (*drive.File, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	meta := &drive.File{Name: name}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	call := c.svc.Files.Create(meta).SupportsAllDrives(true).Context(ctx)
	if contentType != "" {
		call = call.Media(media, googleapi.ContentType(contentType))
	} else {
		call = call.Media(media)
	}

	created, err := call.Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// RenameFile updates a file's name.
func (c *Client) RenameFile(ctx context.Context, fileID, name string) (*drive.File, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	updated, err := c.svc.Files.Update(fileID, &drive.File{Name: name}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return updated, nil
}

// MoveFile reparents a file.
func (c *Client) MoveFile(ctx context.Context, fileID, newParentID, oldParentID string) (*drive.File, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Files.Update(fileID, nil).
		AddParents(newParentID).
		SupportsAllDrives(true).
		Context(ctx)
	if oldParentID != "" {
		call = call.RemoveParents(oldParentID)
	}

	moved, err := call.Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return moved, nil
}

// CopyFile duplicates a file under a new name.
func (c *Client) CopyFile(ctx context.Context, fileID, name string) (*drive.File, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	copied, err := c.svc.Files.Copy(fileID, &drive.File{Name: name}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return copied, nil
}

// TrashFile moves a file to the trash.
func (c *Client) TrashFile(ctx context.Context, fileID string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	_, err := c.svc.Files.Update(fileID, &drive.File{Trashed: true}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	return google.WrapError(err)
}

// UntrashFile restores a file from the trash.
func (c *Client) UntrashFile(ctx context.Context, fileID string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	_, err := c.svc.Files.Update(fileID, &drive.File{Trashed: false}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	return google.WrapError(err)
}

// DeleteFile permanently deletes a file, bypassing the trash.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Files.Delete(fileID).SupportsAllDrives(true).Context(ctx).Do(); err != nil {
		return google.WrapError(err)
	}
	return nil
}
