// Package drive wraps the Google Drive API v3 behind a typed client:
// files (list, download, export, upload, move, trash), folders,
// permissions, and shared drives.
package drive
