// Package google provides plumbing shared by the Google-backed
// connectors (Gmail, Drive, YouTube): service construction, token
// source adaptation, rate limiting, and error classification.
package google
