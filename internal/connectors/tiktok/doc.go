// Package tiktok wraps the TikTok Marketing API v1.3 behind a typed
// client: campaigns, ad groups, ads, integrated reports, and pixels.
// Every response travels in the vendor's {code, message, request_id,
// data} envelope; a non-zero code is surfaced as an APIError.
package tiktok
