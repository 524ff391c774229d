// Package webflow wraps the Webflow Data API v2 behind a typed client:
// sites, collections, CMS items, and publishing.
package webflow
