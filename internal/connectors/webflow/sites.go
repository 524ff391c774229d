package webflow

import (
	"context"
	"fmt"
)

// Site is a Webflow site.
type Site struct {
	ID            string         `json:"id"`
	WorkspaceID   string         `json:"workspaceId"`
	DisplayName   string         `json:"displayName"`
	ShortName     string         `json:"shortName"`
	PreviewURL    string         `json:"previewUrl"`
	TimeZone      string         `json:"timeZone"`
	CreatedOn     string         `json:"createdOn"`
	LastUpdated   string         `json:"lastUpdated"`
	LastPublished string         `json:"lastPublished"`
	CustomDomains []CustomDomain `json:"customDomains"`
}

// CustomDomain is a domain attached to a site.
type CustomDomain struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ListSites returns all sites the token can access.
func (c *Client) ListSites(ctx context.Context) ([]Site, error) {
	var data struct {
		Sites []Site `json:"sites"`
	}
	if err := c.get(ctx, "/sites", nil, &data); err != nil {
		return nil, err
	}
	return data.Sites, nil
}

// GetSite fetches a single site.
func (c *Client) GetSite(ctx context.Context, siteID string) (*Site, error) {
	var site Site
	if err := c.get(ctx, "/sites/"+siteID, nil, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// ListCustomDomains returns the custom domains registered on a site.
func (c *Client) ListCustomDomains(ctx context.Context, siteID string) ([]CustomDomain, error) {
	var data struct {
		CustomDomains []CustomDomain `json:"customDomains"`
	}
	if err := c.get(ctx, fmt.Sprintf("/sites/%s/custom_domains", siteID), nil, &data); err != nil {
		return nil, err
	}
	return data.CustomDomains, nil
}

// PublishResult reports what a site publish queued.
type PublishResult struct {
	PublishToWebflowSubdomain bool           `json:"publishToWebflowSubdomain"`
	CustomDomains             []CustomDomain `json:"customDomains"`
}

// PublishSite queues a publish of the site to its Webflow subdomain
// and, optionally, specific custom domains.
func (c *Client) PublishSite(ctx context.Context, siteID string, customDomainIDs []string) (*PublishResult, error) {
	body := map[string]any{
		"publishToWebflowSubdomain": true,
	}
	if len(customDomainIDs) > 0 {
		body["customDomains"] = customDomainIDs
	}

	var result PublishResult
	if err := c.post(ctx, fmt.Sprintf("/sites/%s/publish", siteID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
