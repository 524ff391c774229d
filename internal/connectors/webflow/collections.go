package webflow

import (
	"context"
	"fmt"
)

// Collection is a CMS collection on a site.
type Collection struct {
	ID           string  `json:"id"`
	DisplayName  string  `json:"displayName"`
	SingularName string  `json:"singularName"`
	Slug         string  `json:"slug"`
	CreatedOn    string  `json:"createdOn"`
	LastUpdated  string  `json:"lastUpdated"`
	Fields       []Field `json:"fields"`
}

// Field is one field in a collection schema.
type Field struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Slug        string `json:"slug"`
	Type        string `json:"type"`
	IsRequired  bool   `json:"isRequired"`
	IsEditable  bool   `json:"isEditable"`
}

// ListCollections returns the collections on a site.
func (c *Client) ListCollections(ctx context.Context, siteID string) ([]Collection, error) {
	var data struct {
		Collections []Collection `json:"collections"`
	}
	if err := c.get(ctx, fmt.Sprintf("/sites/%s/collections", siteID), nil, &data); err != nil {
		return nil, err
	}
	return data.Collections, nil
}

// GetCollection fetches a collection including its field schema.
func (c *Client) GetCollection(ctx context.Context, collectionID string) (*Collection, error) {
	var collection Collection
	if err := c.get(ctx, "/collections/"+collectionID, nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// CreateCollection creates a collection on a site.
func (c *Client) CreateCollection(ctx context.Context, siteID, displayName, singularName, slug string) (*Collection, error) {
	body := map[string]string{
		"displayName":  displayName,
		"singularName": singularName,
	}
	if slug != "" {
		body["slug"] = slug
	}

	var collection Collection
	if err := c.post(ctx, fmt.Sprintf("/sites/%s/collections", siteID), body, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// DeleteCollection removes a collection and all of its items.
func (c *Client) DeleteCollection(ctx context.Context, collectionID string) error {
	return c.delete(ctx, "/collections/"+collectionID)
}
