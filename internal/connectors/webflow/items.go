package webflow

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// defaultItemPage is the largest page the items endpoints accept.
const defaultItemPage = 100

// Item is a CMS item. FieldData carries the collection-specific fields
// untouched, keyed by field slug.
type Item struct {
	ID            string         `json:"id"`
	CmsLocaleID   string         `json:"cmsLocaleId,omitempty"`
	LastPublished string         `json:"lastPublished,omitempty"`
	LastUpdated   string         `json:"lastUpdated,omitempty"`
	CreatedOn     string         `json:"createdOn,omitempty"`
	IsArchived    bool           `json:"isArchived"`
	IsDraft       bool           `json:"isDraft"`
	FieldData     map[string]any `json:"fieldData"`
}

// itemList is the payload of the item listing endpoints.
type itemList struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// ListItems returns one page of items in a collection.
func (c *Client) ListItems(ctx context.Context, collectionID string, offset, limit int64) ([]Item, *Pagination, error) {
	params := url.Values{}
	if offset > 0 {
		params.Set("offset", strconv.FormatInt(offset, 10))
	}
	if limit > 0 {
		params.Set("limit", strconv.FormatInt(limit, 10))
	}

	var data itemList
	if err := c.get(ctx, fmt.Sprintf("/collections/%s/items", collectionID), params, &data); err != nil {
		return nil, nil, err
	}
	return data.Items, &data.Pagination, nil
}

// ListAllItems drains the item listing for a collection.
func (c *Client) ListAllItems(ctx context.Context, collectionID string) ([]Item, error) {
	var all []Item
	offset := int64(0)

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		items, pagination, err := c.ListItems(ctx, collectionID, offset, defaultItemPage)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if !pagination.HasNext() {
			return all, nil
		}
		offset = pagination.Offset + pagination.Limit
	}
}

// GetItem fetches a single item.
func (c *Client) GetItem(ctx context.Context, collectionID, itemID string) (*Item, error) {
	var item Item
	if err := c.get(ctx, fmt.Sprintf("/collections/%s/items/%s", collectionID, itemID), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates a staged item in a collection.
func (c *Client) CreateItem(ctx context.Context, collectionID string, fieldData map[string]any, isDraft bool) (*Item, error) {
	body := map[string]any{
		"fieldData": fieldData,
		"isDraft":   isDraft,
	}

	var item Item
	if err := c.post(ctx, fmt.Sprintf("/collections/%s/items", collectionID), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem patches an item's fields.
func (c *Client) UpdateItem(ctx context.Context, collectionID, itemID string, fieldData map[string]any) (*Item, error) {
	body := map[string]any{
		"fieldData": fieldData,
	}

	var item Item
	if err := c.patch(ctx, fmt.Sprintf("/collections/%s/items/%s", collectionID, itemID), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes a staged item.
func (c *Client) DeleteItem(ctx context.Context, collectionID, itemID string) error {
	return c.delete(ctx, fmt.Sprintf("/collections/%s/items/%s", collectionID, itemID))
}

// PublishItemsResult reports which items the publish call accepted.
type PublishItemsResult struct {
	PublishedItemIDs []string `json:"publishedItemIds"`
	Errors           []string `json:"errors"`
}

// PublishItems publishes staged items to the live site.
func (c *Client) PublishItems(ctx context.Context, collectionID string, itemIDs []string) (*PublishItemsResult, error) {
	body := map[string]any{
		"itemIds": itemIDs,
	}

	var result PublishItemsResult
	if err := c.post(ctx, fmt.Sprintf("/collections/%s/items/publish", collectionID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLiveItem fetches the live (published) version of an item.
func (c *Client) GetLiveItem(ctx context.Context, collectionID, itemID string) (*Item, error) {
	var item Item
	if err := c.get(ctx, fmt.Sprintf("/collections/%s/items/%s/live", collectionID, itemID), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteLiveItem unpublishes an item from the live site, leaving the
// staged version intact.
func (c *Client) DeleteLiveItem(ctx context.Context, collectionID, itemID string) error {
	return c.delete(ctx, fmt.Sprintf("/collections/%s/items/%s/live", collectionID, itemID))
}
