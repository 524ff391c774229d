package tiktok

import (
	"context"
	"net/url"
	"strconv"
)

// Pixel is a TikTok tracking pixel.
type Pixel struct {
	PixelID   string       `json:"pixel_id"`
	PixelName string       `json:"pixel_name"`
	PixelCode string       `json:"pixel_code"`
	Events    []PixelEvent `json:"events"`
}

// PixelEvent is one event configured on a pixel.
type PixelEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Name      string `json:"name"`
}

type pixelList struct {
	Pixels   []Pixel  `json:"pixels"`
	PageInfo PageInfo `json:"page_info"`
}

// ListPixels returns one page of pixels for an advertiser.
func (c *Client) ListPixels(ctx context.Context, advertiserID string, page, pageSize int64) ([]Pixel, *PageInfo, error) {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)
	if page > 0 {
		params.Set("page", strconv.FormatInt(page, 10))
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.FormatInt(pageSize, 10))
	}

	var data pixelList
	if err := c.get(ctx, "/pixel/list/", params, &data); err != nil {
		return nil, nil, err
	}
	return data.Pixels, &data.PageInfo, nil
}

// CreatePixel creates a pixel and returns it with its embed code.
func (c *Client) CreatePixel(ctx context.Context, advertiserID, name string) (*Pixel, error) {
	body := map[string]string{
		"advertiser_id": advertiserID,
		"pixel_name":    name,
	}

	var data Pixel
	if err := c.post(ctx, "/pixel/create/", body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// PixelStatsRow is one day of event statistics for a pixel.
type PixelStatsRow struct {
	PixelID   string `json:"pixel_id"`
	Date      string `json:"date"`
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// GetPixelEventStats returns daily event counts for the given pixels.
func (c *Client) GetPixelEventStats(ctx context.Context, advertiserID string, pixelIDs []string, startDate, endDate string) ([]PixelStatsRow, error) {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)
	params.Set("pixel_ids", jsonParam(pixelIDs))
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	var data struct {
		List []PixelStatsRow `json:"list"`
	}
	if err := c.get(ctx, "/pixel/event/stats/", params, &data); err != nil {
		return nil, err
	}
	return data.List, nil
}
