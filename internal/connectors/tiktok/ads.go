package tiktok

import (
	"context"
	"net/url"
	"strconv"
)

// Ad is a single TikTok ad creative placement.
type Ad struct {
	AdID            string   `json:"ad_id"`
	AdName          string   `json:"ad_name"`
	AdvertiserID    string   `json:"advertiser_id"`
	CampaignID      string   `json:"campaign_id"`
	AdgroupID       string   `json:"adgroup_id"`
	OperationStatus string   `json:"operation_status"`
	SecondaryStatus string   `json:"secondary_status"`
	AdFormat        string   `json:"ad_format"`
	AdText          string   `json:"ad_text"`
	CallToAction    string   `json:"call_to_action"`
	LandingPageURL  string   `json:"landing_page_url"`
	VideoID         string   `json:"video_id"`
	ImageIDs        []string `json:"image_ids"`
	CreateTime      string   `json:"create_time"`
	ModifyTime      string   `json:"modify_time"`
}

// Creative is one creative inside an ad create/update request.
type Creative struct {
	AdName         string   `json:"ad_name"`
	AdFormat       string   `json:"ad_format,omitempty"`
	AdText         string   `json:"ad_text,omitempty"`
	CallToAction   string   `json:"call_to_action,omitempty"`
	LandingPageURL string   `json:"landing_page_url,omitempty"`
	VideoID        string   `json:"video_id,omitempty"`
	ImageIDs       []string `json:"image_ids,omitempty"`
	IdentityID     string   `json:"identity_id,omitempty"`
	IdentityType   string   `json:"identity_type,omitempty"`
}

// AdSpec describes ads to create or update under one ad group.
type AdSpec struct {
	AdvertiserID string     `json:"advertiser_id"`
	AdgroupID    string     `json:"adgroup_id"`
	Creatives    []Creative `json:"creatives"`
}

type adList struct {
	List     []Ad     `json:"list"`
	PageInfo PageInfo `json:"page_info"`
}

// GetAds returns one page of ads, optionally scoped to ad groups.
func (c *Client) GetAds(ctx context.Context, advertiserID string, adgroupIDs []string, page, pageSize int64) ([]Ad, *PageInfo, error) {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)
	if len(adgroupIDs) > 0 {
		params.Set("filtering", jsonParam(map[string]any{"adgroup_ids": adgroupIDs}))
	}
	if page > 0 {
		params.Set("page", strconv.FormatInt(page, 10))
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.FormatInt(pageSize, 10))
	}

	var data adList
	if err := c.get(ctx, "/ad/get/", params, &data); err != nil {
		return nil, nil, err
	}
	return data.List, &data.PageInfo, nil
}

// ListAllAds drains every page of the ad listing.
func (c *Client) ListAllAds(ctx context.Context, advertiserID string, adgroupIDs []string) ([]Ad, error) {
	var all []Ad
	page := int64(1)

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		ads, info, err := c.GetAds(ctx, advertiserID, adgroupIDs, page, 100)
		if err != nil {
			return nil, err
		}
		all = append(all, ads...)

		if !info.HasNext() {
			return all, nil
		}
		page = info.Page + 1
	}
}

// CreateAds creates ads under an ad group and returns the new ad IDs.
func (c *Client) CreateAds(ctx context.Context, spec AdSpec) ([]string, error) {
	var data struct {
		AdIDs []string `json:"ad_ids"`
	}
	if err := c.post(ctx, "/ad/create/", spec, &data); err != nil {
		return nil, err
	}
	return data.AdIDs, nil
}

// UpdateAds updates ad creatives in place.
func (c *Client) UpdateAds(ctx context.Context, spec AdSpec) error {
	return c.post(ctx, "/ad/update/", spec, nil)
}

// UpdateAdStatus enables, disables, or deletes ads.
func (c *Client) UpdateAdStatus(ctx context.Context, advertiserID string, adIDs []string, status string) error {
	body := statusUpdate{
		AdvertiserID:    advertiserID,
		AdIDs:           adIDs,
		OperationStatus: status,
	}
	return c.post(ctx, "/ad/status/update/", body, nil)
}
