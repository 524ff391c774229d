package tiktok

import (
	"context"
	"net/url"
	"strconv"
)

// AdGroup is a TikTok ad group (placement, audience, budget, schedule).
type AdGroup struct {
	AdgroupID         string  `json:"adgroup_id"`
	AdgroupName       string  `json:"adgroup_name"`
	AdvertiserID      string  `json:"advertiser_id"`
	CampaignID        string  `json:"campaign_id"`
	OperationStatus   string  `json:"operation_status"`
	SecondaryStatus   string  `json:"secondary_status"`
	BudgetMode        string  `json:"budget_mode"`
	Budget            float64 `json:"budget"`
	BidType           string  `json:"bid_type"`
	BidPrice          float64 `json:"bid_price"`
	OptimizationGoal  string  `json:"optimization_goal"`
	ScheduleType      string  `json:"schedule_type"`
	ScheduleStartTime string  `json:"schedule_start_time"`
	ScheduleEndTime   string  `json:"schedule_end_time"`
	CreateTime        string  `json:"create_time"`
	ModifyTime        string  `json:"modify_time"`
}

// AdGroupSpec describes an ad group to create or update.
type AdGroupSpec struct {
	AdvertiserID      string  `json:"advertiser_id"`
	AdgroupID         string  `json:"adgroup_id,omitempty"`
	CampaignID        string  `json:"campaign_id,omitempty"`
	AdgroupName       string  `json:"adgroup_name,omitempty"`
	BudgetMode        string  `json:"budget_mode,omitempty"`
	Budget            float64 `json:"budget,omitempty"`
	BidType           string  `json:"bid_type,omitempty"`
	BidPrice          float64 `json:"bid_price,omitempty"`
	OptimizationGoal  string  `json:"optimization_goal,omitempty"`
	ScheduleType      string  `json:"schedule_type,omitempty"`
	ScheduleStartTime string  `json:"schedule_start_time,omitempty"`
	ScheduleEndTime   string  `json:"schedule_end_time,omitempty"`
}

type adGroupList struct {
	List     []AdGroup `json:"list"`
	PageInfo PageInfo  `json:"page_info"`
}

// GetAdGroups returns one page of ad groups, optionally scoped to
// specific campaigns.
func (c *Client) GetAdGroups(ctx context.Context, advertiserID string, campaignIDs []string, page, pageSize int64) ([]AdGroup, *PageInfo, error) {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)
	if len(campaignIDs) > 0 {
		params.Set("filtering", jsonParam(map[string]any{"campaign_ids": campaignIDs}))
	}
	if page > 0 {
		params.Set("page", strconv.FormatInt(page, 10))
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.FormatInt(pageSize, 10))
	}

	var data adGroupList
	if err := c.get(ctx, "/adgroup/get/", params, &data); err != nil {
		return nil, nil, err
	}
	return data.List, &data.PageInfo, nil
}

// ListAllAdGroups drains every page of the ad group listing.
func (c *Client) ListAllAdGroups(ctx context.Context, advertiserID string, campaignIDs []string) ([]AdGroup, error) {
	var all []AdGroup
	page := int64(1)

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		groups, info, err := c.GetAdGroups(ctx, advertiserID, campaignIDs, page, 100)
		if err != nil {
			return nil, err
		}
		all = append(all, groups...)

		if !info.HasNext() {
			return all, nil
		}
		page = info.Page + 1
	}
}

// CreateAdGroup creates an ad group and returns its ID.
func (c *Client) CreateAdGroup(ctx context.Context, spec AdGroupSpec) (string, error) {
	var data struct {
		AdgroupID string `json:"adgroup_id"`
	}
	if err := c.post(ctx, "/adgroup/create/", spec, &data); err != nil {
		return "", err
	}
	return data.AdgroupID, nil
}

// UpdateAdGroup updates ad group settings in place.
func (c *Client) UpdateAdGroup(ctx context.Context, spec AdGroupSpec) error {
	return c.post(ctx, "/adgroup/update/", spec, nil)
}

// UpdateAdGroupStatus enables, disables, or deletes ad groups.
func (c *Client) UpdateAdGroupStatus(ctx context.Context, advertiserID string, adgroupIDs []string, status string) error {
	body := statusUpdate{
		AdvertiserID:    advertiserID,
		AdgroupIDs:      adgroupIDs,
		OperationStatus: status,
	}
	return c.post(ctx, "/adgroup/status/update/", body, nil)
}
