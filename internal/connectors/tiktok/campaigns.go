package tiktok

import (
	"context"
	"net/url"
	"strconv"
)

// Campaign is a TikTok advertising campaign.
type Campaign struct {
	CampaignID      string  `json:"campaign_id"`
	CampaignName    string  `json:"campaign_name"`
	AdvertiserID    string  `json:"advertiser_id"`
	ObjectiveType   string  `json:"objective_type"`
	OperationStatus string  `json:"operation_status"`
	SecondaryStatus string  `json:"secondary_status"`
	BudgetMode      string  `json:"budget_mode"`
	Budget          float64 `json:"budget"`
	CreateTime      string  `json:"create_time"`
	ModifyTime      string  `json:"modify_time"`
}

// CampaignSpec describes a campaign to create or update.
type CampaignSpec struct {
	AdvertiserID  string  `json:"advertiser_id"`
	CampaignID    string  `json:"campaign_id,omitempty"`
	CampaignName  string  `json:"campaign_name,omitempty"`
	ObjectiveType string  `json:"objective_type,omitempty"`
	BudgetMode    string  `json:"budget_mode,omitempty"`
	Budget        float64 `json:"budget,omitempty"`
}

// campaignList is the data payload of /campaign/get/.
type campaignList struct {
	List     []Campaign `json:"list"`
	PageInfo PageInfo   `json:"page_info"`
}

// GetCampaigns returns one page of campaigns for an advertiser.
func (c *Client) GetCampaigns(ctx context.Context, advertiserID string, page, pageSize int64) ([]Campaign, *PageInfo, error) {
	params := url.Values{}
	params.Set("advertiser_id", advertiserID)
	if page > 0 {
		params.Set("page", strconv.FormatInt(page, 10))
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.FormatInt(pageSize, 10))
	}

	var data campaignList
	if err := c.get(ctx, "/campaign/get/", params, &data); err != nil {
		return nil, nil, err
	}
	return data.List, &data.PageInfo, nil
}

// ListAllCampaigns drains every page of the campaign listing.
func (c *Client) ListAllCampaigns(ctx context.Context, advertiserID string) ([]Campaign, error) {
	var all []Campaign
	page := int64(1)

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		campaigns, info, err := c.GetCampaigns(ctx, advertiserID, page, 100)
		if err != nil {
			return nil, err
		}
		all = append(all, campaigns...)

		if !info.HasNext() {
			return all, nil
		}
		page = info.Page + 1
	}
}

// CreateCampaign creates a campaign and returns its ID.
func (c *Client) CreateCampaign(ctx context.Context, spec CampaignSpec) (string, error) {
	var data struct {
		CampaignID string `json:"campaign_id"`
	}
	if err := c.post(ctx, "/campaign/create/", spec, &data); err != nil {
		return "", err
	}
	return data.CampaignID, nil
}

// UpdateCampaign updates campaign settings in place.
func (c *Client) UpdateCampaign(ctx context.Context, spec CampaignSpec) error {
	return c.post(ctx, "/campaign/update/", spec, nil)
}

// Operation statuses accepted by the status update endpoints.
const (
	OperationEnable  = "ENABLE"
	OperationDisable = "DISABLE"
	OperationDelete  = "DELETE"
)

// statusUpdate is the shared body of the */status/update/ endpoints.
type statusUpdate struct {
	AdvertiserID    string   `json:"advertiser_id"`
	CampaignIDs     []string `json:"campaign_ids,omitempty"`
	AdgroupIDs      []string `json:"adgroup_ids,omitempty"`
	AdIDs           []string `json:"ad_ids,omitempty"`
	OperationStatus string   `json:"operation_status"`
}

// UpdateCampaignStatus enables, disables, or deletes campaigns.
func (c *Client) UpdateCampaignStatus(ctx context.Context, advertiserID string, campaignIDs []string, status string) error {
	body := statusUpdate{
		AdvertiserID:    advertiserID,
		CampaignIDs:     campaignIDs,
		OperationStatus: status,
	}
	return c.post(ctx, "/campaign/status/update/", body, nil)
}
