package tiktok

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsAccessTokenHeader(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("Access-Token")
		fmt.Fprint(w, `{"code":0,"message":"OK","data":{}}`)
	}))
	defer srv.Close()

	client := NewClient("secret-token", WithBaseURL(srv.URL))
	err := client.get(context.Background(), "/campaign/get/", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "secret-token", gotToken)
}

func TestClient_EnvelopeErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// TikTok reports application errors with HTTP 200.
		fmt.Fprint(w, `{"code":40105,"message":"Access token is invalid","request_id":"req-1"}`)
	}))
	defer srv.Close()

	client := NewClient("bad", WithBaseURL(srv.URL))
	err := client.get(context.Background(), "/campaign/get/", nil, nil)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, int64(40105), apiErr.Code)
	assert.Equal(t, "req-1", apiErr.RequestID)
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	err := client.get(context.Background(), "/campaign/get/", nil, nil)

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 30*time.Second, rateErr.RetryAfter)
}

func TestClient_RateLimitedEnvelopeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"code":40100,"message":"Too many requests"}`)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	err := client.get(context.Background(), "/campaign/get/", nil, nil)

	assert.True(t, IsRateLimited(err))
}

func TestPageInfo_HasNext(t *testing.T) {
	tests := []struct {
		name string
		page *PageInfo
		want bool
	}{
		{name: "nil page info", page: nil, want: false},
		{name: "first of three", page: &PageInfo{Page: 1, TotalPage: 3}, want: true},
		{name: "last page", page: &PageInfo{Page: 3, TotalPage: 3}, want: false},
		{name: "single page", page: &PageInfo{Page: 1, TotalPage: 1}, want: false},
		{name: "empty result", page: &PageInfo{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.HasNext())
		})
	}
}

func TestJSONParam(t *testing.T) {
	assert.Equal(t, `["a","b"]`, jsonParam([]string{"a", "b"}))
	assert.Equal(t, `[]`, jsonParam([]string{}))
}

func TestGetCampaigns_Pagination(t *testing.T) {
	pagesServed := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaign/get/", r.URL.Path)
		assert.Equal(t, "adv-1", r.URL.Query().Get("advertiser_id"))

		pagesServed++
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			fmt.Fprint(w, `{"code":0,"data":{"list":[
				{"campaign_id":"c1","campaign_name":"First"},
				{"campaign_id":"c2","campaign_name":"Second"}
			],"page_info":{"page":1,"total_page":2,"total_number":3}}}`)
		case "2":
			fmt.Fprint(w, `{"code":0,"data":{"list":[
				{"campaign_id":"c3","campaign_name":"Third"}
			],"page_info":{"page":2,"total_page":2,"total_number":3}}}`)
		default:
			t.Fatalf("unexpected page %q", page)
		}
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	campaigns, err := client.ListAllCampaigns(context.Background(), "adv-1")

	require.NoError(t, err)
	assert.Equal(t, 2, pagesServed)
	require.Len(t, campaigns, 3)
	assert.Equal(t, "c1", campaigns[0].CampaignID)
	assert.Equal(t, "Third", campaigns[2].CampaignName)
}

func TestCreateCampaign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/campaign/create/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, `{"code":0,"data":{"campaign_id":"new-campaign"}}`)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	id, err := client.CreateCampaign(context.Background(), CampaignSpec{
		AdvertiserID: "adv-1",
		CampaignName: "Launch",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-campaign", id)
}

func TestGetAdGroups_CampaignFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `{"campaign_ids":["c1","c2"]}`, r.URL.Query().Get("filtering"))
		fmt.Fprint(w, `{"code":0,"data":{"list":[],"page_info":{"page":1,"total_page":1}}}`)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	_, _, err := client.GetAdGroups(context.Background(), "adv-1", []string{"c1", "c2"}, 1, 10)

	require.NoError(t, err)
}
