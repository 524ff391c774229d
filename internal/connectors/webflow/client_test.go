package webflow

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

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"sites":[]}`)
	}))
	defer srv.Close()

	client := NewClient("wf-token", WithBaseURL(srv.URL))
	_, err := client.ListSites(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer wf-token", gotAuth)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":"resource_not_found","message":"Site not found"}`)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	_, err := client.GetSite(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "resource_not_found", apiErr.Code)
	assert.Equal(t, "Site not found", apiErr.Message)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	_, err := client.GetSite(context.Background(), "s")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	_, err := client.ListSites(context.Background())

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 12*time.Second, rateErr.RetryAfter)
}

func TestPagination_HasNext(t *testing.T) {
	tests := []struct {
		name string
		page *Pagination
		want bool
	}{
		{name: "nil pagination", page: nil, want: false},
		{name: "first page of many", page: &Pagination{Limit: 100, Offset: 0, Total: 250}, want: true},
		{name: "middle page", page: &Pagination{Limit: 100, Offset: 100, Total: 250}, want: true},
		{name: "last partial page", page: &Pagination{Limit: 100, Offset: 200, Total: 250}, want: false},
		{name: "exact fit", page: &Pagination{Limit: 100, Offset: 0, Total: 100}, want: false},
		{name: "empty collection", page: &Pagination{Limit: 100, Offset: 0, Total: 0}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.HasNext())
		})
	}
}

func TestListAllItems_DrainsOffsets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/coll-1/items", r.URL.Path)

		offset := r.URL.Query().Get("offset")
		switch offset {
		case "", "0":
			fmt.Fprint(w, `{"items":[
				{"id":"i1","fieldData":{"name":"One"}},
				{"id":"i2","fieldData":{"name":"Two"}}
			],"pagination":{"limit":2,"offset":0,"total":3}}`)
		case "2":
			fmt.Fprint(w, `{"items":[
				{"id":"i3","fieldData":{"name":"Three"}}
			],"pagination":{"limit":2,"offset":2,"total":3}}`)
		default:
			t.Fatalf("unexpected offset %q", offset)
		}
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	items, err := client.ListAllItems(context.Background(), "coll-1")

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "i1", items[0].ID)
	assert.Equal(t, "Three", items[2].FieldData["name"])
}

func TestCreateItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/coll-1/items", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"id":"new-item","isDraft":true,"fieldData":{"name":"Draft post"}}`)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	item, err := client.CreateItem(context.Background(), "coll-1", map[string]any{"name": "Draft post"}, true)

	require.NoError(t, err)
	assert.Equal(t, "new-item", item.ID)
	assert.True(t, item.IsDraft)
}

func TestPublishItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/coll-1/items/publish", r.URL.Path)
		fmt.Fprint(w, `{"publishedItemIds":["i1","i2"],"errors":[]}`)
	}))
	defer srv.Close()

	client := NewClient("t", WithBaseURL(srv.URL))
	result, err := client.PublishItems(context.Background(), "coll-1", []string{"i1", "i2"})

	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i2"}, result.PublishedItemIDs)
	assert.Empty(t, result.Errors)
}
