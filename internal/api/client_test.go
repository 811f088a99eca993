package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerdash/sellertray/internal/ports"
)

func TestFetchPage(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		gotQuery = map[string]string{}
		for key, vals := range r.URL.Query() {
			gotQuery[key] = vals[0]
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "n1", "type": "warn", "status": "unread", "title": "Low stock", "message": "ASIN B07ABC below threshold", "createdAt": "2026-08-30T10:00:00Z"},
				{"id": "n2", "type": "info", "status": "read", "title": "Report ready", "message": "Weekly sales report", "createdAt": "2026-08-29T08:00:00Z"}
			],
			"totalUnread": 5,
			"totalRead": 12,
			"currentPage": 2,
			"totalPages": 4,
			"totalItems": 17
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("sekrit"))

	result, err := client.FetchPage(context.Background(), ports.PageQuery{
		Page:           2,
		Limit:          20,
		Type:           "warn",
		Status:         "unread",
		MarketplaceIDs: []string{"ATVPDKIKX0DER", "A1PA6795UKMFR9"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/notifications", gotPath)
	assert.Equal(t, "2", gotQuery["page"])
	assert.Equal(t, "20", gotQuery["limit"])
	assert.Equal(t, "warn", gotQuery["type"])
	assert.Equal(t, "unread", gotQuery["status"])
	assert.Equal(t, "ATVPDKIKX0DER,A1PA6795UKMFR9", gotQuery["marketplaceIds"])
	assert.Equal(t, "Bearer sekrit", gotHeaders.Get("Authorization"))
	assert.NotEmpty(t, gotHeaders.Get("X-Request-ID"))

	require.Len(t, result.Data, 2)
	assert.Equal(t, "n1", result.Data[0].ID)
	assert.Equal(t, 5, result.TotalUnread)
	assert.Equal(t, 12, result.TotalRead)
	assert.Equal(t, 2, result.CurrentPage)
	assert.Equal(t, 4, result.TotalPages)
	assert.Equal(t, 17, result.TotalItems)
}

func TestFetchPageOmitsWildcardFilters(t *testing.T) {
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "totalUnread": 0, "totalRead": 0, "currentPage": 1, "totalPages": 0, "totalItems": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchPage(context.Background(), ports.PageQuery{Page: 1, Limit: 20, Type: "all", Status: "all"})
	require.NoError(t, err)

	assert.NotContains(t, gotQuery, "type")
	assert.NotContains(t, gotQuery, "status")
	assert.NotContains(t, gotQuery, "marketplaceIds")
}

func TestFetchUnread(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications/unread", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": "n9", "type": "error", "status": "unread", "title": "Listing suppressed", "message": "", "createdAt": "2026-09-01T07:00:00Z"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	unread, err := client.FetchUnread(context.Background())
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n9", unread[0].ID)
}

func TestMutations(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
	}{
		{
			name:       "mark read",
			call:       func(c *Client) error { return c.MarkRead(context.Background(), "n1") },
			wantMethod: http.MethodPatch,
			wantPath:   "/notifications/n1/read",
		},
		{
			name:       "mark all read",
			call:       func(c *Client) error { return c.MarkAllRead(context.Background()) },
			wantMethod: http.MethodPatch,
			wantPath:   "/notifications/read-all",
		},
		{
			name:       "delete read",
			call:       func(c *Client) error { return c.DeleteRead(context.Background()) },
			wantMethod: http.MethodDelete,
			wantPath:   "/notifications/read",
		},
		{
			name:       "delete all",
			call:       func(c *Client) error { return c.DeleteAll(context.Background()) },
			wantMethod: http.MethodDelete,
			wantPath:   "/notifications",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			require.NoError(t, tt.call(client))
			assert.Equal(t, tt.wantMethod, gotMethod)
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestMarkReadRejectsEmptyID(t *testing.T) {
	client := NewClient("http://localhost:0")
	err := client.MarkRead(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestErrorStatusIncludesBodySnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "token expired"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchUnread(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "token expired")
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL)
	_, err := client.FetchPage(ctx, ports.PageQuery{Page: 1, Limit: 20})
	require.Error(t, err)
}
