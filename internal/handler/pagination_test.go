package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPaginatedResponseMeta(t *testing.T) {
	tests := []struct {
		total     int64
		page      int
		limit     int
		wantPages int
	}{
		{0, 1, 20, 0},
		{1, 1, 20, 1},
		{20, 1, 20, 1},
		{21, 2, 20, 2},
		{100, 1, 7, 15},
	}

	for _, tt := range tests {
		resp := NewPaginatedResponse([]int{}, tt.total, tt.page, tt.limit)
		if resp.Meta.TotalPages != tt.wantPages {
			t.Errorf("total=%d limit=%d: TotalPages = %d, want %d",
				tt.total, tt.limit, resp.Meta.TotalPages, tt.wantPages)
		}
		if resp.Meta.CurrentPage != tt.page || resp.Meta.PageSize != tt.limit {
			t.Errorf("meta echoed page=%d size=%d, want page=%d size=%d",
				resp.Meta.CurrentPage, resp.Meta.PageSize, tt.page, tt.limit)
		}
	}
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 20},
		{"page=3&limit=50", 3, 50},
		{"page=0&limit=0", 1, 20},
		{"page=-2&limit=-5", 1, 20},
		{"page=abc&limit=xyz", 1, 20},
		{"limit=500", 1, 100},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

		page, limit := pageParams(c)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("pageParams(%q) = (%d, %d), want (%d, %d)",
				tt.query, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}
