package dto_test

import (
	"net/http/httptest"
	"testing"

	"safar/shared/constant"
	"safar/shared/dto"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		useDefaults bool
		expected    dto.QueryParams
	}{
		{
			name:        "defaults applied when params absent",
			url:         "/v1/bookings",
			useDefaults: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name:        "explicit params win",
			url:         "/v1/bookings?page=3&limit=25&sort_by=booking_ref&sort_dir=asc",
			useDefaults: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   25,
				SortBy:  "booking_ref",
				SortDir: dto.SortDirAsc,
			},
		},
		{
			name:        "limit is clamped to the maximum",
			url:         "/v1/bookings?limit=5000",
			useDefaults: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: dto.MaxLimit,
			},
		},
		{
			name:        "invalid numbers fall back to defaults",
			url:         "/v1/bookings?page=abc&limit=-5",
			useDefaults: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name:        "bogus sort direction is ignored",
			url:         "/v1/bookings?sort_dir=sideways",
			useDefaults: false,
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.useDefaults)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}
