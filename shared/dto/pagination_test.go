package dto_test

import (
	"testing"

	"safar/shared/dto"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int
		expected dto.Pagination
	}{
		{
			name:  "middle page",
			page:  2,
			limit: 10,
			total: 35,
			expected: dto.Pagination{
				CurrentPage: 2,
				TotalPages:  4,
				TotalCount:  35,
				HasNext:     true,
				HasPrev:     true,
			},
		},
		{
			name:  "first page",
			page:  1,
			limit: 10,
			total: 35,
			expected: dto.Pagination{
				CurrentPage: 1,
				TotalPages:  4,
				TotalCount:  35,
				HasNext:     true,
			},
		},
		{
			name:  "last page",
			page:  4,
			limit: 10,
			total: 35,
			expected: dto.Pagination{
				CurrentPage: 4,
				TotalPages:  4,
				TotalCount:  35,
				HasPrev:     true,
			},
		},
		{
			name:  "no records",
			page:  1,
			limit: 10,
			total: 0,
			expected: dto.Pagination{
				CurrentPage: 1,
				TotalPages:  1,
			},
		},
		{
			name:  "page beyond the last",
			page:  9,
			limit: 10,
			total: 35,
			expected: dto.Pagination{
				CurrentPage: 9,
				TotalPages:  4,
				TotalCount:  35,
				HasPrev:     true,
			},
		},
		{
			name:  "exact division",
			page:  2,
			limit: 10,
			total: 20,
			expected: dto.Pagination{
				CurrentPage: 2,
				TotalPages:  2,
				TotalCount:  20,
				HasPrev:     true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dto.NewPagination(tt.page, tt.limit, tt.total); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
