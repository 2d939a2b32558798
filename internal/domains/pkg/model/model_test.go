package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"safar/internal/domains/pkg/model"
)

func TestPackage_IsAvailable(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	base := model.Package{
		StartDate:       now.AddDate(0, -1, 0),
		EndDate:         now.AddDate(0, 1, 0),
		MaxBookings:     50,
		CurrentBookings: 10,
		IsActive:        true,
	}

	tests := []struct {
		name   string
		mutate func(p *model.Package)
		want   bool
	}{
		{
			name:   "open package",
			mutate: func(p *model.Package) {},
			want:   true,
		},
		{
			name:   "inactive package",
			mutate: func(p *model.Package) { p.IsActive = false },
			want:   false,
		},
		{
			name:   "before availability window",
			mutate: func(p *model.Package) { p.StartDate = now.AddDate(0, 0, 1) },
			want:   false,
		},
		{
			name:   "after availability window",
			mutate: func(p *model.Package) { p.EndDate = now.AddDate(0, 0, -1) },
			want:   false,
		},
		{
			name:   "fully booked",
			mutate: func(p *model.Package) { p.CurrentBookings = p.MaxBookings },
			want:   false,
		},
		{
			name:   "window boundaries are inclusive",
			mutate: func(p *model.Package) { p.StartDate = now; p.EndDate = now },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := base
			tt.mutate(&pkg)

			assert.Equal(t, tt.want, pkg.IsAvailable(now))
		})
	}
}

func TestPackage_RemainingSpots(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		current int
		want    int
	}{
		{"open spots", 50, 10, 40},
		{"none left", 50, 50, 0},
		{"counter drift never reports negative", 50, 53, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := model.Package{MaxBookings: tt.max, CurrentBookings: tt.current}

			assert.Equal(t, tt.want, pkg.RemainingSpots())
		})
	}
}
