package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"safar/internal/domains/booking/model"
	"safar/shared/constant"
)

func TestBookingService_GetAnalyticsOverview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	tests := []struct {
		name       string
		period     string
		setupMock  func()
		wantErr    bool
		wantPeriod string
	}{
		{
			name:   "unknown period falls back to six months",
			period: "fortnight",
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					CountSince(gomock.Any(), gomock.Any()).
					Return(12, nil)

				deps.repo.EXPECT().
					TotalRevenue(gomock.Any(), gomock.Any()).
					Return(34000.0, nil)

				deps.repo.EXPECT().
					StatusDistribution(gomock.Any(), gomock.Any()).
					Return([]model.StatusCount{
						{Status: constant.BookingStatusPending, Count: 4},
						{Status: constant.BookingStatusConfirmed, Count: 8},
					}, nil)

				deps.repo.EXPECT().
					ServiceTypeDistribution(gomock.Any(), gomock.Any()).
					Return([]model.ServiceTypeCount{
						{ServiceType: constant.ServiceTypeUmrah, Count: 9},
						{ServiceType: constant.ServiceTypeHajj, Count: 3},
					}, nil)

				deps.repo.EXPECT().
					MonthlyRevenueTrend(gomock.Any(), gomock.Any()).
					Return([]model.MonthlyRevenue{
						{Year: 2026, Month: 7, Revenue: 16000, Bookings: 5},
						{Year: 2026, Month: 8, Revenue: 18000, Bookings: 7},
					}, nil)

				deps.repo.EXPECT().
					PopularPackages(gomock.Any(), gomock.Any(), 5).
					Return([]model.PackagePopularity{
						{PackageID: "pkg-1", PackageName: "Umrah Essentials", Bookings: 9},
					}, nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:    false,
			wantPeriod: constant.AnalyticsPeriod6Months,
		},
		{
			name:   "one month window",
			period: constant.AnalyticsPeriod1Month,
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					CountSince(gomock.Any(), gomock.Any()).
					Return(2, nil)

				deps.repo.EXPECT().
					TotalRevenue(gomock.Any(), gomock.Any()).
					Return(6400.0, nil)

				deps.repo.EXPECT().
					StatusDistribution(gomock.Any(), gomock.Any()).
					Return(nil, nil)

				deps.repo.EXPECT().
					ServiceTypeDistribution(gomock.Any(), gomock.Any()).
					Return(nil, nil)

				deps.repo.EXPECT().
					MonthlyRevenueTrend(gomock.Any(), gomock.Any()).
					Return(nil, nil)

				deps.repo.EXPECT().
					PopularPackages(gomock.Any(), gomock.Any(), 5).
					Return(nil, nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:    false,
			wantPeriod: constant.AnalyticsPeriod1Month,
		},
		{
			name:   "revenue aggregation error",
			period: constant.AnalyticsPeriod3Months,
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					CountSince(gomock.Any(), gomock.Any()).
					Return(2, nil)

				deps.repo.EXPECT().
					TotalRevenue(gomock.Any(), gomock.Any()).
					Return(0.0, errors.New("aggregation error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAnalyticsOverview(context.Background(), tt.period)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPeriod, result.Period)

			if tt.period == "fortnight" {
				assert.Equal(t, 12, result.TotalBookings)
				assert.Equal(t, 34000.0, result.TotalRevenue)
				assert.Equal(t, 8, result.StatusDistribution[constant.BookingStatusConfirmed])
				assert.Equal(t, 9, result.ServiceTypeDistribution[constant.ServiceTypeUmrah])
				assert.Len(t, result.MonthlyTrend, 2)
				assert.Len(t, result.PopularPackages, 1)
				assert.Equal(t, "Umrah Essentials", result.PopularPackages[0].Name)
			}
		})
	}
}

func TestBookingService_GetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful dashboard",
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.userRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(100, nil)

				deps.pkgRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(20, nil)

				deps.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(250, nil)

				deps.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(40, nil)

				deps.repo.EXPECT().
					TotalRevenue(gomock.Any(), gomock.Any()).
					Return(512000.0, nil)

				deps.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending),
						storedBooking(constant.BookingStatusConfirmed, constant.PaymentStatusPaid),
					}, nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "user count error",
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.userRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetDashboard(context.Background())

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 100, result.TotalUsers)
			assert.Equal(t, 20, result.TotalPackages)
			assert.Equal(t, 250, result.TotalBookings)
			assert.Equal(t, 40, result.PendingBookings)
			assert.Equal(t, 512000.0, result.TotalRevenue)
			assert.Len(t, result.RecentBookings, 2)
		})
	}
}
