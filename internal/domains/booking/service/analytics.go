package service

import (
	"context"
	"fmt"
	"safar/internal/domains/booking/model"
	"safar/internal/domains/booking/model/dto"
	"safar/shared"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	topPackagesLimit    = 5
	recentBookingsLimit = 5
)

// periodWindow maps the period keyword to its trailing window start.
// Unrecognized keywords fall back to six months.
func periodWindow(period string, now time.Time) (string, time.Time) {
	switch period {
	case constant.AnalyticsPeriod1Month:
		return period, now.AddDate(0, -1, 0)
	case constant.AnalyticsPeriod3Months:
		return period, now.AddDate(0, -3, 0)
	case constant.AnalyticsPeriod1Year:
		return period, now.AddDate(-1, 0, 0)
	default:
		return constant.AnalyticsPeriod6Months, now.AddDate(0, -6, 0)
	}
}

func (s *serviceImpl) GetAnalyticsOverview(ctx context.Context, period string) (res dto.AnalyticsOverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAnalyticsOverview")
	defer scope.End()
	defer scope.TraceIfError(err)

	normalized, since := periodWindow(period, timezone.Now())

	cacheKey := shared.BuildCacheKey(cacheAnalytics, normalized)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking analytics")

		return res, nil
	}

	res.Period = normalized

	res.TotalBookings, err = s.repo.CountSince(ctx, since)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings in window: %w", err)
	}

	res.TotalRevenue, err = s.repo.TotalRevenue(ctx, since)
	if err != nil {
		return res, fmt.Errorf("failed to sum revenue in window: %w", err)
	}

	statusCounts, err := s.repo.StatusDistribution(ctx, since)
	if err != nil {
		return res, fmt.Errorf("failed to aggregate status distribution: %w", err)
	}

	res.StatusDistribution = make(map[string]int, len(statusCounts))
	for _, row := range statusCounts {
		res.StatusDistribution[row.Status] = row.Count
	}

	serviceCounts, err := s.repo.ServiceTypeDistribution(ctx, since)
	if err != nil {
		return res, fmt.Errorf("failed to aggregate service distribution: %w", err)
	}

	res.ServiceTypeDistribution = make(map[string]int, len(serviceCounts))
	for _, row := range serviceCounts {
		res.ServiceTypeDistribution[row.ServiceType] = row.Count
	}

	trend, err := s.repo.MonthlyRevenueTrend(ctx, since)
	if err != nil {
		return res, fmt.Errorf("failed to aggregate monthly trend: %w", err)
	}

	res.MonthlyTrend = make([]dto.MonthlyTrendEntry, len(trend))
	for i, row := range trend {
		res.MonthlyTrend[i] = dto.MonthlyTrendEntry{
			Year:     row.Year,
			Month:    row.Month,
			Revenue:  row.Revenue,
			Bookings: row.Bookings,
		}
	}

	popular, err := s.repo.PopularPackages(ctx, since, topPackagesLimit)
	if err != nil {
		return res, fmt.Errorf("failed to aggregate popular packages: %w", err)
	}

	res.PopularPackages = make([]dto.PopularPackage, len(popular))
	for i, row := range popular {
		res.PopularPackages[i] = dto.PopularPackage{
			PackageID: row.PackageID,
			Name:      row.PackageName,
			Bookings:  row.Bookings,
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking analytics to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetDashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDashboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := cacheDashboard

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for admin dashboard")

		return res, nil
	}

	res.TotalUsers, err = s.userRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to count users: %w", err)
	}

	res.TotalPackages, err = s.pkgRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	res.TotalBookings, err = s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	pendingFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.BookingStatusPending,
				Table:    model.TableName,
			},
		},
	}

	res.PendingBookings, err = s.repo.Count(ctx, pendingFilter)
	if err != nil {
		return res, fmt.Errorf("failed to count pending bookings: %w", err)
	}

	_, since := periodWindow(constant.AnalyticsPeriod6Months, timezone.Now())

	res.TotalRevenue, err = s.repo.TotalRevenue(ctx, since)
	if err != nil {
		return res, fmt.Errorf("failed to sum revenue in window: %w", err)
	}

	recentParams := gDto.QueryParams{Page: constant.DefaultValuePage, Limit: recentBookingsLimit}
	normalizeOrdering(&recentParams)

	recent, err := s.repo.GetAll(ctx, recentParams, gDto.FilterGroup{})
	if err != nil {
		return res, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	res.RecentBookings = make([]dto.BookingResponse, len(recent))
	for i, mod := range recent {
		res.RecentBookings[i].FromModel(mod)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admin dashboard to cache")
		}
	}()

	return res, nil
}
