package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"safar/infras/otel"
	"safar/infras/postgres"
	"safar/internal/domains/booking/model"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/logger"
	gRepo "safar/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	countSinceQuery = `SELECT COUNT(id) FROM bookings WHERE created_at >= :since`

	totalRevenueQuery = `SELECT COALESCE(SUM((pricing->>'totalAmount')::numeric), 0)
		FROM bookings
		WHERE status = 'confirmed' AND created_at >= :since`

	statusDistributionQuery = `SELECT status, COUNT(id) AS count
		FROM bookings
		WHERE created_at >= :since
		GROUP BY status`

	serviceTypeDistributionQuery = `SELECT service_type, COUNT(id) AS count
		FROM bookings
		WHERE created_at >= :since
		GROUP BY service_type`

	monthlyRevenueQuery = `SELECT
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COALESCE(SUM((pricing->>'totalAmount')::numeric), 0) AS revenue,
			COUNT(id) AS bookings
		FROM bookings
		WHERE status = 'confirmed' AND created_at >= :since
		GROUP BY 1, 2
		ORDER BY 1, 2`

	popularPackagesQuery = `SELECT b.package_id, p.name AS package_name, COUNT(b.id) AS bookings
		FROM bookings b
		JOIN packages p ON p.id = b.package_id
		WHERE b.created_at >= :since
		GROUP BY b.package_id, p.name
		ORDER BY bookings DESC, package_name ASC
		LIMIT :limit`
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	TotalRevenue(ctx context.Context, since time.Time) (float64, error)
	StatusDistribution(ctx context.Context, since time.Time) ([]model.StatusCount, error)
	ServiceTypeDistribution(ctx context.Context, since time.Time) ([]model.ServiceTypeCount, error)
	MonthlyRevenueTrend(ctx context.Context, since time.Time) ([]model.MonthlyRevenue, error)
	PopularPackages(ctx context.Context, since time.Time, limit int) ([]model.PackagePopularity, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	return sqltx, nil
}

func (repo *repositoryImpl) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int

	err := repo.getNamed(ctx, "CountSince", countSinceQuery, &count, map[string]any{"since": since})

	return count, err
}

func (repo *repositoryImpl) TotalRevenue(ctx context.Context, since time.Time) (float64, error) {
	var revenue float64

	err := repo.getNamed(ctx, "TotalRevenue", totalRevenueQuery, &revenue, map[string]any{"since": since})

	return revenue, err
}

func (repo *repositoryImpl) StatusDistribution(ctx context.Context, since time.Time) ([]model.StatusCount, error) {
	var counts []model.StatusCount

	err := repo.selectNamed(ctx, "StatusDistribution", statusDistributionQuery, &counts, map[string]any{"since": since})

	return counts, err
}

func (repo *repositoryImpl) ServiceTypeDistribution(ctx context.Context, since time.Time) ([]model.ServiceTypeCount, error) {
	var counts []model.ServiceTypeCount

	err := repo.selectNamed(ctx, "ServiceTypeDistribution", serviceTypeDistributionQuery, &counts, map[string]any{"since": since})

	return counts, err
}

func (repo *repositoryImpl) MonthlyRevenueTrend(ctx context.Context, since time.Time) ([]model.MonthlyRevenue, error) {
	var trend []model.MonthlyRevenue

	err := repo.selectNamed(ctx, "MonthlyRevenueTrend", monthlyRevenueQuery, &trend, map[string]any{"since": since})

	return trend, err
}

func (repo *repositoryImpl) PopularPackages(ctx context.Context, since time.Time, limit int) ([]model.PackagePopularity, error) {
	var popular []model.PackagePopularity

	err := repo.selectNamed(ctx, "PopularPackages", popularPackagesQuery, &popular, map[string]any{
		"since": since,
		"limit": limit,
	})

	return popular, err
}

func (repo *repositoryImpl) getNamed(ctx context.Context, name, query string, dest any, args map[string]any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, name))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, dest, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to aggregate data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) selectNamed(ctx context.Context, name, query string, dest any, args map[string]any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, name))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, dest, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to aggregate data (%s): %w", model.EntityName, err)
	}

	return nil
}
