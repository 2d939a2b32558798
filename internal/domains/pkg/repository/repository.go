package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"safar/infras/otel"
	"safar/infras/postgres"
	"safar/internal/domains/pkg/model"
	gDto "safar/shared/dto"
	gRepo "safar/shared/repository"
	"safar/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const (
	reserveSlotQuery = `UPDATE packages
		SET current_bookings = current_bookings + 1, modified_at = :modified_at, modified_by = :modified_by
		WHERE id = :id
			AND is_active = TRUE
			AND current_bookings < max_bookings
			AND start_date <= :now
			AND end_date >= :now`

	releaseSlotQuery = `UPDATE packages
		SET current_bookings = current_bookings - 1, modified_at = :modified_at, modified_by = :modified_by
		WHERE id = :id AND current_bookings > 0`
)

type Package interface {
	Insert(ctx context.Context, model model.Package) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Package, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Package, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ReserveSlotTx(ctx context.Context, sqltx *sqlx.Tx, packageID, user string) (bool, error)
	ReleaseSlotTx(ctx context.Context, sqltx *sqlx.Tx, packageID, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Package]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Package {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Package](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ReserveSlotTx bumps current_bookings by one, guarded against inactive,
// out-of-window and fully booked packages. The guard and the caller's booking
// insert share one transaction, so a reservation never outlives a failed
// booking.
func (repo *repositoryImpl) ReserveSlotTx(ctx context.Context, sqltx *sqlx.Tx, packageID, user string) (bool, error) {
	affected, err := repo.ExecConditional(ctx, sqltx, reserveSlotQuery, map[string]any{
		"id":          packageID,
		"now":         timezone.Now(),
		"modified_at": timezone.Now(),
		"modified_by": user,
	})
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

// ReleaseSlotTx hands a reserved slot back, never driving the counter
// negative.
func (repo *repositoryImpl) ReleaseSlotTx(ctx context.Context, sqltx *sqlx.Tx, packageID, user string) error {
	_, err := repo.ExecConditional(ctx, sqltx, releaseSlotQuery, map[string]any{
		"id":          packageID,
		"modified_at": timezone.Now(),
		"modified_by": user,
	})

	return err //nolint:wrapcheck
}
