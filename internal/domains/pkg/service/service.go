package service

import (
	"context"
	"fmt"
	"safar/config"
	"safar/infras/otel"
	"safar/internal/domains/pkg/model"
	"safar/internal/domains/pkg/model/dto"
	"safar/internal/domains/pkg/repository"
	"safar/shared"
	"safar/shared/cache"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/failure"
	"safar/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPackage    = "package:get"
	cacheGetAllPackage = "package:gets"
	cacheCountPackage  = "package:count"
)

type Package interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdatePackageStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Package
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Package, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Package {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg, err := req.ToModel(user)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, pkg); err != nil {
		log.Error().Err(err).Msg("failed to create package")

		return fmt.Errorf("failed to create package: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	normalizeOrdering(&req)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, fmt.Errorf("failed to get packages: %w", err)
	}

	res.FromModels(models, gDto.NewPagination(req.Page, req.Limit, total))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id, role)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package") //nolint:wrapcheck
	}

	// Retired packages stay visible to admins only.
	if !pkg.IsActive && role != constant.RoleAdmin {
		return res, failure.NotFound("package") //nolint:wrapcheck
	}

	res.FromModel(pkg)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if package exists")

		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.StartDate != "" {
		startDate, err := timezone.Parse(constant.DateOnlyFormat, req.StartDate)
		if err != nil {
			return failure.BadRequestFromString("startDate must be formatted YYYY-MM-DD") //nolint:wrapcheck
		}

		updatedFields[model.FieldStartDate] = startDate
	}

	if req.EndDate != "" {
		endDate, err := timezone.Parse(constant.DateOnlyFormat, req.EndDate)
		if err != nil {
			return failure.BadRequestFromString("endDate must be formatted YYYY-MM-DD") //nolint:wrapcheck
		}

		updatedFields[model.FieldEndDate] = endDate
	}

	if len(updatedFields) <= 2 {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update package")

		return fmt.Errorf("failed to update package: %w", err)
	}

	s.invalidatePackageCaches(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdatePackageStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if package exists")

		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package") //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldIsActive:      *req.IsActive,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update package status")

		return fmt.Errorf("failed to update package status: %w", err)
	}

	s.invalidatePackageCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if package exists")

		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete package")

		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.invalidatePackageCaches(ctx, id)

	return nil
}

// normalizeOrdering whitelists the sortable columns; featured packages rank
// first and the id tie-break keeps paging deterministic.
func normalizeOrdering(req *gDto.QueryParams) {
	sortColumn := "packages.created_at"

	switch req.SortBy {
	case model.FieldPrice:
		sortColumn = "packages.price"
	case model.FieldName:
		sortColumn = "packages.name"
	}

	if req.SortDir == constant.Empty {
		req.SortDir = constant.DefaultValueSortDir
	}

	req.SortBy = fmt.Sprintf("packages.is_featured DESC, %s %s, packages.id", sortColumn, req.SortDir)
}

func (s *serviceImpl) invalidatePackageCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetPackage, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()
}
