package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"safar/config"
	"safar/infras/kafka"
	"safar/infras/otel"
	"safar/infras/s3"
	"safar/internal/domains/booking/model"
	"safar/internal/domains/booking/model/dto"
	"safar/internal/domains/booking/repository"
	pkgModel "safar/internal/domains/pkg/model"
	pkgRepo "safar/internal/domains/pkg/repository"
	userRepo "safar/internal/domains/user/repository"
	"safar/shared"
	"safar/shared/cache"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/failure"
	"safar/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheAnalytics     = "booking:analytics"
	cacheDashboard     = "booking:dashboard"

	documentsDirectory = "bookings/documents"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	UpdatePayment(ctx context.Context, req dto.UpdateBookingPaymentRequest, id string) error
	UploadDocument(ctx context.Context, id string, file multipart.File, fileHeader *multipart.FileHeader) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	GetAnalyticsOverview(ctx context.Context, period string) (dto.AnalyticsOverviewResponse, error)
	GetDashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	pkgRepo  pkgRepo.Package
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
	s3       s3.S3
}

func New(
	repo repository.Booking,
	pkgRepo pkgRepo.Package,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafkaClient kafka.Client,
	s3Client s3.S3,
) Booking {
	return &serviceImpl{
		repo:     repo,
		pkgRepo:  pkgRepo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafkaClient,
		s3:       s3Client,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg, err := s.pkgRepo.Get(ctx, shared.FilterByID(req.PackageID, pkgModel.FieldID, pkgModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package") //nolint:wrapcheck
	}

	if req.TravelDetails.NumberOfTravelers > pkg.MaxTravelers {
		return res, failure.BadRequestFromString(fmt.Sprintf("package accepts at most %d travelers", pkg.MaxTravelers)) //nolint:wrapcheck
	}

	if !pkg.IsAvailable(timezone.Now()) {
		return res, failure.Conflict("package is not open for booking") //nolint:wrapcheck
	}

	booking, err := req.ToModel(user, pkg)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	sqltx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		if err != nil {
			s.rollback(sqltx)
		}
	}()

	// The slot guard and the insert commit together, so a reservation can
	// never outlive a failed booking.
	reserved, err := s.pkgRepo.ReserveSlotTx(ctx, sqltx, pkg.ID, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to reserve package slot")

		return res, fmt.Errorf("failed to reserve package slot: %w", err)
	}

	if !reserved {
		err = failure.Conflict("package is fully booked")

		return res, err //nolint:wrapcheck
	}

	booking, err = s.insertWithRef(ctx, sqltx, booking)
	if err != nil {
		return res, err
	}

	if err = sqltx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return res, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	s.publishEvent(ctx, model.EventCreated, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheAnalytics)
		shared.InvalidateCaches(c, s.cache, cacheDashboard)
	}()

	res.FromModel(booking)

	return res, nil
}

// insertWithRef draws a booking reference and retries when the unique
// constraint rejects it, up to the configured attempt budget.
func (s *serviceImpl) insertWithRef(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) (model.Booking, error) {
	attempts := s.cfg.Booking.RefMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		booking.BookingRef = model.NewBookingRef(timezone.Now())

		err = s.repo.InsertTx(ctx, sqltx, booking)
		if err == nil {
			return booking, nil
		}

		if !isBookingRefConflict(err) {
			break
		}

		log.Warn().Str("booking_ref", booking.BookingRef).Int("attempt", attempt).Msg("booking reference collision, retrying")
	}

	if isBookingRefConflict(err) {
		return booking, failure.Conflict("could not allocate a unique booking reference") //nolint:wrapcheck
	}

	log.Error().Err(err).Msg("failed to create booking")

	return booking, fmt.Errorf("failed to create booking: %w", err)
}

func isBookingRefConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation && pqErr.Constraint == model.BookingRefConstraint
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	normalizeOrdering(&req)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, gDto.NewPagination(req.Page, req.Limit, total))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, s.authorizeRead(ctx, res.UserID) //nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	if err = s.authorizeRead(ctx, booking.UserID); err != nil {
		return dto.BookingResponse{}, err //nolint:wrapcheck
	}

	return res, nil
}

// authorizeRead lets owners read their own bookings; staff and admin read any.
func (s *serviceImpl) authorizeRead(ctx context.Context, ownerID string) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role == constant.RoleUser && user != ownerID {
		return failure.Forbidden("booking belongs to another customer") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking") //nolint:wrapcheck
	}

	if !model.CanTransitionStatus(booking.Status, req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot transition booking status from %s to %s", booking.Status, req.Status)) //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
	if req.Notes != nil {
		updatedFields[model.FieldNotes] = *req.Notes
	}

	// Cancelling hands the package slot back in the same transaction.
	if req.Status == constant.BookingStatusCancelled {
		err = s.updateAndReleaseSlot(ctx, updatedFields, filter, booking.PackageID, user)
	} else {
		err = s.repo.Update(ctx, updatedFields, filter)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = req.Status
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	s.publishEvent(ctx, model.EventStatusChanged, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) UpdatePayment(ctx context.Context, req dto.UpdateBookingPaymentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking") //nolint:wrapcheck
	}

	if !model.CanTransitionPayment(booking.PaymentStatus, req.PaymentStatus) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot transition payment status from %s to %s", booking.PaymentStatus, req.PaymentStatus)) //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldPaymentStatus: req.PaymentStatus,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
	if req.PaymentMethod != nil {
		updatedFields[model.FieldPaymentMethod] = *req.PaymentMethod
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking payment")

		return fmt.Errorf("failed to update booking payment: %w", err)
	}

	booking.PaymentStatus = req.PaymentStatus
	if req.PaymentMethod != nil {
		booking.PaymentMethod = req.PaymentMethod
	}

	s.publishEvent(ctx, model.EventPaymentChanged, booking)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) UploadDocument(ctx context.Context, id string, file multipart.File, fileHeader *multipart.FileHeader) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadDocument")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") //nolint:wrapcheck
	}

	objectName := uuid.NewString() + path.Ext(fileHeader.Filename)

	url, err := s.s3.UploadFile(ctx, constant.Empty, documentsDirectory, file, fileHeader, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload booking document")

		return res, fmt.Errorf("failed to upload booking document: %w", err)
	}

	booking.Documents = append(booking.Documents, model.Document{
		Name:       fileHeader.Filename,
		URL:        url,
		Type:       fileHeader.Header.Get(constant.RequestHeaderContentType),
		UploadedAt: timezone.Now(),
	})

	updatedFields := map[string]any{
		model.FieldDocuments:     booking.Documents,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to attach booking document")

		return res, fmt.Errorf("failed to attach booking document: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking") //nolint:wrapcheck
	}

	holdsSlot := booking.Status == constant.BookingStatusPending || booking.Status == constant.BookingStatusConfirmed

	if holdsSlot {
		err = s.deleteAndReleaseSlot(ctx, filter, booking.PackageID, user)
	} else {
		err = s.repo.Delete(ctx, filter)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) updateAndReleaseSlot(ctx context.Context, updatedFields map[string]any, filter gDto.FilterGroup, packageID, user string) (err error) {
	sqltx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() {
		if err != nil {
			s.rollback(sqltx)
		}
	}()

	if err = s.repo.UpdateTx(ctx, sqltx, updatedFields, filter); err != nil {
		return err //nolint:wrapcheck
	}

	if err = s.pkgRepo.ReleaseSlotTx(ctx, sqltx, packageID, user); err != nil {
		return err //nolint:wrapcheck
	}

	return sqltx.Commit() //nolint:wrapcheck
}

func (s *serviceImpl) deleteAndReleaseSlot(ctx context.Context, filter gDto.FilterGroup, packageID, user string) (err error) {
	sqltx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() {
		if err != nil {
			s.rollback(sqltx)
		}
	}()

	if err = s.repo.DeleteTx(ctx, sqltx, filter); err != nil {
		return err //nolint:wrapcheck
	}

	if err = s.pkgRepo.ReleaseSlotTx(ctx, sqltx, packageID, user); err != nil {
		return err //nolint:wrapcheck
	}

	return sqltx.Commit() //nolint:wrapcheck
}

func (s *serviceImpl) rollback(sqltx *sqlx.Tx) {
	if sqltx == nil {
		return
	}

	if rbErr := sqltx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		log.Error().Err(rbErr).Msg("failed to roll back booking transaction")
	}
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.NewBookingEvent(eventType, booking)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("event", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil && !errors.Is(err, cache.Nil) {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheAnalytics)
		shared.InvalidateCaches(c, s.cache, cacheDashboard)
	}()
}

// normalizeOrdering whitelists the sortable columns and pins the id tie-break
// so equal timestamps page deterministically.
func normalizeOrdering(req *gDto.QueryParams) {
	sortColumn := "bookings.created_at"

	switch req.SortBy {
	case model.FieldBookingRef:
		sortColumn = "bookings.booking_ref"
	case model.FieldStatus:
		sortColumn = "bookings.status"
	}

	if req.SortDir == constant.Empty {
		req.SortDir = constant.DefaultValueSortDir
	}

	req.SortBy = fmt.Sprintf("%s %s, bookings.id", sortColumn, req.SortDir)
}
