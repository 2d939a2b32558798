package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"safar/config"
	kafkaMocks "safar/infras/kafka/mocks"
	"safar/infras/otel/mocks"
	s3Mocks "safar/infras/s3/mocks"
	bookingMocks "safar/internal/domains/booking/mocks"
	"safar/internal/domains/booking/model"
	"safar/internal/domains/booking/model/dto"
	"safar/internal/domains/booking/service"
	pkgMocks "safar/internal/domains/pkg/mocks"
	pkgModel "safar/internal/domains/pkg/model"
	userMocks "safar/internal/domains/user/mocks"
	cacheMocks "safar/shared/cache/mocks"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/failure"
	gModel "safar/shared/model"
	"safar/shared/timezone"
)

type bookingDeps struct {
	repo     *bookingMocks.MockBooking
	pkgRepo  *pkgMocks.MockPackage
	userRepo *userMocks.MockUser
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
	s3       *s3Mocks.MockS3
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, *bookingDeps) {
	deps := &bookingDeps{
		repo:     bookingMocks.NewMockBooking(ctrl),
		pkgRepo:  pkgMocks.NewMockPackage(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.RefMaxAttempts = 3

	svc := service.New(deps.repo, deps.pkgRepo, deps.userRepo, cfg, deps.cache, mocks.NewOtel(), deps.kafka, deps.s3)

	return svc, deps
}

func availablePackage() pkgModel.Package {
	now := timezone.Now()

	return pkgModel.Package{
		ID:              "pkg-1",
		Name:            "Umrah Essentials",
		ServiceType:     constant.ServiceTypeUmrah,
		Price:           3200,
		Currency:        "USD",
		MaxTravelers:    4,
		StartDate:       now.AddDate(0, -1, 0),
		EndDate:         now.AddDate(0, 2, 0),
		MaxBookings:     50,
		CurrentBookings: 10,
		IsActive:        true,
	}
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		PackageID: "pkg-1",
		PersonalInfo: dto.PersonalInfoRequest{
			FirstName: "Aisha",
			LastName:  "Rahman",
			Email:     "aisha@example.com",
			Phone:     "+628123456789",
		},
		TravelDetails: dto.TravelDetailsRequest{
			DepartureCity:          "Jakarta",
			PreferredDepartureDate: "2026-10-01",
			ReturnDate:             "2026-10-10",
			NumberOfTravelers:      2,
			RoomType:               "double",
		},
		AdditionalServices: []dto.AdditionalServiceRequest{
			{Service: model.ServiceVisaAssistance, Quantity: 2},
		},
	}
}

func storedBooking(status, paymentStatus string) model.Booking {
	return model.Booking{
		ID:            "booking-1",
		BookingRef:    "TK123456ABCD",
		UserID:        "owner-1",
		PackageID:     "pkg-1",
		ServiceType:   constant.ServiceTypeUmrah,
		Status:        status,
		PaymentStatus: paymentStatus,
		Pricing: model.Pricing{
			BasePrice:   6400,
			TotalAmount: 6400,
			Currency:    "USD",
		},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "owner-1",
			ModifiedBy: "owner-1",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "package not found",
			req:  validCreateRequest(),
			setupMock: func() {
				deps.pkgRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pkgModel.Package{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "package lookup error",
			req:  validCreateRequest(),
			setupMock: func() {
				deps.pkgRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pkgModel.Package{}, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "travelers exceed package capacity",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.TravelDetails.NumberOfTravelers = 9

				return req
			}(),
			setupMock: func() {
				deps.pkgRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availablePackage(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "package not open for booking",
			req:  validCreateRequest(),
			setupMock: func() {
				pkg := availablePackage()
				pkg.IsActive = false

				deps.pkgRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pkg, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "package fully booked",
			req:  validCreateRequest(),
			setupMock: func() {
				pkg := availablePackage()
				pkg.CurrentBookings = pkg.MaxBookings

				deps.pkgRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pkg, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "malformed departure date",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.TravelDetails.PreferredDepartureDate = "01-10-2026"

				return req
			}(),
			setupMock: func() {
				deps.pkgRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availablePackage(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "begin transaction error",
			req:  validCreateRequest(),
			setupMock: func() {
				deps.pkgRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availablePackage(), nil)

				deps.repo.EXPECT().
					BeginTx(gomock.Any()).
					Return(nil, errors.New("connection lost"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
			_, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Create_RefCollisionExhaustsRetryBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	deps.pkgRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(availablePackage(), nil)

	deps.repo.EXPECT().
		BeginTx(gomock.Any()).
		Return(nil, nil)

	deps.pkgRepo.EXPECT().
		ReserveSlotTx(gomock.Any(), gomock.Any(), "pkg-1", "owner-1").
		Return(true, nil)

	var refs []string

	deps.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			refs = append(refs, booking.BookingRef)

			return &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: model.BookingRefConstraint}
		}).
		Times(3)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
	_, err := svc.Create(ctx, validCreateRequest())

	assert.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.ErrorContains(t, err, "unique booking reference")

	// A fresh reference is drawn on every attempt.
	assert.Len(t, refs, 3)

	for _, ref := range refs {
		assert.Regexp(t, `^TK\d{6}[0-9A-Z]{4}$`, ref)
	}
}

func TestBookingService_Create_InsertFailureIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	deps.pkgRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(availablePackage(), nil)

	deps.repo.EXPECT().
		BeginTx(gomock.Any()).
		Return(nil, nil)

	deps.pkgRepo.EXPECT().
		ReserveSlotTx(gomock.Any(), gomock.Any(), "pkg-1", "owner-1").
		Return(true, nil)

	// A unique violation on a different constraint is not a ref collision.
	deps.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: "bookings_pkey"}).
		Times(1)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
	_, err := svc.Create(ctx, validCreateRequest())

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	tests := []struct {
		name      string
		id        string
		userID    string
		role      string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantID    string
	}{
		{
			name:   "owner reads own booking",
			id:     "booking-1",
			userID: "owner-1",
			role:   constant.RoleUser,
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending), nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-1",
		},
		{
			name:   "customer cannot read another customer's booking",
			id:     "booking-1",
			userID: "intruder-1",
			role:   constant.RoleUser,
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending), nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "staff reads any booking",
			id:     "booking-1",
			userID: "staff-1",
			role:   constant.RoleStaff,
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending), nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-1",
		},
		{
			name:   "booking not found",
			id:     "missing-id",
			userID: "owner-1",
			role:   constant.RoleUser,
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "repository error",
			id:     "booking-1",
			userID: "owner-1",
			role:   constant.RoleUser,
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)

			result, err := svc.Get(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, result.ID)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	tests := []struct {
		name      string
		params    gDto.QueryParams
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name:   "successful listing",
			params: gDto.QueryParams{Page: 1, Limit: 10},
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				deps.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				deps.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending)}, nil)

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name:   "count error",
			params: gDto.QueryParams{Page: 1, Limit: 10},
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				deps.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
		{
			name:   "get all error",
			params: gDto.QueryParams{Page: 1, Limit: 10},
			setupMock: func() {
				deps.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				deps.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				deps.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("get all error"))

				deps.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), tt.params, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.Pagination.TotalCount)
				assert.Len(t, result.Bookings, tt.wantTotal)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	tests := []struct {
		name      string
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "confirm pending booking",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusConfirmed},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending), nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				deps.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "pending cannot jump to completed",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCompleted},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "completed booking is terminal",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusPending},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusCompleted, constant.PaymentStatusPaid), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cancelled booking cannot be revived",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusConfirmed},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusCancelled, constant.PaymentStatusPending), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusConfirmed},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "cancellation transaction error",
			req:  dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCancelled},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending), nil)

				deps.repo.EXPECT().
					BeginTx(gomock.Any()).
					Return(nil, errors.New("connection lost"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			err := svc.UpdateStatus(ctx, tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_UpdatePayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	method := constant.PaymentMethodBankTransfer

	tests := []struct {
		name      string
		req       dto.UpdateBookingPaymentRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "mark pending payment as paid",
			req:  dto.UpdateBookingPaymentRequest{PaymentStatus: constant.PaymentStatusPaid, PaymentMethod: &method},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusConfirmed, constant.PaymentStatusPending), nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				deps.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "failed payment can be retried",
			req:  dto.UpdateBookingPaymentRequest{PaymentStatus: constant.PaymentStatusPaid},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusConfirmed, constant.PaymentStatusFailed), nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				deps.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "paid cannot regress to pending",
			req:  dto.UpdateBookingPaymentRequest{PaymentStatus: constant.PaymentStatusPending},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusConfirmed, constant.PaymentStatusPaid), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "refunded payment is terminal",
			req:  dto.UpdateBookingPaymentRequest{PaymentStatus: constant.PaymentStatusPaid},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusCancelled, constant.PaymentStatusRefunded), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingPaymentRequest{PaymentStatus: constant.PaymentStatusPaid},
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			err := svc.UpdatePayment(ctx, tt.req, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_UploadDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	fileHeader := &multipart.FileHeader{
		Filename: "passport.pdf",
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: []string{"application/pdf"}},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful upload",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusConfirmed, constant.PaymentStatusPaid), nil)

				deps.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/bookings/documents/passport.pdf", nil)

				deps.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				deps.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				deps.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "storage error",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusConfirmed, constant.PaymentStatusPaid), nil)

				deps.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("bucket unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
			result, err := svc.UploadDocument(ctx, "booking-1", nil, fileHeader)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Len(t, result.Documents, 1)
				assert.Equal(t, "passport.pdf", result.Documents[0].Name)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newBookingService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "completed booking deletes without slot release",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusCompleted, constant.PaymentStatusPaid), nil)

				deps.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				deps.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				deps.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "pending booking releases its slot in a transaction",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedBooking(constant.BookingStatusPending, constant.PaymentStatusPending), nil)

				deps.repo.EXPECT().
					BeginTx(gomock.Any()).
					Return(nil, errors.New("connection lost"))
			},
			wantErr: true,
		},
		{
			name: "booking not found",
			setupMock: func() {
				deps.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			err := svc.Delete(ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
