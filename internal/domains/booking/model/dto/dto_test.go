package dto_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"safar/internal/domains/booking/model"
	"safar/internal/domains/booking/model/dto"
	pkgModel "safar/internal/domains/pkg/model"
	"safar/shared/constant"
	"safar/shared/failure"
	gModel "safar/shared/model"
	"safar/shared/timezone"
)

func createRequest() dto.CreateBookingRequest {
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
			{Service: model.ServiceGuidedTour, Quantity: 1},
		},
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := createRequest()

	pkg := pkgModel.Package{
		ID:          "pkg-1",
		ServiceType: constant.ServiceTypeUmrah,
		Price:       3200,
		Currency:    "USD",
	}

	booking, err := req.ToModel("user-1", pkg)

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Empty(t, booking.BookingRef, "reference is drawn at insert time")
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, pkg.ID, booking.PackageID)
	assert.Equal(t, pkg.ServiceType, booking.ServiceType, "service type comes from the package")
	assert.Equal(t, constant.BookingStatusPending, booking.Status)
	assert.Equal(t, constant.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, 2, booking.TravelDetails.NumberOfTravelers)
	assert.Equal(t, "user-1", booking.CreatedBy)
	assert.NotNil(t, booking.Documents)
	assert.Empty(t, booking.Documents)
}

func TestCreateBookingRequest_ToModel_PricingComesFromCatalog(t *testing.T) {
	req := createRequest()

	pkg := pkgModel.Package{ID: "pkg-1", Price: 3200, Currency: "USD"}

	booking, err := req.ToModel("user-1", pkg)

	assert.NoError(t, err)

	// 3200 * 2 travelers, plus 2x visa assistance (150) and one guided tour (120).
	assert.Equal(t, 6400.0, booking.Pricing.BasePrice)
	assert.Equal(t, 420.0, booking.Pricing.AdditionalServicesTotal)
	assert.Equal(t, 6820.0, booking.Pricing.TotalAmount)
	assert.Equal(t, "USD", booking.Pricing.Currency)

	assert.Len(t, booking.AdditionalServices, 2)
	assert.Equal(t, 150.0, booking.AdditionalServices[0].Price, "unit price pinned by the catalog")
}

func TestCreateBookingRequest_ToModel_RejectsMalformedDates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *dto.CreateBookingRequest)
	}{
		{
			name: "bad departure date",
			mutate: func(req *dto.CreateBookingRequest) {
				req.TravelDetails.PreferredDepartureDate = "01/10/2026"
			},
		},
		{
			name: "bad return date",
			mutate: func(req *dto.CreateBookingRequest) {
				req.TravelDetails.ReturnDate = "next week"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(&req)

			_, err := req.ToModel("user-1", pkgModel.Package{ID: "pkg-1"})

			assert.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	fullName := "Aisha Rahman"
	email := "aisha@example.com"
	packageName := "Umrah Essentials"
	price := 3200.0

	booking := model.Booking{
		ID:          "booking-1",
		BookingRef:  "TK123456ABCD",
		UserID:      "user-1",
		PackageID:   "pkg-1",
		ServiceType: constant.ServiceTypeUmrah,
		TravelDetails: model.TravelDetails{
			DepartureCity:          "Jakarta",
			PreferredDepartureDate: now,
			ReturnDate:             now.AddDate(0, 0, 9),
			NumberOfTravelers:      2,
		},
		Status:        constant.BookingStatusPending,
		PaymentStatus: constant.PaymentStatusPending,
		UserFullName:  &fullName,
		UserEmail:     &email,
		PackageName:   &packageName,
		PackagePrice:  &price,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "user-1",
			ModifiedBy: "user-1",
		},
	}

	var response dto.BookingResponse
	response.FromModel(booking)

	assert.Equal(t, booking.ID, response.ID)
	assert.Equal(t, booking.BookingRef, response.BookingRef)
	assert.Equal(t, 9, response.TravelDetails.Duration)
	assert.Equal(t, now.Format(constant.DateOnlyFormat), response.TravelDetails.PreferredDepartureDate)

	if assert.NotNil(t, response.User) {
		assert.Equal(t, fullName, response.User.FullName)
		assert.Equal(t, email, response.User.Email)
	}

	if assert.NotNil(t, response.Package) {
		assert.Equal(t, packageName, response.Package.Name)
		assert.Equal(t, price, response.Package.Price)
	}
}

func TestBookingResponse_FromModel_WithoutJoinedRows(t *testing.T) {
	var response dto.BookingResponse
	response.FromModel(model.Booking{ID: "booking-1"})

	assert.Nil(t, response.User)
	assert.Nil(t, response.Package)
}

func TestNewBookingEvent(t *testing.T) {
	booking := model.Booking{
		ID:            "booking-1",
		BookingRef:    "TK123456ABCD",
		UserID:        "user-1",
		PackageID:     "pkg-1",
		Status:        constant.BookingStatusConfirmed,
		PaymentStatus: constant.PaymentStatusPaid,
		Pricing:       model.Pricing{TotalAmount: 6820},
	}

	event := dto.NewBookingEvent(model.EventStatusChanged, booking)

	assert.Equal(t, model.EventStatusChanged, event.Type)
	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, booking.BookingRef, event.BookingRef)
	assert.Equal(t, 6820.0, event.TotalAmount)
	assert.False(t, event.OccurredAt.IsZero())
}
