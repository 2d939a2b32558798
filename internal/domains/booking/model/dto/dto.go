package dto

import (
	"safar/internal/domains/booking/model"
	pkgModel "safar/internal/domains/pkg/model"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/failure"
	gModel "safar/shared/model"
	"safar/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type PersonalInfoRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,max=20"`
}

type TravelDetailsRequest struct {
	DepartureCity          string `json:"departureCity"          validate:"required,max=100"`
	PreferredDepartureDate string `json:"preferredDepartureDate" validate:"required"`
	ReturnDate             string `json:"returnDate"             validate:"required"`
	NumberOfTravelers      int    `json:"numberOfTravelers"      validate:"required,gte=1"`
	RoomType               string `json:"roomType"               validate:"omitempty,oneof=single double triple quad"`
	SpecialRequests        string `json:"specialRequests"        validate:"omitempty,max=1000"`
}

type AdditionalServiceRequest struct {
	Service  string `json:"service"  validate:"required,oneof=visa-assistance travel-insurance private-transport extra-baggage guided-tour"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type CreateBookingRequest struct {
	PackageID          string                     `json:"packageId"     validate:"required,uuid4"`
	PersonalInfo       PersonalInfoRequest        `json:"personalInfo"  validate:"required"`
	TravelDetails      TravelDetailsRequest       `json:"travelDetails" validate:"required"`
	AdditionalServices []AdditionalServiceRequest `json:"additionalServices" validate:"omitempty,dive"`
	PaymentMethod      *string                    `json:"paymentMethod" validate:"omitempty,oneof=credit-card debit-card bank-transfer installments"`
	Notes              *string                    `json:"notes"         validate:"omitempty,max=2000"`
}

// ToModel derives the persisted booking from the request and the referenced
// package. Service type and the full pricing breakdown come from the package
// and the add-on catalog, never from the caller.
func (c *CreateBookingRequest) ToModel(user string, pkg pkgModel.Package) (model.Booking, error) {
	departureDate, err := timezone.Parse(constant.DateOnlyFormat, c.TravelDetails.PreferredDepartureDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("travelDetails.preferredDepartureDate must be formatted YYYY-MM-DD") //nolint:wrapcheck
	}

	returnDate, err := timezone.Parse(constant.DateOnlyFormat, c.TravelDetails.ReturnDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("travelDetails.returnDate must be formatted YYYY-MM-DD") //nolint:wrapcheck
	}

	services := make(model.AdditionalServices, len(c.AdditionalServices))
	for i, svc := range c.AdditionalServices {
		services[i] = model.AdditionalService{
			Service:  svc.Service,
			Price:    model.ServiceCatalog[svc.Service],
			Quantity: svc.Quantity,
		}
	}

	travelers := c.TravelDetails.NumberOfTravelers
	basePrice := pkg.Price * float64(travelers)
	servicesTotal := services.Total()

	return model.Booking{
		ID:          uuid.NewString(),
		UserID:      user,
		PackageID:   pkg.ID,
		ServiceType: pkg.ServiceType,
		PersonalInfo: model.PersonalInfo{
			FirstName: c.PersonalInfo.FirstName,
			LastName:  c.PersonalInfo.LastName,
			Email:     c.PersonalInfo.Email,
			Phone:     c.PersonalInfo.Phone,
		},
		TravelDetails: model.TravelDetails{
			DepartureCity:          c.TravelDetails.DepartureCity,
			PreferredDepartureDate: departureDate,
			ReturnDate:             returnDate,
			NumberOfTravelers:      travelers,
			RoomType:               c.TravelDetails.RoomType,
			SpecialRequests:        c.TravelDetails.SpecialRequests,
		},
		AdditionalServices: services,
		Pricing: model.Pricing{
			BasePrice:               basePrice,
			AdditionalServicesTotal: servicesTotal,
			TotalAmount:             basePrice + servicesTotal,
			Currency:                pkg.Currency,
		},
		Status:        constant.BookingStatusPending,
		PaymentStatus: constant.PaymentStatusPending,
		PaymentMethod: c.PaymentMethod,
		Notes:         c.Notes,
		Documents:     model.Documents{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	Notes  *string `json:"notes"  validate:"omitempty,max=2000"`
}

type UpdateBookingPaymentRequest struct {
	PaymentStatus string  `json:"paymentStatus" validate:"required,oneof=pending paid refunded failed"`
	PaymentMethod *string `json:"paymentMethod" validate:"omitempty,oneof=credit-card debit-card bank-transfer installments"`
}

type UserSummary struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    *string `json:"phone,omitempty"`
}

type PackageSummary struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ServiceType string  `json:"serviceType"`
}

type TravelDetailsResponse struct {
	DepartureCity          string `json:"departureCity"`
	PreferredDepartureDate string `json:"preferredDepartureDate"`
	ReturnDate             string `json:"returnDate"`
	NumberOfTravelers      int    `json:"numberOfTravelers"`
	RoomType               string `json:"roomType,omitempty"`
	SpecialRequests        string `json:"specialRequests,omitempty"`
	Duration               int    `json:"duration"`
}

type BookingResponse struct {
	ID                 string                   `json:"id"`
	BookingRef         string                   `json:"bookingRef"`
	UserID             string                   `json:"userId"`
	PackageID          string                   `json:"packageId"`
	ServiceType        string                   `json:"serviceType"`
	PersonalInfo       model.PersonalInfo       `json:"personalInfo"`
	TravelDetails      TravelDetailsResponse    `json:"travelDetails"`
	AdditionalServices model.AdditionalServices `json:"additionalServices"`
	Pricing            model.Pricing            `json:"pricing"`
	Status             string                   `json:"status"`
	PaymentStatus      string                   `json:"paymentStatus"`
	PaymentMethod      *string                  `json:"paymentMethod,omitempty"`
	Notes              *string                  `json:"notes,omitempty"`
	Documents          model.Documents          `json:"documents"`
	User               *UserSummary             `json:"user,omitempty"`
	Package            *PackageSummary          `json:"package,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.BookingRef = mod.BookingRef
	r.UserID = mod.UserID
	r.PackageID = mod.PackageID
	r.ServiceType = mod.ServiceType
	r.PersonalInfo = mod.PersonalInfo
	r.TravelDetails = TravelDetailsResponse{
		DepartureCity:          mod.TravelDetails.DepartureCity,
		PreferredDepartureDate: mod.TravelDetails.PreferredDepartureDate.Format(constant.DateOnlyFormat),
		ReturnDate:             mod.TravelDetails.ReturnDate.Format(constant.DateOnlyFormat),
		NumberOfTravelers:      mod.TravelDetails.NumberOfTravelers,
		RoomType:               mod.TravelDetails.RoomType,
		SpecialRequests:        mod.TravelDetails.SpecialRequests,
		Duration:               mod.TravelDetails.Duration(),
	}
	r.AdditionalServices = mod.AdditionalServices
	r.Pricing = mod.Pricing
	r.Status = mod.Status
	r.PaymentStatus = mod.PaymentStatus
	r.PaymentMethod = mod.PaymentMethod
	r.Notes = mod.Notes
	r.Documents = mod.Documents

	if mod.UserFullName != nil || mod.UserEmail != nil {
		summary := &UserSummary{Phone: mod.UserPhone}
		if mod.UserFullName != nil {
			summary.FullName = *mod.UserFullName
		}

		if mod.UserEmail != nil {
			summary.Email = *mod.UserEmail
		}

		r.User = summary
	}

	if mod.PackageName != nil {
		summary := &PackageSummary{Name: *mod.PackageName}
		if mod.PackagePrice != nil {
			summary.Price = *mod.PackagePrice
		}

		if mod.PackageServiceType != nil {
			summary.ServiceType = *mod.PackageServiceType
		}

		r.Package = summary
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination gDto.Pagination   `json:"pagination"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, pagination gDto.Pagination) {
	r.Pagination = pagination

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type MonthlyTrendEntry struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type PopularPackage struct {
	PackageID string `json:"packageId"`
	Name      string `json:"name"`
	Bookings  int    `json:"bookings"`
}

type AnalyticsOverviewResponse struct {
	Period                  string              `json:"period"`
	TotalBookings           int                 `json:"totalBookings"`
	TotalRevenue            float64             `json:"totalRevenue"`
	StatusDistribution      map[string]int      `json:"statusDistribution"`
	ServiceTypeDistribution map[string]int      `json:"serviceTypeDistribution"`
	MonthlyTrend            []MonthlyTrendEntry `json:"monthlyTrend"`
	PopularPackages         []PopularPackage    `json:"popularPackages"`
}

type DashboardResponse struct {
	TotalUsers      int               `json:"totalUsers"`
	TotalPackages   int               `json:"totalPackages"`
	TotalBookings   int               `json:"totalBookings"`
	PendingBookings int               `json:"pendingBookings"`
	TotalRevenue    float64           `json:"totalRevenue"`
	RecentBookings  []BookingResponse `json:"recentBookings"`
}

// BookingEvent is the payload published on the booking events topic.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"bookingId"`
	BookingRef    string    `json:"bookingRef"`
	UserID        string    `json:"userId"`
	PackageID     string    `json:"packageId"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   float64   `json:"totalAmount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, mod model.Booking) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     mod.ID,
		BookingRef:    mod.BookingRef,
		UserID:        mod.UserID,
		PackageID:     mod.PackageID,
		Status:        mod.Status,
		PaymentStatus: mod.PaymentStatus,
		TotalAmount:   mod.Pricing.TotalAmount,
		OccurredAt:    timezone.Now(),
	}
}
