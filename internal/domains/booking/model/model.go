package model

import (
	"database/sql/driver"
	"fmt"
	"math"
	"math/rand/v2"
	"safar/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldBookingRef         = "booking_ref"
	FieldUserID             = "user_id"
	FieldPackageID          = "package_id"
	FieldServiceType        = "service_type"
	FieldPersonalInfo       = "personal_info"
	FieldTravelDetails      = "travel_details"
	FieldAdditionalServices = "additional_services"
	FieldPricing            = "pricing"
	FieldStatus             = "status"
	FieldPaymentStatus      = "payment_status"
	FieldPaymentMethod      = "payment_method"
	FieldNotes              = "notes"
	FieldDocuments          = "documents"

	// BookingRefConstraint is the unique index violated when two bookings
	// draw the same reference.
	BookingRefConstraint = "bookings_booking_ref_key"
)

const (
	EventCreated        = "booking.created"
	EventStatusChanged  = "booking.status_changed"
	EventPaymentChanged = "booking.payment_changed"
)

type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (p PersonalInfo) Value() (driver.Value, error) {
	return model.JSONBValue(p) //nolint:wrapcheck
}

func (p *PersonalInfo) Scan(src any) error {
	return model.JSONBScan(p, src) //nolint:wrapcheck
}

type TravelDetails struct {
	DepartureCity          string    `json:"departureCity"`
	PreferredDepartureDate time.Time `json:"preferredDepartureDate"`
	ReturnDate             time.Time `json:"returnDate"`
	NumberOfTravelers      int       `json:"numberOfTravelers"`
	RoomType               string    `json:"roomType,omitempty"`
	SpecialRequests        string    `json:"specialRequests,omitempty"`
}

func (t TravelDetails) Value() (driver.Value, error) {
	return model.JSONBValue(t) //nolint:wrapcheck
}

func (t *TravelDetails) Scan(src any) error {
	return model.JSONBScan(t, src) //nolint:wrapcheck
}

// Duration is the trip length in days, rounded up.
func (t TravelDetails) Duration() int {
	hours := t.ReturnDate.Sub(t.PreferredDepartureDate).Hours()

	return int(math.Ceil(math.Abs(hours) / 24))
}

type AdditionalService struct {
	Service  string  `json:"service"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type AdditionalServices []AdditionalService

func (a AdditionalServices) Value() (driver.Value, error) {
	return model.JSONBValue(a) //nolint:wrapcheck
}

func (a *AdditionalServices) Scan(src any) error {
	return model.JSONBScan(a, src) //nolint:wrapcheck
}

// Total sums price times quantity over every line.
func (a AdditionalServices) Total() float64 {
	total := 0.0
	for _, svc := range a {
		total += svc.Price * float64(svc.Quantity)
	}

	return total
}

type Pricing struct {
	BasePrice               float64 `json:"basePrice"`
	AdditionalServicesTotal float64 `json:"additionalServicesTotal"`
	TotalAmount             float64 `json:"totalAmount"`
	Currency                string  `json:"currency"`
}

func (p Pricing) Value() (driver.Value, error) {
	return model.JSONBValue(p) //nolint:wrapcheck
}

func (p *Pricing) Scan(src any) error {
	return model.JSONBScan(p, src) //nolint:wrapcheck
}

type Document struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Documents []Document

func (d Documents) Value() (driver.Value, error) {
	return model.JSONBValue(d) //nolint:wrapcheck
}

func (d *Documents) Scan(src any) error {
	return model.JSONBScan(d, src) //nolint:wrapcheck
}

type Booking struct {
	ID                 string             `db:"id"`
	BookingRef         string             `db:"booking_ref"`
	UserID             string             `db:"user_id"`
	PackageID          string             `db:"package_id"`
	ServiceType        string             `db:"service_type"`
	PersonalInfo       PersonalInfo       `db:"personal_info"`
	TravelDetails      TravelDetails      `db:"travel_details"`
	AdditionalServices AdditionalServices `db:"additional_services"`
	Pricing            Pricing            `db:"pricing"`
	Status             string             `db:"status"`
	PaymentStatus      string             `db:"payment_status"`
	PaymentMethod      *string            `db:"payment_method"`
	Notes              *string            `db:"notes"`
	Documents          Documents          `db:"documents"`

	UserFullName       *string  `db:"user_full_name"       table:"users"    column:"full_name"`
	UserEmail          *string  `db:"user_email"           table:"users"    column:"email"`
	UserPhone          *string  `db:"user_phone"           table:"users"    column:"phone"`
	PackageName        *string  `db:"package_name"         table:"packages" column:"name"`
	PackagePrice       *float64 `db:"package_price"        table:"packages" column:"price"`
	PackageServiceType *string  `db:"package_service_type" table:"packages" column:"service_type"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = bookings.user_id LEFT JOIN packages ON packages.id = bookings.package_id"
}

const refCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingRef builds a human-readable reference: TK, the last six digits of
// the unix timestamp, then four random base-36 characters. The random tail is
// small, so the bookings table carries a unique constraint and creation
// retries on conflict.
func NewBookingRef(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = refCharset[rand.IntN(len(refCharset))]
	}

	return fmt.Sprintf("TK%06d%s", now.Unix()%1000000, suffix)
}
