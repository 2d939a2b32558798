package model

import (
	"database/sql/driver"
	"safar/shared/model"
	"time"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldServiceType     = "service_type"
	FieldPrice           = "price"
	FieldCurrency        = "currency"
	FieldDurationDays    = "duration_days"
	FieldMaxTravelers    = "max_travelers"
	FieldInclusions      = "inclusions"
	FieldExclusions      = "exclusions"
	FieldImages          = "images"
	FieldFeatures        = "features"
	FieldTags            = "tags"
	FieldItinerary       = "itinerary"
	FieldDestination     = "destination"
	FieldRequirements    = "requirements"
	FieldPricingDetails  = "pricing_details"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldMaxBookings     = "max_bookings"
	FieldCurrentBookings = "current_bookings"
	FieldIsActive        = "is_active"
	FieldIsFeatured      = "is_featured"
)

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return model.JSONBValue(l) //nolint:wrapcheck
}

func (l *StringList) Scan(src any) error {
	return model.JSONBScan(l, src) //nolint:wrapcheck
}

type ItineraryDay struct {
	Day           int      `json:"day"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Activities    []string `json:"activities,omitempty"`
	Meals         []string `json:"meals,omitempty"`
	Accommodation string   `json:"accommodation,omitempty"`
}

type Itinerary []ItineraryDay

func (i Itinerary) Value() (driver.Value, error) {
	return model.JSONBValue(i) //nolint:wrapcheck
}

func (i *Itinerary) Scan(src any) error {
	return model.JSONBScan(i, src) //nolint:wrapcheck
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Destination struct {
	Country     string       `json:"country"`
	City        string       `json:"city"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

func (d Destination) Value() (driver.Value, error) {
	return model.JSONBValue(d) //nolint:wrapcheck
}

func (d *Destination) Scan(src any) error {
	return model.JSONBScan(d, src) //nolint:wrapcheck
}

type Requirements struct {
	MinAge              *int `json:"minAge,omitempty"`
	MaxAge              *int `json:"maxAge,omitempty"`
	VisaRequired        bool `json:"visaRequired"`
	PassportRequired    bool `json:"passportRequired"`
	VaccinationRequired bool `json:"vaccinationRequired"`
}

func (r Requirements) Value() (driver.Value, error) {
	return model.JSONBValue(r) //nolint:wrapcheck
}

func (r *Requirements) Scan(src any) error {
	return model.JSONBScan(r, src) //nolint:wrapcheck
}

// PricingDetails is the optional per-package price breakdown shown on the
// catalog page, keyed by line item.
type PricingDetails map[string]float64

func (p PricingDetails) Value() (driver.Value, error) {
	return model.JSONBValue(p) //nolint:wrapcheck
}

func (p *PricingDetails) Scan(src any) error {
	return model.JSONBScan(p, src) //nolint:wrapcheck
}

type Package struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Description     string         `db:"description"`
	ServiceType     string         `db:"service_type"`
	Price           float64        `db:"price"`
	Currency        string         `db:"currency"`
	DurationDays    int            `db:"duration_days"`
	MaxTravelers    int            `db:"max_travelers"`
	Inclusions      StringList     `db:"inclusions"`
	Exclusions      StringList     `db:"exclusions"`
	Images          StringList     `db:"images"`
	Features        StringList     `db:"features"`
	Tags            StringList     `db:"tags"`
	Itinerary       Itinerary      `db:"itinerary"`
	Destination     Destination    `db:"destination"`
	Requirements    Requirements   `db:"requirements"`
	PricingDetails  PricingDetails `db:"pricing_details"`
	StartDate       time.Time      `db:"start_date"`
	EndDate         time.Time      `db:"end_date"`
	MaxBookings     int            `db:"max_bookings"`
	CurrentBookings int            `db:"current_bookings"`
	IsActive        bool           `db:"is_active"`
	IsFeatured      bool           `db:"is_featured"`
	model.Metadata
}

// IsAvailable reports whether the package can take a new booking right now.
func (p *Package) IsAvailable(now time.Time) bool {
	return p.IsActive &&
		!now.Before(p.StartDate) &&
		!now.After(p.EndDate) &&
		p.CurrentBookings < p.MaxBookings
}

// RemainingSpots never reports below zero even if the counter drifts.
func (p *Package) RemainingSpots() int {
	remaining := p.MaxBookings - p.CurrentBookings
	if remaining < 0 {
		return 0
	}

	return remaining
}
