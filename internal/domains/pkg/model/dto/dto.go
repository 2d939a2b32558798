package dto

import (
	"safar/internal/domains/pkg/model"
	"safar/shared/constant"
	gDto "safar/shared/dto"
	"safar/shared/failure"
	gModel "safar/shared/model"
	"safar/shared/timezone"

	"github.com/google/uuid"
)

type ItineraryDayRequest struct {
	Day           int      `json:"day"           validate:"required,gte=1"`
	Title         string   `json:"title"         validate:"required,max=200"`
	Description   string   `json:"description"   validate:"omitempty"`
	Activities    []string `json:"activities"    validate:"omitempty,dive,required"`
	Meals         []string `json:"meals"         validate:"omitempty,dive,required"`
	Accommodation string   `json:"accommodation" validate:"omitempty,max=200"`
}

type DestinationRequest struct {
	Country     string             `json:"country" validate:"required,max=100"`
	City        string             `json:"city"    validate:"required,max=100"`
	Coordinates *model.Coordinates `json:"coordinates,omitempty"`
}

type RequirementsRequest struct {
	MinAge              *int `json:"minAge,omitempty" validate:"omitempty,gte=0"`
	MaxAge              *int `json:"maxAge,omitempty" validate:"omitempty,gte=0"`
	VisaRequired        bool `json:"visaRequired"`
	PassportRequired    bool `json:"passportRequired"`
	VaccinationRequired bool `json:"vaccinationRequired"`
}

type AvailabilityRequest struct {
	StartDate   string `json:"startDate"   validate:"required"`
	EndDate     string `json:"endDate"     validate:"required"`
	MaxBookings int    `json:"maxBookings" validate:"required,gte=1"`
}

type CreatePackageRequest struct {
	Name           string                `json:"name"           validate:"required,max=200"`
	Description    string                `json:"description"    validate:"required"`
	ServiceType    string                `json:"serviceType"    validate:"required,oneof=hajj umrah global-tourism"`
	Price          float64               `json:"price"          validate:"gte=0"`
	Currency       string                `json:"currency"       validate:"required,oneof=USD SAR EUR GBP"`
	DurationDays   int                   `json:"durationDays"   validate:"required,gte=1"`
	MaxTravelers   int                   `json:"maxTravelers"   validate:"required,gte=1"`
	Inclusions     []string              `json:"inclusions"     validate:"omitempty,dive,required"`
	Exclusions     []string              `json:"exclusions"     validate:"omitempty,dive,required"`
	Images         []string              `json:"images"         validate:"omitempty,dive,required"`
	Features       []string              `json:"features"       validate:"omitempty,dive,required"`
	Tags           []string              `json:"tags"           validate:"omitempty,dive,required"`
	Itinerary      []ItineraryDayRequest `json:"itinerary"      validate:"omitempty,dive"`
	Destination    DestinationRequest    `json:"destination"    validate:"required"`
	Requirements   *RequirementsRequest  `json:"requirements,omitempty"`
	PricingDetails map[string]float64    `json:"pricingDetails,omitempty"`
	Availability   AvailabilityRequest   `json:"availability"   validate:"required"`
	IsFeatured     bool                  `json:"isFeatured"`
}

func (c *CreatePackageRequest) ToModel(user string) (model.Package, error) {
	startDate, err := timezone.Parse(constant.DateOnlyFormat, c.Availability.StartDate)
	if err != nil {
		return model.Package{}, failure.BadRequestFromString("availability.startDate must be formatted YYYY-MM-DD") //nolint:wrapcheck
	}

	endDate, err := timezone.Parse(constant.DateOnlyFormat, c.Availability.EndDate)
	if err != nil {
		return model.Package{}, failure.BadRequestFromString("availability.endDate must be formatted YYYY-MM-DD") //nolint:wrapcheck
	}

	if endDate.Before(startDate) {
		return model.Package{}, failure.BadRequestFromString("availability.endDate must not precede availability.startDate") //nolint:wrapcheck
	}

	itinerary := make(model.Itinerary, len(c.Itinerary))
	for i, day := range c.Itinerary {
		itinerary[i] = model.ItineraryDay{
			Day:           day.Day,
			Title:         day.Title,
			Description:   day.Description,
			Activities:    day.Activities,
			Meals:         day.Meals,
			Accommodation: day.Accommodation,
		}
	}

	requirements := model.Requirements{}
	if c.Requirements != nil {
		requirements = model.Requirements{
			MinAge:              c.Requirements.MinAge,
			MaxAge:              c.Requirements.MaxAge,
			VisaRequired:        c.Requirements.VisaRequired,
			PassportRequired:    c.Requirements.PassportRequired,
			VaccinationRequired: c.Requirements.VaccinationRequired,
		}
	}

	return model.Package{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Description:  c.Description,
		ServiceType:  c.ServiceType,
		Price:        c.Price,
		Currency:     c.Currency,
		DurationDays: c.DurationDays,
		MaxTravelers: c.MaxTravelers,
		Inclusions:   model.StringList(c.Inclusions),
		Exclusions:   model.StringList(c.Exclusions),
		Images:       model.StringList(c.Images),
		Features:     model.StringList(c.Features),
		Tags:         model.StringList(c.Tags),
		Itinerary:    itinerary,
		Destination: model.Destination{
			Country:     c.Destination.Country,
			City:        c.Destination.City,
			Coordinates: c.Destination.Coordinates,
		},
		Requirements:   requirements,
		PricingDetails: model.PricingDetails(c.PricingDetails),
		StartDate:      startDate,
		EndDate:        endDate,
		MaxBookings:    c.Availability.MaxBookings,
		IsActive:       true,
		IsFeatured:     c.IsFeatured,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdatePackageRequest carries the db-tagged partial fields; zero values are
// skipped, so absent fields stay untouched. Availability dates travel as
// strings and are parsed by the service.
type UpdatePackageRequest struct {
	Name           string               `db:"name"            json:"name"           validate:"omitempty,max=200"`
	Description    string               `db:"description"     json:"description"    validate:"omitempty"`
	ServiceType    string               `db:"service_type"    json:"serviceType"    validate:"omitempty,oneof=hajj umrah global-tourism"`
	Price          float64              `db:"price"           json:"price"          validate:"omitempty,gte=0"`
	Currency       string               `db:"currency"        json:"currency"       validate:"omitempty,oneof=USD SAR EUR GBP"`
	DurationDays   int                  `db:"duration_days"   json:"durationDays"   validate:"omitempty,gte=1"`
	MaxTravelers   int                  `db:"max_travelers"   json:"maxTravelers"   validate:"omitempty,gte=1"`
	Inclusions     model.StringList     `db:"inclusions"      json:"inclusions"     validate:"omitempty,dive,required"`
	Exclusions     model.StringList     `db:"exclusions"      json:"exclusions"     validate:"omitempty,dive,required"`
	Images         model.StringList     `db:"images"          json:"images"         validate:"omitempty,dive,required"`
	Features       model.StringList     `db:"features"        json:"features"       validate:"omitempty,dive,required"`
	Tags           model.StringList     `db:"tags"            json:"tags"           validate:"omitempty,dive,required"`
	Itinerary      model.Itinerary      `db:"itinerary"       json:"itinerary"      validate:"omitempty,dive"`
	Destination    *model.Destination   `db:"destination"     json:"destination"    validate:"omitempty"`
	Requirements   *model.Requirements  `db:"requirements"    json:"requirements"   validate:"omitempty"`
	PricingDetails model.PricingDetails `db:"pricing_details" json:"pricingDetails" validate:"omitempty"`
	MaxBookings    int                  `db:"max_bookings"    json:"maxBookings"    validate:"omitempty,gte=1"`
	StartDate      string               `json:"startDate"     validate:"omitempty"`
	EndDate        string               `json:"endDate"       validate:"omitempty"`
	IsFeatured     *bool                `db:"is_featured"     json:"isFeatured"     validate:"omitempty"`
}

type UpdatePackageStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type AvailabilityResponse struct {
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	MaxBookings     int    `json:"maxBookings"`
	CurrentBookings int    `json:"currentBookings"`
}

type PackageResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	ServiceType    string               `json:"serviceType"`
	Price          float64              `json:"price"`
	Currency       string               `json:"currency"`
	DurationDays   int                  `json:"durationDays"`
	MaxTravelers   int                  `json:"maxTravelers"`
	Inclusions     []string             `json:"inclusions"`
	Exclusions     []string             `json:"exclusions"`
	Images         []string             `json:"images"`
	Features       []string             `json:"features"`
	Tags           []string             `json:"tags"`
	Itinerary      model.Itinerary      `json:"itinerary"`
	Destination    model.Destination    `json:"destination"`
	Requirements   model.Requirements   `json:"requirements"`
	PricingDetails model.PricingDetails `json:"pricingDetails,omitempty"`
	Availability   AvailabilityResponse `json:"availability"`
	IsActive       bool                 `json:"isActive"`
	IsFeatured     bool                 `json:"isFeatured"`
	IsAvailable    bool                 `json:"isAvailable"`
	RemainingSpots int                  `json:"remainingSpots"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.ServiceType = model.ServiceType
	r.Price = model.Price
	r.Currency = model.Currency
	r.DurationDays = model.DurationDays
	r.MaxTravelers = model.MaxTravelers
	r.Inclusions = model.Inclusions
	r.Exclusions = model.Exclusions
	r.Images = model.Images
	r.Features = model.Features
	r.Tags = model.Tags
	r.Itinerary = model.Itinerary
	r.Destination = model.Destination
	r.Requirements = model.Requirements
	r.PricingDetails = model.PricingDetails
	r.Availability = AvailabilityResponse{
		StartDate:       model.StartDate.Format(constant.DateOnlyFormat),
		EndDate:         model.EndDate.Format(constant.DateOnlyFormat),
		MaxBookings:     model.MaxBookings,
		CurrentBookings: model.CurrentBookings,
	}
	r.IsActive = model.IsActive
	r.IsFeatured = model.IsFeatured
	r.IsAvailable = model.IsAvailable(timezone.Now())
	r.RemainingSpots = model.RemainingSpots()
	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Packages   []PackageResponse `json:"packages"`
	Pagination gDto.Pagination   `json:"pagination"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, pagination gDto.Pagination) {
	r.Pagination = pagination

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}
