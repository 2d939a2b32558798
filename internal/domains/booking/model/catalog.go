package model

const (
	ServiceVisaAssistance   = "visa-assistance"
	ServiceTravelInsurance  = "travel-insurance"
	ServicePrivateTransport = "private-transport"
	ServiceExtraBaggage     = "extra-baggage"
	ServiceGuidedTour       = "guided-tour"
)

// ServiceCatalog fixes the unit price of every optional add-on. Lines are
// priced from here; client-supplied prices are ignored so aggregation never
// sees free-form services or tampered totals.
var ServiceCatalog = map[string]float64{
	ServiceVisaAssistance:   150,
	ServiceTravelInsurance:  75,
	ServicePrivateTransport: 200,
	ServiceExtraBaggage:     50,
	ServiceGuidedTour:       120,
}
