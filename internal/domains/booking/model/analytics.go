package model

// Aggregation rows scanned straight out of the analytics queries.

type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

type ServiceTypeCount struct {
	ServiceType string `db:"service_type"`
	Count       int    `db:"count"`
}

type MonthlyRevenue struct {
	Year     int     `db:"year"`
	Month    int     `db:"month"`
	Revenue  float64 `db:"revenue"`
	Bookings int     `db:"bookings"`
}

type PackagePopularity struct {
	PackageID   string `db:"package_id"`
	PackageName string `db:"package_name"`
	Bookings    int    `db:"bookings"`
}
