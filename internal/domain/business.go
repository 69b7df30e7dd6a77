package domain

// LatLng is a resolved geographic coordinate pair.
type LatLng struct {
	Lat, Lng float64
}

// Place is one discovered business. Created once per search result and
// immutable for the rest of the run.
type Place struct {
	ID           string // provider place identifier, used for detail lookups
	Name         string
	Address      string
	Rating       *float64 // absent when the provider reports no rating
	ReviewsCount int
}

// Review is one customer review collected during pagination. Business,
// Address and ReviewsCount are denormalized from the owning Place so the
// reporter never has to join back.
type Review struct {
	Business     string
	Address      string
	Text         string
	Rating       *float64
	ReviewsCount int
}
