package models

import "time"

// Property represents a single rental listing. Properties are immutable
// after creation; bookings store a full snapshot of the record as it was
// at booking time.
type Property struct {
	PropertyID    string   `json:"propertyId"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	PostalCode    string   `json:"postalCode"`
	PricePerNight float64  `json:"pricePerNight"`
	GuestCapacity int      `json:"guestCapacity"`
	Bedrooms      int      `json:"bedrooms"`
	Beds          int      `json:"beds"`
	Bathrooms     int      `json:"bathrooms"`
	Type          string   `json:"type"`
	Rating        float64  `json:"rating"`
	ReviewsCount  int      `json:"reviewsCount"`
	HeroImageURL  string   `json:"heroImageUrl"`
	ImageURLs     []string `json:"imageUrls"`
	HostUsername  string   `json:"hostUsername"`
	HostAvatarURL string   `json:"hostAvatarUrl"`

	CreatedAt time.Time `json:"createdAt"`
}

// PropertySummary is the projection of a Property used by list views.
type PropertySummary struct {
	PropertyID    string  `json:"propertyId"`
	Name          string  `json:"name"`
	City          string  `json:"city"`
	HeroImageURL  string  `json:"heroImageUrl"`
	PricePerNight float64 `json:"pricePerNight"`
	HostUsername  string  `json:"hostUsername"`
}

// Summary returns the list-view projection of the property.
func (p Property) Summary() PropertySummary {
	return PropertySummary{
		PropertyID:    p.PropertyID,
		Name:          p.Name,
		City:          p.City,
		HeroImageURL:  p.HeroImageURL,
		PricePerNight: p.PricePerNight,
		HostUsername:  p.HostUsername,
	}
}
