package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/casavia/casavia-be/internal/models"
	"github.com/rs/zerolog/log"
)

// SearchEverywhere is the sentinel location query meaning "no filter".
const SearchEverywhere = "everywhere"

const dateLayout = "2006-01-02"

// NewPropertyInput carries the fields a host submits when listing a property.
type NewPropertyInput struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	State         string   `json:"state"`
	Country       string   `json:"country" validate:"required"`
	PostalCode    string   `json:"postalCode"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,gt=0"`
	GuestCapacity int      `json:"guestCapacity" validate:"required,gt=0"`
	Bedrooms      int      `json:"bedrooms"`
	Beds          int      `json:"beds"`
	Bathrooms     int      `json:"bathrooms"`
	HeroImageURL  string   `json:"heroImageUrl"`
	ImageURLs     []string `json:"imageUrls"`
}

// PropertyServiceProvider defines the interface for property catalog services.
type PropertyServiceProvider interface {
	GetPropertyByID(id string) (models.Property, error)
	CreateProperty(hostUsername string, input NewPropertyInput) (models.Property, error)
	Search(locationQuery, checkIn, checkOut string) ([]models.PropertySummary, error)
	GetPropertiesByHost(hostUsername string) ([]models.PropertySummary, error)
}

// PropertyService provides business logic for the property catalog.
type PropertyService struct {
	db *sql.DB
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *sql.DB) *PropertyService {
	return &PropertyService{db: db}
}

const propertyColumns = `property_id, name, description, address, city, state, country, postal_code,
	price_per_night, guest_capacity, bedrooms, beds, bathrooms, type, rating, reviews_count,
	hero_image_url, image_urls_json, host_username, host_avatar_url, created_at`

func scanProperty(scan func(dest ...any) error) (models.Property, error) {
	var p models.Property
	var imagesJSON string
	err := scan(&p.PropertyID, &p.Name, &p.Description, &p.Address, &p.City, &p.State, &p.Country, &p.PostalCode,
		&p.PricePerNight, &p.GuestCapacity, &p.Bedrooms, &p.Beds, &p.Bathrooms, &p.Type, &p.Rating, &p.ReviewsCount,
		&p.HeroImageURL, &imagesJSON, &p.HostUsername, &p.HostAvatarURL, &p.CreatedAt)
	if err != nil {
		return models.Property{}, err
	}
	if imagesJSON != "" {
		if err := json.Unmarshal([]byte(imagesJSON), &p.ImageURLs); err != nil {
			return models.Property{}, fmt.Errorf("corrupt image list for property %s: %w", p.PropertyID, err)
		}
	}
	return p, nil
}

// GetPropertyByID retrieves a single property by its ID.
func (s *PropertyService) GetPropertyByID(id string) (models.Property, error) {
	row := s.db.QueryRow("SELECT "+propertyColumns+" FROM properties WHERE property_id = ?", id)
	p, err := scanProperty(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Property{}, fmt.Errorf("property %s: %w", id, ErrNotFound)
		}
		return models.Property{}, err
	}
	return p, nil
}

// CreateProperty appends a new listing to the catalog. The property ID is
// assigned sequentially ("prop<N>"); rating and review count start at zero.
func (s *PropertyService) CreateProperty(hostUsername string, input NewPropertyInput) (models.Property, error) {
	var maxSeq sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(seq) FROM properties").Scan(&maxSeq); err != nil {
		return models.Property{}, err
	}
	seq := maxSeq.Int64 + 1

	p := models.Property{
		PropertyID:    fmt.Sprintf("prop%d", seq),
		Name:          input.Name,
		Description:   input.Description,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		Country:       input.Country,
		PostalCode:    input.PostalCode,
		PricePerNight: input.PricePerNight,
		GuestCapacity: input.GuestCapacity,
		Bedrooms:      input.Bedrooms,
		Beds:          input.Beds,
		Bathrooms:     input.Bathrooms,
		Type:          "Apartment", // Placeholder
		Rating:        0,
		ReviewsCount:  0,
		HeroImageURL:  input.HeroImageURL,
		ImageURLs:     input.ImageURLs,
		HostUsername:  hostUsername,
		HostAvatarURL: "https://placehold.co/100x100.png", // Placeholder
		CreatedAt:     time.Now().UTC(),
	}

	imagesJSON, err := json.Marshal(p.ImageURLs)
	if err != nil {
		return models.Property{}, err
	}

	stmt, err := s.db.Prepare(`INSERT INTO properties(property_id, seq, name, description, address, city, state, country, postal_code,
		price_per_night, guest_capacity, bedrooms, beds, bathrooms, type, rating, reviews_count,
		hero_image_url, image_urls_json, host_username, host_avatar_url, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Property{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(p.PropertyID, seq, p.Name, p.Description, p.Address, p.City, p.State, p.Country, p.PostalCode,
		p.PricePerNight, p.GuestCapacity, p.Bedrooms, p.Beds, p.Bathrooms, p.Type, p.Rating, p.ReviewsCount,
		p.HeroImageURL, string(imagesJSON), p.HostUsername, p.HostAvatarURL, p.CreatedAt)
	if err != nil {
		return models.Property{}, err
	}

	return p, nil
}

// Search filters the catalog by a free-text location query and, when both
// dates are supplied, by availability against the booking ledger. The query
// "everywhere" (any case) or an empty query means no location filter.
// Results preserve catalog insertion order; no ranking is applied.
func (s *PropertyService) Search(locationQuery, checkIn, checkOut string) ([]models.PropertySummary, error) {
	rows, err := s.db.Query("SELECT " + propertyColumns + " FROM properties ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	term := strings.ToLower(strings.TrimSpace(locationQuery))
	filterLocation := term != "" && term != SearchEverywhere

	var reqIn, reqOut time.Time
	filterDates := false
	if checkIn != "" && checkOut != "" {
		in, errIn := time.Parse(dateLayout, checkIn)
		out, errOut := time.Parse(dateLayout, checkOut)
		if errIn == nil && errOut == nil && out.After(in) {
			reqIn, reqOut = in, out
			filterDates = true
		}
	}

	summaries := []models.PropertySummary{}
	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, err
		}

		if filterLocation &&
			!strings.Contains(strings.ToLower(p.City), term) &&
			!strings.Contains(strings.ToLower(p.Country), term) &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Address), term) {
			continue
		}

		if filterDates {
			booked, err := s.hasOverlappingBooking(p.PropertyID, reqIn, reqOut)
			if err != nil {
				return nil, err
			}
			if booked {
				continue
			}
		}

		summaries = append(summaries, p.Summary())
	}
	return summaries, rows.Err()
}

// hasOverlappingBooking reports whether any existing booking of the property
// overlaps the half-open range [reqIn, reqOut).
func (s *PropertyService) hasOverlappingBooking(propertyID string, reqIn, reqOut time.Time) (bool, error) {
	rows, err := s.db.Query("SELECT check_in, check_out FROM bookings WHERE property_id = ?", propertyID)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var inStr, outStr string
		if err := rows.Scan(&inStr, &outStr); err != nil {
			return false, err
		}
		bIn, errIn := time.Parse(dateLayout, inStr)
		bOut, errOut := time.Parse(dateLayout, outStr)
		if errIn != nil || errOut != nil {
			log.Warn().Str("property_id", propertyID).Msg("Skipping booking with unparseable dates in availability check")
			continue
		}
		if reqIn.Before(bOut) && bIn.Before(reqOut) {
			return true, nil
		}
	}
	return false, rows.Err()
}

// GetPropertiesByHost lists the catalog entries owned by a host, in
// insertion order.
func (s *PropertyService) GetPropertiesByHost(hostUsername string) ([]models.PropertySummary, error) {
	rows, err := s.db.Query("SELECT "+propertyColumns+" FROM properties WHERE host_username = ? ORDER BY seq", hostUsername)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.PropertySummary{}
	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, p.Summary())
	}
	return summaries, rows.Err()
}
