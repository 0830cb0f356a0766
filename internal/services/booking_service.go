package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casavia/casavia-be/internal/models"
)

// NewBookingInput carries a reservation request. Dates are ISO-8601
// calendar dates (YYYY-MM-DD).
type NewBookingInput struct {
	PropertyID string         `json:"propertyId"`
	CheckIn    string         `json:"checkIn"`
	CheckOut   string         `json:"checkOut"`
	GuestList  []models.Guest `json:"guestList"`
}

// BookingServiceProvider defines the interface for the booking ledger.
type BookingServiceProvider interface {
	CreateBooking(userID string, input NewBookingInput) (models.Booking, error)
	GetBookingsByUser(userID string) ([]models.Booking, error)
	CountBookings() (int, error)
}

// BookingService provides the reservation workflow over the booking ledger.
type BookingService struct {
	db          *sql.DB
	propertySvc PropertyServiceProvider
}

// NewBookingService creates a new BookingService.
func NewBookingService(db *sql.DB, propertySvc PropertyServiceProvider) *BookingService {
	return &BookingService{db: db, propertySvc: propertySvc}
}

// CreateBooking validates a reservation request against the catalog and, on
// success, appends exactly one entry to the ledger. Validation order:
// missing fields, unknown property, non-positive night count, guest count
// over capacity. No ledger entry is written on any rejection path.
func (s *BookingService) CreateBooking(userID string, input NewBookingInput) (models.Booking, error) {
	if input.PropertyID == "" || input.CheckIn == "" || input.CheckOut == "" || len(input.GuestList) == 0 {
		return models.Booking{}, fmt.Errorf("missing required booking information: %w", ErrMissingFields)
	}

	property, err := s.propertySvc.GetPropertyByID(input.PropertyID)
	if err != nil {
		return models.Booking{}, err
	}

	checkIn, err := time.Parse(dateLayout, input.CheckIn)
	if err != nil {
		return models.Booking{}, fmt.Errorf("check-in %q: %w", input.CheckIn, ErrInvalidDateRange)
	}
	checkOut, err := time.Parse(dateLayout, input.CheckOut)
	if err != nil {
		return models.Booking{}, fmt.Errorf("check-out %q: %w", input.CheckOut, ErrInvalidDateRange)
	}

	// Whole calendar days; same-day and reversed ranges are both invalid.
	// No clamping or auto-swap.
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return models.Booking{}, ErrInvalidDateRange
	}

	if len(input.GuestList) > property.GuestCapacity {
		return models.Booking{}, fmt.Errorf("this property only accommodates %d guests: %w", property.GuestCapacity, ErrCapacityExceeded)
	}

	count, err := s.CountBookings()
	if err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		BookingID:  fmt.Sprintf("booking-%d-%d", count+1, time.Now().UnixMilli()),
		UserID:     userID,
		Property:   property, // full snapshot, not a reference
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Guests:     len(input.GuestList),
		TotalPrice: float64(nights) * property.PricePerNight,
		CreatedAt:  time.Now().UTC(),
	}

	propertyJSON, err := json.Marshal(booking.Property)
	if err != nil {
		return models.Booking{}, err
	}

	stmt, err := s.db.Prepare("INSERT INTO bookings(booking_id, user_id, property_json, property_id, check_in, check_out, guests, total_price, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Booking{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(booking.BookingID, booking.UserID, string(propertyJSON), booking.Property.PropertyID,
		booking.CheckIn, booking.CheckOut, booking.Guests, booking.TotalPrice, booking.CreatedAt)
	if err != nil {
		return models.Booking{}, err
	}

	return booking, nil
}

// GetBookingsByUser retrieves a user's bookings in insertion order.
func (s *BookingService) GetBookingsByUser(userID string) ([]models.Booking, error) {
	rows, err := s.db.Query("SELECT booking_id, user_id, property_json, check_in, check_out, guests, total_price, created_at FROM bookings WHERE user_id = ? ORDER BY created_at, booking_id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var propertyJSON string
		if err := rows.Scan(&b.BookingID, &b.UserID, &propertyJSON, &b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPrice, &b.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(propertyJSON), &b.Property); err != nil {
			return nil, fmt.Errorf("corrupt property snapshot for booking %s: %w", b.BookingID, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CountBookings returns the current ledger length.
func (s *BookingService) CountBookings() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	return count, nil
}
