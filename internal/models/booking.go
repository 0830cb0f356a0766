package models

import "time"

// Guest is one entry of the guest list submitted with a booking request.
type Guest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Booking represents a completed reservation. The property is embedded
// as a full snapshot, not a reference, so later catalog changes never
// rewrite past bookings. Check-in and check-out are calendar dates in
// ISO-8601 form (YYYY-MM-DD).
type Booking struct {
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	Property   Property  `json:"property"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}
