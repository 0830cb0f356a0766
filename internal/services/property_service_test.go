package services

import (
	"errors"
	"testing"

	"github.com/casavia/casavia-be/internal/models"
)

func listInput(name, city, country, address string, price float64, capacity int) NewPropertyInput {
	return NewPropertyInput{
		Name:          name,
		Description:   "a place to stay",
		Address:       address,
		City:          city,
		State:         "",
		Country:       country,
		PostalCode:    "0000",
		PricePerNight: price,
		GuestCapacity: capacity,
		Bedrooms:      1,
		Beds:          1,
		Bathrooms:     1,
		HeroImageURL:  "https://placehold.co/600x400.png",
	}
}

func TestCreateProperty_SequentialIDsAndPlaceholders(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	first, err := svc.CreateProperty("sarah", listInput("Canal Loft", "Amsterdam", "Netherlands", "Prinsengracht 412", 180, 2))
	if err != nil {
		t.Fatalf("CreateProperty() error = %v", err)
	}
	second, err := svc.CreateProperty("sarah", listInput("Casita", "Valencia", "Spain", "Calle del Mar 8", 95, 4))
	if err != nil {
		t.Fatalf("CreateProperty() error = %v", err)
	}

	if first.PropertyID != "prop1" || second.PropertyID != "prop2" {
		t.Errorf("IDs = %q, %q, want prop1, prop2", first.PropertyID, second.PropertyID)
	}
	if first.Rating != 0 || first.ReviewsCount != 0 {
		t.Errorf("rating/reviews = %v/%v, want zero placeholders", first.Rating, first.ReviewsCount)
	}
	if first.HostUsername != "sarah" {
		t.Errorf("HostUsername = %q, want %q", first.HostUsername, "sarah")
	}
}

func TestGetPropertyByID_Unknown(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))

	if _, err := svc.GetPropertyByID("prop404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPropertyByID() error = %v, want ErrNotFound", err)
	}
}

func seedCatalog(t *testing.T, svc *PropertyService) []models.Property {
	t.Helper()
	inputs := []NewPropertyInput{
		listInput("Canal Loft", "Amsterdam", "Netherlands", "Prinsengracht 412", 180, 2),
		listInput("Seaside Casita", "Valencia", "Spain", "Calle del Mar 8", 95, 4),
		listInput("Chalet Perle", "Zermatt", "Switzerland", "Dorfstrasse 27", 320, 6),
	}
	created := make([]models.Property, 0, len(inputs))
	for _, in := range inputs {
		p, err := svc.CreateProperty("sarah", in)
		if err != nil {
			t.Fatalf("CreateProperty() error = %v", err)
		}
		created = append(created, p)
	}
	return created
}

func TestSearch_EverywhereReturnsAllInInsertionOrder(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	created := seedCatalog(t, svc)

	for _, query := range []string{"everywhere", "EVERYWHERE", "EveryWhere", ""} {
		got, err := svc.Search(query, "", "")
		if err != nil {
			t.Fatalf("Search(%q) error = %v", query, err)
		}
		if len(got) != len(created) {
			t.Fatalf("Search(%q) returned %d results, want %d", query, len(got), len(created))
		}
		for i := range got {
			if got[i].PropertyID != created[i].PropertyID {
				t.Errorf("Search(%q)[%d] = %q, want %q (insertion order)", query, i, got[i].PropertyID, created[i].PropertyID)
			}
		}
	}
}

func TestSearch_SubstringAcrossFields(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	seedCatalog(t, svc)

	cases := []struct {
		query string
		want  string
	}{
		{"amsterdam", "prop1"},   // city, case-insensitive
		{"SPAIN", "prop2"},       // country
		{"chalet", "prop3"},      // name
		{"prinsengracht", "prop1"}, // address
	}
	for _, tc := range cases {
		got, err := svc.Search(tc.query, "", "")
		if err != nil {
			t.Fatalf("Search(%q) error = %v", tc.query, err)
		}
		if len(got) != 1 || got[0].PropertyID != tc.want {
			t.Errorf("Search(%q) = %v, want single result %s", tc.query, got, tc.want)
		}
	}
}

func TestSearch_NoMatchReturnsEmptyList(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	seedCatalog(t, svc)

	got, err := svc.Search("atlantis", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got == nil {
		t.Fatal("Search() returned nil, want empty list")
	}
	if len(got) != 0 {
		t.Errorf("Search() returned %d results, want 0", len(got))
	}
}

func TestSearch_ReturnsSummariesNotFullRecords(t *testing.T) {
	svc := NewPropertyService(newTestDB(t))
	created := seedCatalog(t, svc)

	got, err := svc.Search("amsterdam", "", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Search() returned %d results, want 1", len(got))
	}
	want := created[0].Summary()
	if got[0] != want {
		t.Errorf("summary = %+v, want %+v", got[0], want)
	}
}

func TestSearch_ExcludesBookedDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyService(db)
	seedCatalog(t, svc)

	bookingSvc := NewBookingService(db, svc)
	_, err := bookingSvc.CreateBooking("user-1", NewBookingInput{
		PropertyID: "prop1",
		CheckIn:    "2024-06-10",
		CheckOut:   "2024-06-15",
		GuestList:  []models.Guest{{Name: "Max", Age: 30}},
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	// Overlapping range: prop1 is excluded.
	got, err := svc.Search("everywhere", "2024-06-12", "2024-06-14")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, s := range got {
		if s.PropertyID == "prop1" {
			t.Error("booked property must be excluded from date-filtered search")
		}
	}
	if len(got) != 2 {
		t.Errorf("Search() returned %d results, want 2", len(got))
	}

	// Check-in on the previous guest's check-out day is fine (half-open range).
	got, err = svc.Search("everywhere", "2024-06-15", "2024-06-18")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("back-to-back range: %d results, want 3", len(got))
	}
}
