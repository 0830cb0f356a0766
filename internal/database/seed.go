package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username  string
	firstName string
	lastName  string
	email     string
	roles     []string
}

type seedProperty struct {
	name          string
	description   string
	address       string
	city          string
	state         string
	country       string
	postalCode    string
	pricePerNight float64
	guestCapacity int
	bedrooms      int
	beds          int
	bathrooms     int
	heroImageURL  string
	hostUsername  string
}

// SeedDemoData inserts a small demo data set into an empty database so the
// frontend has something to show during development. It is a no-op when any
// user already exists. All demo accounts use the password "password".
func SeedDemoData(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := []seedUser{
		{"Max Robinson", "Max", "Robinson", "max@example.com", []string{"USER"}},
		{"Sarah Host", "Sarah", "Host", "sarah@example.com", []string{"HOST"}},
		{"Test User", "Test", "User", "test@example.com", []string{"USER"}},
	}

	for _, u := range users {
		rolesJSON, err := json.Marshal(u.roles)
		if err != nil {
			return err
		}
		_, err = db.Exec(
			"INSERT INTO users(id, username, first_name, last_name, email, password_hash, roles_json) VALUES(?, ?, ?, ?, ?, ?, ?)",
			uuid.New().String(), u.username, u.firstName, u.lastName, u.email, string(hash), string(rolesJSON),
		)
		if err != nil {
			return err
		}
	}

	properties := []seedProperty{
		{
			name:          "Canal View Loft",
			description:   "Bright loft overlooking the Prinsengracht with original beams and a reading nook.",
			address:       "Prinsengracht 412",
			city:          "Amsterdam",
			state:         "North Holland",
			country:       "Netherlands",
			postalCode:    "1016 JC",
			pricePerNight: 180,
			guestCapacity: 2,
			bedrooms:      1,
			beds:          1,
			bathrooms:     1,
			heroImageURL:  "https://placehold.co/600x400.png",
			hostUsername:  "Sarah Host",
		},
		{
			name:          "Seaside Casita",
			description:   "Whitewashed casita two streets from the beach, with a rooftop terrace.",
			address:       "Calle del Mar 8",
			city:          "Valencia",
			state:         "Valencia",
			country:       "Spain",
			postalCode:    "46011",
			pricePerNight: 95,
			guestCapacity: 4,
			bedrooms:      2,
			beds:          3,
			bathrooms:     1,
			heroImageURL:  "https://placehold.co/600x400.png",
			hostUsername:  "Sarah Host",
		},
		{
			name:          "Alpine Chalet Perle",
			description:   "Timber chalet at the foot of the lifts, sauna and ski storage included.",
			address:       "Dorfstrasse 27",
			city:          "Zermatt",
			state:         "Valais",
			country:       "Switzerland",
			postalCode:    "3920",
			pricePerNight: 320,
			guestCapacity: 6,
			bedrooms:      3,
			beds:          4,
			bathrooms:     2,
			heroImageURL:  "https://placehold.co/600x400.png",
			hostUsername:  "Sarah Host",
		},
	}

	for i, p := range properties {
		imagesJSON, err := json.Marshal([]string{p.heroImageURL})
		if err != nil {
			return err
		}
		_, err = db.Exec(
			`INSERT INTO properties(property_id, seq, name, description, address, city, state, country, postal_code,
				price_per_night, guest_capacity, bedrooms, beds, bathrooms, type, rating, reviews_count,
				hero_image_url, image_urls_json, host_username, host_avatar_url)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fmt.Sprintf("prop%d", i+1), i+1, p.name, p.description, p.address, p.city, p.state, p.country, p.postalCode,
			p.pricePerNight, p.guestCapacity, p.bedrooms, p.beds, p.bathrooms, "Apartment", 0, 0,
			p.heroImageURL, string(imagesJSON), p.hostUsername, "https://placehold.co/100x100.png",
		)
		if err != nil {
			return err
		}
	}

	log.Info().Int("users", len(users)).Int("properties", len(properties)).Msg("Seeded demo data")
	return nil
}
