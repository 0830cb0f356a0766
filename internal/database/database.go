package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; keeping the pool at one connection
	// avoids SQLITE_BUSY under concurrent request handling.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT,
		last_name TEXT,
		email TEXT,
		password_hash TEXT NOT NULL,
		-- Store the role set as JSON text
		roles_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS properties (
		property_id TEXT NOT NULL PRIMARY KEY,
		seq INTEGER NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT,
		address TEXT,
		city TEXT,
		state TEXT,
		country TEXT,
		postal_code TEXT,
		price_per_night REAL NOT NULL,
		guest_capacity INTEGER NOT NULL,
		bedrooms INTEGER,
		beds INTEGER,
		bathrooms INTEGER,
		type TEXT,
		rating REAL,
		reviews_count INTEGER,
		hero_image_url TEXT,
		image_urls_json TEXT,
		host_username TEXT NOT NULL,
		host_avatar_url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS bookings (
		booking_id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		-- Full snapshot of the property at booking time
		property_json TEXT NOT NULL,
		property_id TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL,
		guests INTEGER NOT NULL,
		total_price REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT,
		entity_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
