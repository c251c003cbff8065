package db

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"linkedin-scraper/logger"
	"linkedin-scraper/models"
)

// DB persists scraped profiles across runs
type DB struct {
	conn *sql.DB
}

// New opens a Postgres connection from DATABASE_URL or the individual
// DB_* environment variables and ensures the schema exists
func New() (*DB, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "linkedin_scraper")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "linkedin_scraper")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id SERIAL PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			full_name TEXT NOT NULL DEFAULT '',
			headline TEXT NOT NULL DEFAULT '',
			current_company TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			profile_url TEXT NOT NULL UNIQUE,
			is_open_to_work BOOLEAN NOT NULL DEFAULT FALSE,
			scraped_at TIMESTAMPTZ NOT NULL,
			search_query TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to create profiles table: %w", err)
	}
	return nil
}

// SaveProfiles upserts profiles keyed by profile URL. A profile seen again
// refreshes its fields and timestamp instead of creating a duplicate row.
func (db *DB) SaveProfiles(profiles []models.Profile, searchQuery string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO profiles
			(first_name, last_name, full_name, headline, current_company,
			 location, profile_url, is_open_to_work, scraped_at, search_query)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (profile_url) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			full_name = EXCLUDED.full_name,
			headline = EXCLUDED.headline,
			current_company = EXCLUDED.current_company,
			location = EXCLUDED.location,
			is_open_to_work = EXCLUDED.is_open_to_work,
			scraped_at = EXCLUDED.scraped_at,
			search_query = EXCLUDED.search_query`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range profiles {
		p := &profiles[i]
		_, err := stmt.Exec(p.FirstName, p.LastName, p.FullName, p.Headline,
			p.CurrentCompany, p.Location, p.ProfileURL, p.IsOpenToWork,
			p.ScrapedAt, searchQuery)
		if err != nil {
			return fmt.Errorf("failed to insert profile %s: %w", p.ProfileURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logger.Get().Infof("Saved %d profiles to database", len(profiles))
	return nil
}

// CountOpenToWork returns how many stored profiles carry the open-to-work
// flag
func (db *DB) CountOpenToWork() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM profiles WHERE is_open_to_work`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}
