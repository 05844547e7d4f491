package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// NewPostgresDB opens and pings the database, retrying while postgres is
// still starting up (the common case under docker compose).
func NewPostgresDB(cfg Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	var db *sql.DB
	var err error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		log.Printf("Opening postgres connection (attempt %d/%d)...", attempt, connectAttempts)
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			log.Println("Postgres connection established.")
			return db, nil
		}

		log.Printf("Postgres not ready: %v. Retrying in %s...", err, connectBackoff)
		time.Sleep(connectBackoff)
	}

	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", connectAttempts, err)
}
