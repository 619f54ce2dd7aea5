package postgres

import (
	"database/sql"
	"log"
)

// RunMigrations executes database migrations.
func RunMigrations(db *sql.DB) error {
	for _, m := range migrations() {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("Migrations completed")
	return nil
}

func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			first_name VARCHAR(255),
			last_name VARCHAR(255),
			email VARCHAR(255),
			dob VARCHAR(32),
			status VARCHAR(32) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		// Secondary lookup key for the status endpoint.
		`CREATE INDEX IF NOT EXISTS idx_users_email_dob ON users (email, dob)`,
	}
}
