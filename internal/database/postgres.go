package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// gormConfig is applied to every GORM connection. Error translation is
// required so unique-index violations surface as gorm.ErrDuplicatedKey
// instead of driver-specific errors; the duplicate-submission guard depends
// on it.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// ConnectPostgres establishes a connection to the PostgreSQL database using the provided DSN.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}
