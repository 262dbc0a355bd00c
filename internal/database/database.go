package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sivamiruthula/crime-management/internal/config"
	"github.com/sivamiruthula/crime-management/internal/models"
)

// Connect opens the PostgreSQL connection used by the whole application.
// TranslateError is enabled so constraint violations come back as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated and the services can
// map them onto the domain error taxonomy.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, cfg.DBTimezone,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for every entity the system owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.StaffAccount{},
		&models.Session{},
		&models.LoginAttempt{},
		&models.Complainant{},
		&models.CrimeType{},
		&models.Case{},
		&models.CaseAssignment{},
		&models.Evidence{},
		&models.Investigation{},
		&models.AuditLog{},
		&models.Notification{},
	)
}
