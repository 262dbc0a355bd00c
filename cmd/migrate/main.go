package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/sivamiruthula/crime-management/internal/config"
	"github.com/sivamiruthula/crime-management/internal/database/migrations"
)

// Applies the embedded index migration against the configured database.
// The server's AutoMigrate covers fresh installs; this command backfills
// databases created before the index set stabilized.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close connection: %v", err)
		}
	}()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	sqlBytes, err := migrations.Files.ReadFile("indexes.sql")
	if err != nil {
		log.Fatalf("failed to read embedded SQL: %v", err)
	}

	if _, err := db.Exec(string(sqlBytes)); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	fmt.Fprintln(os.Stdout, "migration applied")
}
