package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	ServerPort string

	// SessionTimeoutMinutes is the idle timeout stamped onto every new
	// session. The expiry sweep reads it back per session.
	SessionTimeoutMinutes int

	// BcryptCost for password hashing. 0 means bcrypt.DefaultCost.
	BcryptCost int
}

func Load() (*Config, error) {
	// loads .env in dev; ignored when absent
	_ = godotenv.Load(".env")

	cfg := &Config{
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSSLMode:             os.Getenv("DB_SSLMODE"),
		DBTimezone:            os.Getenv("DB_TIMEZONE"),
		ServerPort:            os.Getenv("SERVER_PORT"),
		SessionTimeoutMinutes: envInt("SESSION_TIMEOUT_MINUTES", 480),
		BcryptCost:            envInt("BCRYPT_COST", 0),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database environment variables are not configured")
	}
	return cfg, nil
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
