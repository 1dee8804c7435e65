package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/itineraire-app/auth-service/internal/models"
)

type Config struct {
	DatabaseHost string
	DatabasePort string
	DatabaseUser string
	DatabasePass string
	DatabaseName string
	JWTSecret    []byte
	CORSOrigin   string
	AuthPort     int
	KafkaBrokers []string
	LogLevel     string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		DatabaseHost: os.Getenv("DATABASE_HOST"),
		DatabasePort: envDefault("DATABASE_PORT", "5432"),
		DatabaseUser: os.Getenv("DATABASE_USER"),
		DatabasePass: os.Getenv("DATABASE_PASS"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		CORSOrigin:   os.Getenv("URL_CORS"),
		AuthPort:     envIntDefault("PORT_AUTH", 4000),
		KafkaBrokers: csv(os.Getenv("KAFKA_BROKERS")),
		LogLevel:     envDefault("LOG_LEVEL", "info"),
	}

	mustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	mustNonEmpty(cfg.DatabaseHost, "DATABASE_HOST")
	mustNonEmpty(cfg.DatabaseUser, "DATABASE_USER")
	mustNonEmpty(cfg.DatabaseName, "DATABASE_NAME")

	return cfg
}

func InitDB(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DatabaseUser, cfg.DatabasePass, cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connexion à la BD: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("récupération de sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping de la BD: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		return nil, fmt.Errorf("migration de la BD: %w", err)
	}

	return db, nil
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func mustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func mustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
