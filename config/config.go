package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	ServerPort       string
	SessionSecret    string
	AdminPassword    string
}

func LoadConfig() Config {
	return Config{
		DatabaseHost:     getEnv("DATABASE_HOST", "db"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("DATABASE_USER", "postgres"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "password"),
		DatabaseName:     getEnv("DATABASE_NAME", "auction"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		SessionSecret:    getEnv("SESSION_SECRET", "secret"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
}

func (c Config) PostgresConnStr() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
	)
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func InitDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresConnStr())
	if err != nil {
		return nil, fmt.Errorf("открытие соединения с БД: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("пинг БД: %w", err)
	}
	if err = createTables(ctx, db); err != nil {
		return nil, fmt.Errorf("создание таблиц: %w", err)
	}
	return db, nil
}
