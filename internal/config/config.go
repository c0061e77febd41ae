package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Holds    HoldsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type HoldsConfig struct {
	TTL           time.Duration
	RateLimit     int
	RateWindow    time.Duration
	SweepInterval time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverPort, err := envInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pgPort, err := envInt("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pgUser, err := envRequired("POSTGRES_USER")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pgPassword, err := envRequired("POSTGRES_PASSWORD")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pgName, err := envRequired("POSTGRES_DB")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	holdTTLMin, err := envInt("HOLD_TTL_MINUTES", 15)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	holdRateLimit, err := envInt("HOLD_RATE_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sweepMin, err := envInt("HOLD_SWEEP_MINUTES", 5)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Config{
		Server: ServerConfig{
			Host: envStr("SERVER_HOST", "localhost"),
			Port: serverPort,
		},
		Postgres: PostgresConfig{
			User:     pgUser,
			Password: pgPassword,
			Name:     pgName,
			Host:     envStr("POSTGRES_HOST", "localhost"),
			Port:     pgPort,
			SSLMode:  envStr("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     envStr("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Holds: HoldsConfig{
			TTL:           time.Duration(holdTTLMin) * time.Minute,
			RateLimit:     holdRateLimit,
			RateWindow:    time.Minute,
			SweepInterval: time.Duration(sweepMin) * time.Minute,
		},
	}, nil
}

func envStr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envRequired(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	return v, nil
}

func envInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}
