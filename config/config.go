package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	StorageType string
	HTTP        HTTPConfig
	WS          WSConfig
	Postgres    PostgresConfig
	JWTSecret   string
	ImagesDir   string
}

type HTTPConfig struct {
	Port string
}

type WSConfig struct {
	KeepAliveSeconds int
}

type PostgresConfig struct {
	User     string
	Password string
	DB       string
	Host     string
	Port     int
	SSLMode  string
}

func (pc PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.User,
		pc.Password,
		pc.Host,
		pc.Port,
		pc.DB,
		pc.SSLMode,
	)
}

func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		StorageType: getEnv("STORAGE_TYPE", "inmemory"),
		HTTP: HTTPConfig{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		WS: WSConfig{
			KeepAliveSeconds: getInt("WS_KEEPALIVE_SECONDS", 10),
		},
		JWTSecret: mustGetEnv("JWT_SECRET"),
		ImagesDir: getEnv("IMAGES_DIR", "images"),
	}

	if cfg.StorageType == "postgres" {
		cfg.Postgres = PostgresConfig{
			User:     mustGetEnv("POSTGRES_USER"),
			Password: mustGetEnv("POSTGRES_PASSWORD"),
			DB:       mustGetEnv("POSTGRES_DB"),
			Host:     mustGetEnv("POSTGRES_HOST"),
			Port:     getInt("POSTGRES_PORT", 5432),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		}
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("missing required env var: " + key)
	}
	return val
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		panic("invalid int for env var " + key + ": " + val)
	}
	return i
}
