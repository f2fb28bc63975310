package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL   string
	REDIS_ADDRESS  string
	REDIS_PASSWORD string
	JWT_SECRET     string
	PORT           string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:  os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		PORT:           envOrDefault("PORT", "8080"),
	}

	return Config
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
