package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	GinMode    string
	JWTSecret  string
	AuthBypass bool
}

func Load() *Config {
	// A missing .env is fine; deployments use plain environment variables.
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "habituser"),
		DBPassword: getEnv("DB_PASSWORD", "habitpassword"),
		DBName:     getEnv("DB_NAME", "family_habits"),
		ServerPort: getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		JWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
		AuthBypass: getEnv("AUTH_BYPASS", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
