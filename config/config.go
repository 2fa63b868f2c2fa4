package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a local .env file when one exists. Deployed environments
// are expected to provide real environment variables instead.
func LoadEnv() {
	if _, err := os.Stat(".env"); err != nil {
		log.Println("No .env file, using system environment variables")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file:", err)
	}
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
