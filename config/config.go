package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultPort = "3000"

// Config holds everything read from the environment at boot. Loaded once;
// never mutated afterwards.
type Config struct {
	DBUser    string
	DBPass    string
	DBHost    string
	DBName    string
	JWTSecret string
	Port      string
	FEOrigins []string
	GinMode   string
}

// LoadEnv pulls in a .env file if one exists. Missing files are fine in
// deployed environments where the platform injects the variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found")
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		DBUser:    os.Getenv("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    os.Getenv("DB_HOST"),
		DBName:    os.Getenv("DB_NAME"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Port:      os.Getenv("PORT"),
		GinMode:   os.Getenv("GIN_MODE"),
	}
	for envVar, value := range map[string]string{
		"DB_USER":    cfg.DBUser,
		"DB_PASS":    cfg.DBPass,
		"DB_HOST":    cfg.DBHost,
		"JWT_SECRET": cfg.JWTSecret,
	} {
		if value == "" {
			return nil, fmt.Errorf("$%v must be set", envVar)
		}
	}
	if cfg.DBName == "" {
		cfg.DBName = "signalroom"
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if origins := os.Getenv("FE_ORIGINS"); origins != "" {
		cfg.FEOrigins = strings.Split(origins, ";")
	}
	return cfg, nil
}
