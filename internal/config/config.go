package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Server configures the scriptd HTTP backend.
type Server struct {
	Port     string
	DBPath   string
	APIKey   string
	LogLevel string
}

// Adapter configures the script-mcp tool-call adapter.
type Adapter struct {
	APIBaseURL string
	APIKey     string
	LogLevel   string
}

// LoadServer reads backend configuration from the environment, loading a
// .env file first when one exists.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	cfg := &Server{
		Port:     getEnv("PORT", "3000"),
		DBPath:   getEnv("SCRIPT_DB_PATH", "./data/scripts.db"),
		APIKey:   os.Getenv("SCRIPT_API_KEY"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Server) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("SCRIPT_DB_PATH is required")
	}
	return nil
}

// LoadAdapter reads adapter configuration from the environment, loading a
// .env file first when one exists.
func LoadAdapter() (*Adapter, error) {
	_ = godotenv.Load()

	cfg := &Adapter{
		APIBaseURL: getEnv("SCRIPT_API_URL", "http://localhost:3000"),
		APIKey:     os.Getenv("SCRIPT_API_KEY"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Adapter) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("SCRIPT_API_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
