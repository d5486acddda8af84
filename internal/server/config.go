package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

const (
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

// Config is read from the environment (and a .env file if present).
type Config struct {
	Port     int
	LogLevel string
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}

	return cfg, nil
}
