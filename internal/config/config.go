// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	TelegramToken string
	SolKeypair    string
	EVMPrivateKey string
	TemplatesPath string
	ProjectRoot   string
	OpsPort       string // empty disables the ops HTTP server

	// AllowedUsers is the access allow-list; nil means open access.
	AllowedUsers []int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		SolKeypair:    getEnv("SOL_KEYPAIR", ""),
		EVMPrivateKey: getEnv("EVM_PRIVATE_KEY", ""),
		TemplatesPath: getEnv("TEMPLATES_PATH", "./templates.json"),
		ProjectRoot:   getEnv("PROJECT_ROOT", ".."),
		OpsPort:       getEnv("OPS_PORT", "8080"),
		AllowedUsers:  parseAllowedUsers(os.Getenv("ALLOWED_USERS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN cannot be empty")
	}
	if c.TemplatesPath == "" {
		return fmt.Errorf("TEMPLATES_PATH cannot be empty")
	}
	if c.ProjectRoot == "" {
		return fmt.Errorf("PROJECT_ROOT cannot be empty")
	}
	return nil
}

// Allowed reports whether a user may interact with the bot. An absent
// allow-list means open access; a present one is an exact-match check.
func (c *Config) Allowed(userID int64) bool {
	if c.AllowedUsers == nil {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

func parseAllowedUsers(value string) []int64 {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
