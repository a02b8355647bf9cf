package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Ledger backends selectable via LEDGER_BACKEND
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Ledger backend configuration
	LedgerBackend string
	DatabaseURL   string
	RedisURL      string

	// IDs of users allowed to mint tokens
	AdminUserIDs []int64

	// Environment: "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// IsAdmin reports whether the given user may invoke privileged commands
func (c *Config) IsAdmin(discordID int64) bool {
	for _, id := range c.AdminUserIDs {
		if id == discordID {
			return true
		}
	}
	return false
}

// load loads configuration from the environment, with a .env file as a
// fallback for local development
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		LedgerBackend: os.Getenv("LEDGER_BACKEND"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.LedgerBackend == "" {
		config.LedgerBackend = BackendPostgres
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	// Parse admin user IDs
	if adminIDs := os.Getenv("ADMIN_USER_IDS"); adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid admin user ID %q", idStr)
			}
			config.AdminUserIDs = append(config.AdminUserIDs, id)
		}
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		switch config.LedgerBackend {
		case BackendPostgres:
			if config.DatabaseURL == "" {
				return nil, fmt.Errorf("DATABASE_URL is required for the postgres ledger backend")
			}
		case BackendRedis:
			if config.RedisURL == "" {
				return nil, fmt.Errorf("REDIS_URL is required for the redis ledger backend")
			}
		case BackendMemory:
		default:
			return nil, fmt.Errorf("unknown LEDGER_BACKEND %q", config.LedgerBackend)
		}
	}

	return config, nil
}
