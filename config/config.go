package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Report configuration. Timezone applies to ledger timestamps without an offset
	// and to the dates users type in.
	Timezone         string
	Location         *time.Location
	MaxUploadBytes   int64
	MaxLedgerRows    int           // 0 means unlimited
	ReportSessionTTL time.Duration // how long an uploaded ledger stays available for re-filtering
	PromotionURL     string        // authoritative eligibility list

	// Messaging configuration
	NATSURL string // Optional; report events are only published when set

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

const (
	defaultMaxUploadBytes = 10 << 20
	defaultPromotionURL   = "https://start.bet.br/promotions/1976"
)

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		// .env is optional; real environment variables win
		_ = godotenv.Load()

		var err error
		instance, err = Load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Report settings with defaults
		Timezone:         "UTC",
		MaxUploadBytes:   defaultMaxUploadBytes,
		ReportSessionTTL: time.Hour,
		PromotionURL:     defaultPromotionURL,

		// Messaging
		NATSURL: os.Getenv("NATS_URL"),

		// Logging
		LogLevel: "info",

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if tz := strings.TrimSpace(os.Getenv("REPORT_TIMEZONE")); tz != "" {
		config.Timezone = tz
	}
	if size := os.Getenv("MAX_UPLOAD_BYTES"); size != "" {
		parsed, err := strconv.ParseInt(size, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q: must be a positive integer", size)
		}
		config.MaxUploadBytes = parsed
	}
	if rows := os.Getenv("MAX_LEDGER_ROWS"); rows != "" {
		parsed, err := strconv.Atoi(rows)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid MAX_LEDGER_ROWS %q: must be zero or a positive integer", rows)
		}
		config.MaxLedgerRows = parsed
	}
	if ttl := os.Getenv("REPORT_SESSION_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil || parsed < time.Minute {
			return nil, fmt.Errorf("invalid REPORT_SESSION_TTL %q: must be a duration of at least 1m", ttl)
		}
		config.ReportSessionTTL = parsed
	}
	if url := os.Getenv("PROMOTION_URL"); url != "" {
		config.PromotionURL = url
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.LogLevel = strings.ToLower(level)
	}

	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", config.Timezone, err)
	}
	config.Location = loc

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	return config, nil
}

// ValidateForBot checks the settings only the Discord bot needs
func (c *Config) ValidateForBot() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
