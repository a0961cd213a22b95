package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Economy configuration
	StartingBalance   int64
	DailyRewardCoins  int64
	DailyRewardXP     int64
	WeeklyRewardCoins int64
	WeeklyRewardXP    int64

	// Blackjack configuration
	BlackjackStake   int64         // Base stake settled per round; doubled on Double
	BlackjackTimeout time.Duration // Idle timeout before a table is closed

	// Environment
	Environment string // "development" or "production"
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

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Economy defaults
		StartingBalance:   0,
		DailyRewardCoins:  1000,
		DailyRewardXP:     10,
		WeeklyRewardCoins: 50000,
		WeeklyRewardXP:    50,

		// Blackjack defaults
		BlackjackStake:   10,
		BlackjackTimeout: 90 * time.Second,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsedBalance, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsedBalance
		}
	}
	if stake := os.Getenv("BLACKJACK_STAKE"); stake != "" {
		if parsedStake, err := strconv.ParseInt(stake, 10, 64); err == nil && parsedStake > 0 {
			config.BlackjackStake = parsedStake
		}
	}
	if timeout := os.Getenv("BLACKJACK_TIMEOUT_SECONDS"); timeout != "" {
		if parsedTimeout, err := strconv.Atoi(timeout); err == nil && parsedTimeout > 0 {
			config.BlackjackTimeout = time.Duration(parsedTimeout) * time.Second
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
