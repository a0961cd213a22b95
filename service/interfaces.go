package service

import (
	"context"

	"cantina/models"
)

// UserRepository defines the interface for user ledger data access
type UserRepository interface {
	// GetByDiscordID retrieves a user by their Discord ID; (nil, nil) when absent
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)

	// Create creates a new user record; idempotent for an existing ID
	Create(ctx context.Context, discordID int64, initialBalance int64) (*models.User, error)

	// AdjustBalance applies a signed delta atomically; silent no-op when absent
	AdjustBalance(ctx context.Context, discordID int64, delta int64) error

	// SetBalance sets the balance to an absolute value; silent no-op when absent
	SetBalance(ctx context.Context, discordID int64, balance int64) error

	// AddExperience grants experience and raises the level if warranted,
	// atomically; returns the updated record, or nil when absent
	AddExperience(ctx context.Context, discordID int64, delta int64) (*models.User, error)

	// TopByBalance returns a page ordered by balance descending, ties by
	// ascending discord ID
	TopByBalance(ctx context.Context, limit, offset int) ([]*models.User, error)

	// TopByExperience returns a page ordered by experience descending,
	// ties by ascending discord ID
	TopByExperience(ctx context.Context, limit, offset int) ([]*models.User, error)

	// RankByBalance returns the 1-based balance rank, 0 when absent
	RankByBalance(ctx context.Context, discordID int64) (int, error)

	// RankByExperience returns the 1-based experience rank, 0 when absent
	RankByExperience(ctx context.Context, discordID int64) (int, error)
}

// UserService defines the interface for economy ledger operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or lazily creates one
	GetOrCreateUser(ctx context.Context, discordID int64) (*models.User, error)

	// GetUser retrieves an existing user; ErrUserNotFound when absent
	GetUser(ctx context.Context, discordID int64) (*models.User, error)

	// AdjustBalance applies a signed delta to the user's balance
	AdjustBalance(ctx context.Context, discordID int64, delta int64) error

	// SetBalance sets the user's balance to an absolute value
	SetBalance(ctx context.Context, discordID int64, balance int64) error

	// AddExperience grants experience, raising the level if warranted
	AddExperience(ctx context.Context, discordID int64, delta int64) (*models.User, error)

	// Leaderboard returns a page of users ordered by the given metric;
	// ErrInvalidMetric for an unrecognized metric
	Leaderboard(ctx context.Context, metric models.LeaderboardMetric, limit, offset int) ([]*models.User, error)

	// Rank returns the user's 1-based rank for the given metric, 0 when
	// the user is unknown
	Rank(ctx context.Context, discordID int64, metric models.LeaderboardMetric) (int, error)
}

// RewardService defines the interface for cooldown-gated reward claims
type RewardService interface {
	// Claim grants the reward if its cooldown has elapsed and returns the
	// updated user and the granted reward; a *CooldownError when claimed
	// too soon
	Claim(ctx context.Context, discordID int64, kind RewardKind) (*models.User, Reward, error)
}
