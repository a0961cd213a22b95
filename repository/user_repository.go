package repository

import (
	"context"
	"fmt"

	"cantina/database"
	"cantina/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository provides pgx-backed access to the users ledger. Every
// mutating method is a single atomic statement or transaction, so
// concurrent callers on the same user never lose updates.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByDiscordID retrieves a user by their Discord ID. Returns (nil, nil)
// when the user does not exist.
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	query := `
		SELECT discord_id, balance, experience, level, created_at, updated_at
		FROM users
		WHERE discord_id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, discordID).Scan(
		&user.DiscordID,
		&user.Balance,
		&user.Experience,
		&user.Level,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by discord ID %d: %w", discordID, err)
	}

	return &user, nil
}

// Create creates a new user record. A concurrent create for the same ID
// is absorbed by the conflict clause, so creation is idempotent.
func (r *UserRepository) Create(ctx context.Context, discordID int64, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO UPDATE SET updated_at = users.updated_at
		RETURNING discord_id, balance, experience, level, created_at, updated_at
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, discordID, initialBalance).Scan(
		&user.DiscordID,
		&user.Balance,
		&user.Experience,
		&user.Level,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user with discord ID %d: %w", discordID, err)
	}

	return &user, nil
}

// AdjustBalance applies a signed delta to a user's balance atomically.
// The delta may drive the balance negative; no floor is enforced. An
// unknown user is a silent no-op.
func (r *UserRepository) AdjustBalance(ctx context.Context, discordID int64, delta int64) error {
	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	if _, err := r.db.Exec(ctx, query, delta, discordID); err != nil {
		return fmt.Errorf("failed to adjust balance for user %d: %w", discordID, err)
	}

	return nil
}

// SetBalance sets a user's balance to an absolute value. An unknown user
// is a silent no-op.
func (r *UserRepository) SetBalance(ctx context.Context, discordID int64, balance int64) error {
	query := `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	if _, err := r.db.Exec(ctx, query, balance, discordID); err != nil {
		return fmt.Errorf("failed to set balance for user %d: %w", discordID, err)
	}

	return nil
}

// AddExperience grants experience and recomputes the level inside one
// transaction. The level is only ever raised, never lowered. An unknown
// user is a silent no-op. Returns the updated user, or nil when absent.
func (r *UserRepository) AddExperience(ctx context.Context, discordID int64, delta int64) (*models.User, error) {
	var updated *models.User

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		var user models.User
		err := tx.QueryRow(ctx, `
			SELECT discord_id, balance, experience, level, created_at, updated_at
			FROM users
			WHERE discord_id = $1
			FOR UPDATE
		`, discordID).Scan(
			&user.DiscordID,
			&user.Balance,
			&user.Experience,
			&user.Level,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get user %d for experience grant: %w", discordID, err)
		}

		user.Experience += delta
		if newLevel := models.LevelForExperience(user.Experience); newLevel > user.Level {
			user.Level = newLevel
		}

		_, err = tx.Exec(ctx, `
			UPDATE users
			SET experience = $1, level = $2, updated_at = NOW()
			WHERE discord_id = $3
		`, user.Experience, user.Level, discordID)
		if err != nil {
			return fmt.Errorf("failed to update experience for user %d: %w", discordID, err)
		}

		updated = &user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// TopByBalance returns a leaderboard page ordered by balance descending,
// ties broken by ascending discord ID for stable pagination.
func (r *UserRepository) TopByBalance(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT discord_id, balance, experience, level, created_at, updated_at
		FROM users
		ORDER BY balance DESC, discord_id ASC
		LIMIT $1 OFFSET $2
	`
	return r.queryUsers(ctx, query, limit, offset)
}

// TopByExperience returns a leaderboard page ordered by experience
// descending, ties broken by ascending discord ID.
func (r *UserRepository) TopByExperience(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT discord_id, balance, experience, level, created_at, updated_at
		FROM users
		ORDER BY experience DESC, discord_id ASC
		LIMIT $1 OFFSET $2
	`
	return r.queryUsers(ctx, query, limit, offset)
}

// RankByBalance returns the user's 1-based balance rank: the number of
// users with a strictly greater balance, plus one. Returns 0 when the
// user does not exist.
func (r *UserRepository) RankByBalance(ctx context.Context, discordID int64) (int, error) {
	query := `
		SELECT COUNT(*) + 1
		FROM users
		WHERE balance > (SELECT balance FROM users WHERE discord_id = $1)
	`
	return r.queryRank(ctx, query, discordID)
}

// RankByExperience returns the user's 1-based experience rank, or 0 when
// the user does not exist.
func (r *UserRepository) RankByExperience(ctx context.Context, discordID int64) (int, error) {
	query := `
		SELECT COUNT(*) + 1
		FROM users
		WHERE experience > (SELECT experience FROM users WHERE discord_id = $1)
	`
	return r.queryRank(ctx, query, discordID)
}

func (r *UserRepository) queryRank(ctx context.Context, query string, discordID int64) (int, error) {
	// An absent user makes the subquery NULL and the count query would
	// report rank 1, so check existence first.
	user, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, nil
	}

	var rank int
	if err := r.db.QueryRow(ctx, query, discordID).Scan(&rank); err != nil {
		return 0, fmt.Errorf("failed to get rank for user %d: %w", discordID, err)
	}
	return rank, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.DiscordID,
			&user.Balance,
			&user.Experience,
			&user.Level,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
