package service

import (
	"context"
	"fmt"

	"cantina/events"
	"cantina/models"
)

// userService implements the UserService interface
type userService struct {
	userRepo        UserRepository
	eventBus        *events.Bus
	startingBalance int64
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, eventBus *events.Bus, startingBalance int64) UserService {
	return &userService{
		userRepo:        userRepo,
		eventBus:        eventBus,
		startingBalance: startingBalance,
	}
}

// GetOrCreateUser retrieves an existing user or lazily creates one. User
// records are created on first interaction and never deleted.
func (s *userService) GetOrCreateUser(ctx context.Context, discordID int64) (*models.User, error) {
	user, err := s.userRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user != nil {
		return user, nil
	}

	user, err = s.userRepo.Create(ctx, discordID, s.startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves an existing user
func (s *userService) GetUser(ctx context.Context, discordID int64) (*models.User, error) {
	user, err := s.userRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// AdjustBalance applies a signed delta to the user's balance. There is no
// floor: loss payouts may overdraw the balance. An unknown user is a
// silent no-op, matching the repository contract.
func (s *userService) AdjustBalance(ctx context.Context, discordID int64, delta int64) error {
	if err := s.userRepo.AdjustBalance(ctx, discordID, delta); err != nil {
		return err
	}

	s.eventBus.Emit(ctx, events.BalanceChangeEvent{
		DiscordID:    discordID,
		ChangeAmount: delta,
	})

	return nil
}

// SetBalance sets the user's balance to an absolute value
func (s *userService) SetBalance(ctx context.Context, discordID int64, balance int64) error {
	return s.userRepo.SetBalance(ctx, discordID, balance)
}

// AddExperience grants experience and announces level-ups on the event bus
func (s *userService) AddExperience(ctx context.Context, discordID int64, delta int64) (*models.User, error) {
	before, err := s.userRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if before == nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.AddExperience(ctx, discordID, delta)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Level > before.Level {
		s.eventBus.Emit(ctx, events.LevelUpEvent{
			DiscordID: discordID,
			OldLevel:  before.Level,
			NewLevel:  user.Level,
		})
	}

	return user, nil
}

// Leaderboard returns a page of users ordered by the given metric. The
// metric is validated before storage is queried.
func (s *userService) Leaderboard(ctx context.Context, metric models.LeaderboardMetric, limit, offset int) ([]*models.User, error) {
	switch metric {
	case models.MetricBalance:
		return s.userRepo.TopByBalance(ctx, limit, offset)
	case models.MetricExperience:
		return s.userRepo.TopByExperience(ctx, limit, offset)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMetric, metric)
	}
}

// Rank returns the user's 1-based rank for the given metric
func (s *userService) Rank(ctx context.Context, discordID int64, metric models.LeaderboardMetric) (int, error) {
	switch metric {
	case models.MetricBalance:
		return s.userRepo.RankByBalance(ctx, discordID)
	case models.MetricExperience:
		return s.userRepo.RankByExperience(ctx, discordID)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMetric, metric)
	}
}
