package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cantina/events"
	"cantina/models"
)

// RewardKind identifies a periodic reward
type RewardKind string

const (
	RewardDaily  RewardKind = "daily"
	RewardWeekly RewardKind = "weekly"
)

// Reward describes a claimable periodic reward
type Reward struct {
	Kind       RewardKind
	Period     time.Duration
	Coins      int64
	Experience int64
}

// RewardConfig holds the grant amounts for the periodic rewards
type RewardConfig struct {
	DailyCoins  int64
	DailyXP     int64
	WeeklyCoins int64
	WeeklyXP    int64
}

type claimKey struct {
	discordID int64
	kind      RewardKind
}

// rewardService implements the RewardService interface. Cooldown state is
// held in memory only: a process restart resets every cooldown to
// eligible. That asymmetry with the durable balance/experience ledger is
// deliberate.
type rewardService struct {
	users    UserService
	eventBus *events.Bus
	rewards  map[RewardKind]Reward

	mu        sync.Mutex
	lastClaim map[claimKey]time.Time

	now func() time.Time
}

// NewRewardService creates a new reward service
func NewRewardService(users UserService, eventBus *events.Bus, cfg RewardConfig) RewardService {
	return &rewardService{
		users:    users,
		eventBus: eventBus,
		rewards: map[RewardKind]Reward{
			RewardDaily: {
				Kind:       RewardDaily,
				Period:     24 * time.Hour,
				Coins:      cfg.DailyCoins,
				Experience: cfg.DailyXP,
			},
			RewardWeekly: {
				Kind:       RewardWeekly,
				Period:     7 * 24 * time.Hour,
				Coins:      cfg.WeeklyCoins,
				Experience: cfg.WeeklyXP,
			},
		},
		lastClaim: make(map[claimKey]time.Time),
		now:       time.Now,
	}
}

// cooldownRemaining reports how long until a reward claimed at last is
// claimable again; zero means eligible now. A zero last means never
// claimed.
func cooldownRemaining(now, last time.Time, period time.Duration) time.Duration {
	if last.IsZero() {
		return 0
	}
	remaining := period - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Claim grants the reward if its cooldown has elapsed. The claim time is
// recorded before the ledger is touched, then coins and experience are
// applied and the updated user returned along with the granted reward.
func (s *rewardService) Claim(ctx context.Context, discordID int64, kind RewardKind) (*models.User, Reward, error) {
	reward, ok := s.rewards[kind]
	if !ok {
		return nil, Reward{}, fmt.Errorf("unknown reward kind %q", kind)
	}

	key := claimKey{discordID: discordID, kind: kind}

	s.mu.Lock()
	now := s.now()
	if remaining := cooldownRemaining(now, s.lastClaim[key], reward.Period); remaining > 0 {
		s.mu.Unlock()
		return nil, Reward{}, &CooldownError{Reward: kind, Remaining: remaining}
	}
	s.lastClaim[key] = now
	s.mu.Unlock()

	if err := s.users.AdjustBalance(ctx, discordID, reward.Coins); err != nil {
		return nil, Reward{}, fmt.Errorf("failed to grant %s coins: %w", kind, err)
	}

	user, err := s.users.AddExperience(ctx, discordID, reward.Experience)
	if err != nil {
		return nil, Reward{}, fmt.Errorf("failed to grant %s experience: %w", kind, err)
	}

	s.eventBus.Emit(ctx, events.RewardClaimedEvent{
		DiscordID:  discordID,
		Reward:     string(kind),
		Coins:      reward.Coins,
		Experience: reward.Experience,
	})

	return user, reward, nil
}
