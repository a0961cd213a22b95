package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUserNotFound is returned when a ledger operation targets an
	// unknown user and the caller asked for the record itself
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidMetric is returned for a leaderboard request with an
	// unrecognized sort key, before any storage is touched
	ErrInvalidMetric = errors.New("invalid leaderboard metric")
)

// CooldownError is returned when a reward is claimed before its cooldown
// has elapsed
type CooldownError struct {
	Reward    RewardKind
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s reward on cooldown for another %s", e.Reward, e.Remaining)
}
