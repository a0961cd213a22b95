package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cantina/events"
	"cantina/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRewardConfig() RewardConfig {
	return RewardConfig{
		DailyCoins:  1000,
		DailyXP:     10,
		WeeklyCoins: 50000,
		WeeklyXP:    50,
	}
}

// newTestRewardService wires a reward service to a mock ledger and a
// manually advanced clock
func newTestRewardService(users UserService) (*rewardService, *time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewRewardService(users, events.NewBus(), testRewardConfig()).(*rewardService)
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestCooldownRemaining(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name     string
		last     time.Time
		expected time.Duration
	}{
		{name: "never claimed", last: time.Time{}, expected: 0},
		{name: "claimed just now", last: now, expected: day},
		{name: "claimed an hour ago", last: now.Add(-time.Hour), expected: 23 * time.Hour},
		{name: "claimed exactly a day ago", last: now.Add(-day), expected: 0},
		{name: "claimed long ago", last: now.Add(-48 * time.Hour), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cooldownRemaining(now, tt.last, day))
		})
	}
}

func TestRewardService_ClaimDaily(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserService)
	svc, _ := newTestRewardService(mockUsers)

	updated := &models.User{DiscordID: 123456, Balance: 1000, Experience: 10, Level: 1}
	mockUsers.On("AdjustBalance", ctx, int64(123456), int64(1000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(123456), int64(10)).Return(updated, nil)

	user, reward, err := svc.Claim(ctx, 123456, RewardDaily)

	require.NoError(t, err)
	assert.Equal(t, updated, user)
	assert.Equal(t, int64(1000), reward.Coins)
	assert.Equal(t, int64(10), reward.Experience)
	mockUsers.AssertExpectations(t)
}

func TestRewardService_ClaimDaily_Cooldown(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserService)
	svc, now := newTestRewardService(mockUsers)

	updated := &models.User{DiscordID: 123456, Balance: 1000, Experience: 10, Level: 1}
	mockUsers.On("AdjustBalance", ctx, int64(123456), int64(1000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(123456), int64(10)).Return(updated, nil)

	_, _, err := svc.Claim(ctx, 123456, RewardDaily)
	require.NoError(t, err)

	// Six hours later the claim is rejected with the remaining cooldown
	*now = now.Add(6 * time.Hour)
	_, _, err = svc.Claim(ctx, 123456, RewardDaily)

	var cooldownErr *CooldownError
	require.True(t, errors.As(err, &cooldownErr))
	assert.Equal(t, RewardDaily, cooldownErr.Reward)
	assert.Equal(t, 18*time.Hour, cooldownErr.Remaining)

	// Ledger must not have been touched a second time
	mockUsers.AssertNumberOfCalls(t, "AdjustBalance", 1)
	mockUsers.AssertNumberOfCalls(t, "AddExperience", 1)
}

func TestRewardService_ClaimDaily_EligibleAgainAfterPeriod(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserService)
	svc, now := newTestRewardService(mockUsers)

	updated := &models.User{DiscordID: 123456, Balance: 2000, Experience: 20, Level: 1}
	mockUsers.On("AdjustBalance", ctx, int64(123456), int64(1000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(123456), int64(10)).Return(updated, nil)

	_, _, err := svc.Claim(ctx, 123456, RewardDaily)
	require.NoError(t, err)

	*now = now.Add(24 * time.Hour)
	_, _, err = svc.Claim(ctx, 123456, RewardDaily)
	require.NoError(t, err)

	mockUsers.AssertNumberOfCalls(t, "AdjustBalance", 2)
}

func TestRewardService_DailyAndWeeklyCooldownsAreIndependent(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserService)
	svc, _ := newTestRewardService(mockUsers)

	updated := &models.User{DiscordID: 123456}
	mockUsers.On("AdjustBalance", ctx, int64(123456), int64(1000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(123456), int64(10)).Return(updated, nil)
	mockUsers.On("AdjustBalance", ctx, int64(123456), int64(50000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(123456), int64(50)).Return(updated, nil)

	_, _, err := svc.Claim(ctx, 123456, RewardDaily)
	require.NoError(t, err)

	// The daily claim must not start the weekly cooldown
	_, _, err = svc.Claim(ctx, 123456, RewardWeekly)
	require.NoError(t, err)

	mockUsers.AssertExpectations(t)
}

func TestRewardService_WeeklyCooldownIsSevenDays(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserService)
	svc, now := newTestRewardService(mockUsers)

	updated := &models.User{DiscordID: 123456}
	mockUsers.On("AdjustBalance", ctx, int64(123456), int64(50000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(123456), int64(50)).Return(updated, nil)

	_, _, err := svc.Claim(ctx, 123456, RewardWeekly)
	require.NoError(t, err)

	*now = now.Add(6 * 24 * time.Hour)
	_, _, err = svc.Claim(ctx, 123456, RewardWeekly)

	var cooldownErr *CooldownError
	require.True(t, errors.As(err, &cooldownErr))
	assert.Equal(t, 24*time.Hour, cooldownErr.Remaining)
}

func TestRewardService_UnknownKindRejected(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserService)
	svc, _ := newTestRewardService(mockUsers)

	_, _, err := svc.Claim(ctx, 123456, "monthly")
	assert.Error(t, err)
	mockUsers.AssertNotCalled(t, "AdjustBalance")
}

func TestRewardService_CooldownsPerUser(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(MockUserService)
	svc, _ := newTestRewardService(mockUsers)

	updated := &models.User{}
	mockUsers.On("AdjustBalance", ctx, int64(1), int64(1000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(1), int64(10)).Return(updated, nil)
	mockUsers.On("AdjustBalance", ctx, int64(2), int64(1000)).Return(nil)
	mockUsers.On("AddExperience", ctx, int64(2), int64(10)).Return(updated, nil)

	_, _, err := svc.Claim(ctx, 1, RewardDaily)
	require.NoError(t, err)

	// Another user's claim is unaffected by the first user's cooldown
	_, _, err = svc.Claim(ctx, 2, RewardDaily)
	require.NoError(t, err)

	mockUsers.AssertExpectations(t)
}
