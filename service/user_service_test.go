package service

import (
	"context"
	"errors"
	"testing"

	"cantina/events"
	"cantina/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetOrCreateUser_Existing(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, events.NewBus(), 0)

	existing := &models.User{DiscordID: 123456, Balance: 500, Level: 1}
	mockRepo.On("GetByDiscordID", ctx, int64(123456)).Return(existing, nil)

	user, err := svc.GetOrCreateUser(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, existing, user)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestUserService_GetOrCreateUser_CreatesLazily(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, events.NewBus(), 0)

	created := &models.User{DiscordID: 123456, Balance: 0, Experience: 0, Level: 1}
	mockRepo.On("GetByDiscordID", ctx, int64(123456)).Return(nil, nil)
	mockRepo.On("Create", ctx, int64(123456), int64(0)).Return(created, nil)

	user, err := svc.GetOrCreateUser(ctx, 123456)

	require.NoError(t, err)
	assert.Equal(t, created, user)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, events.NewBus(), 0)

	mockRepo.On("GetByDiscordID", ctx, int64(999)).Return(nil, nil)

	_, err := svc.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_AdjustBalance_EmitsEvent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	bus := events.NewBus()
	svc := NewUserService(mockRepo, bus, 0)

	received := make(chan events.BalanceChangeEvent, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			received <- e
		}
	})

	mockRepo.On("AdjustBalance", ctx, int64(123456), int64(-10)).Return(nil)

	err := svc.AdjustBalance(ctx, 123456, -10)
	require.NoError(t, err)

	e := <-received
	assert.Equal(t, int64(123456), e.DiscordID)
	assert.Equal(t, int64(-10), e.ChangeAmount)
	mockRepo.AssertExpectations(t)
}

func TestUserService_AdjustBalance_PropagatesStorageError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, events.NewBus(), 0)

	storageErr := errors.New("connection refused")
	mockRepo.On("AdjustBalance", ctx, int64(123456), int64(10)).Return(storageErr)

	err := svc.AdjustBalance(ctx, 123456, 10)
	assert.ErrorIs(t, err, storageErr)
}

func TestUserService_AddExperience_AnnouncesLevelUp(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	bus := events.NewBus()
	svc := NewUserService(mockRepo, bus, 0)

	levelUps := make(chan events.LevelUpEvent, 1)
	bus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.LevelUpEvent); ok {
			levelUps <- e
		}
	})

	before := &models.User{DiscordID: 123456, Experience: 0, Level: 1}
	after := &models.User{DiscordID: 123456, Experience: 250, Level: 2}
	mockRepo.On("GetByDiscordID", ctx, int64(123456)).Return(before, nil)
	mockRepo.On("AddExperience", ctx, int64(123456), int64(250)).Return(after, nil)

	user, err := svc.AddExperience(ctx, 123456, 250)
	require.NoError(t, err)
	assert.Equal(t, 2, user.Level)

	e := <-levelUps
	assert.Equal(t, 1, e.OldLevel)
	assert.Equal(t, 2, e.NewLevel)
	mockRepo.AssertExpectations(t)
}

func TestUserService_AddExperience_NoEventWithoutLevelUp(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	bus := events.NewBus()
	svc := NewUserService(mockRepo, bus, 0)

	levelUps := make(chan events.LevelUpEvent, 1)
	bus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.LevelUpEvent); ok {
			levelUps <- e
		}
	})

	before := &models.User{DiscordID: 123456, Experience: 250, Level: 2}
	after := &models.User{DiscordID: 123456, Experience: 260, Level: 2}
	mockRepo.On("GetByDiscordID", ctx, int64(123456)).Return(before, nil)
	mockRepo.On("AddExperience", ctx, int64(123456), int64(10)).Return(after, nil)

	user, err := svc.AddExperience(ctx, 123456, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, user.Level)
	assert.Empty(t, levelUps)
}

func TestUserService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("balance metric", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo, events.NewBus(), 0)

		page := []*models.User{{DiscordID: 1, Balance: 100}, {DiscordID: 2, Balance: 100}}
		mockRepo.On("TopByBalance", ctx, 2, 0).Return(page, nil)

		users, err := svc.Leaderboard(ctx, models.MetricBalance, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, page, users)
	})

	t.Run("experience metric", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo, events.NewBus(), 0)

		page := []*models.User{{DiscordID: 3, Experience: 900}}
		mockRepo.On("TopByExperience", ctx, 10, 5).Return(page, nil)

		users, err := svc.Leaderboard(ctx, models.MetricExperience, 10, 5)
		require.NoError(t, err)
		assert.Equal(t, page, users)
	})

	t.Run("unknown metric rejected before storage", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo, events.NewBus(), 0)

		_, err := svc.Leaderboard(ctx, "karma", 10, 0)
		assert.ErrorIs(t, err, ErrInvalidMetric)
		mockRepo.AssertNotCalled(t, "TopByBalance")
		mockRepo.AssertNotCalled(t, "TopByExperience")
	})
}

func TestUserService_Rank(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo, events.NewBus(), 0)

	mockRepo.On("RankByBalance", ctx, int64(123456)).Return(3, nil)
	mockRepo.On("RankByExperience", ctx, int64(123456)).Return(7, nil)

	rank, err := svc.Rank(ctx, 123456, models.MetricBalance)
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	rank, err = svc.Rank(ctx, 123456, models.MetricExperience)
	require.NoError(t, err)
	assert.Equal(t, 7, rank)

	_, err = svc.Rank(ctx, 123456, "karma")
	assert.ErrorIs(t, err, ErrInvalidMetric)
}
