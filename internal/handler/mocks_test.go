package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xtding233/gacha-bot/internal/domain"
	"github.com/xtding233/gacha-bot/internal/profile"
	"github.com/xtding233/gacha-bot/internal/pull"
	"github.com/xtding233/gacha-bot/internal/reward"
)

type MockPullService struct{ mock.Mock }

func (m *MockPullService) Pull(ctx context.Context, userID string, count int) (*pull.Result, error) {
	args := m.Called(ctx, userID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pull.Result), args.Error(1)
}

type MockProfileService struct{ mock.Mock }

func (m *MockProfileService) Get(ctx context.Context, userID string) (profile.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *MockProfileService) History(ctx context.Context, userID string, limit int) ([]domain.PullRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRecord), args.Error(1)
}

func (m *MockProfileService) Invalidate(userID string) {
	m.Called(userID)
}

type MockRewardService struct{ mock.Mock }

func (m *MockRewardService) SignIn(ctx context.Context, userID string) (*reward.Grant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Grant), args.Error(1)
}

func (m *MockRewardService) Redeem(ctx context.Context, userID, code string) (*reward.Grant, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Grant), args.Error(1)
}
