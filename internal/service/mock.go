package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"roomshare/internal/domain"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if session, ok := args.Get(0).(*domain.Session); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) Check(ctx context.Context, text string) (bool, []string) {
	args := m.Called(ctx, text)
	if categories, ok := args.Get(1).([]string); ok {
		return args.Bool(0), categories
	}
	return args.Bool(0), nil
}
