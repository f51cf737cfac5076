package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"roomshare/internal/domain"
	"roomshare/internal/search"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Search(ctx context.Context, compiled search.Compiled, limit, offset int) ([]*domain.Listing, error) {
	args := m.Called(ctx, compiled, limit, offset)
	if listings, ok := args.Get(0).([]*domain.Listing); ok {
		return listings, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingRepository) Count(ctx context.Context, compiled search.Compiled) (int, error) {
	args := m.Called(ctx, compiled)
	return args.Int(0), args.Error(1)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if listing, ok := args.Get(0).(*domain.Listing); ok {
		return listing, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) SetVisibility(ctx context.Context, id uuid.UUID, public bool) error {
	args := m.Called(ctx, id, public)
	return args.Error(0)
}

func (m *MockListingRepository) SetSlug(ctx context.Context, id uuid.UUID, slug string) error {
	args := m.Called(ctx, id, slug)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockThreadRepository struct {
	mock.Mock
}

func (m *MockThreadRepository) FindOrCreate(ctx context.Context, thread *domain.Thread) (*domain.Thread, error) {
	args := m.Called(ctx, thread)
	if t, ok := args.Get(0).(*domain.Thread); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThreadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.Thread); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThreadRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Thread, error) {
	args := m.Called(ctx, userID)
	if threads, ok := args.Get(0).([]*domain.Thread); ok {
		return threads, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThreadRepository) Touch(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByThread(ctx context.Context, threadID uuid.UUID) ([]*domain.Message, error) {
	args := m.Called(ctx, threadID)
	if messages, ok := args.Get(0).([]*domain.Message); ok {
		return messages, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) LastInThread(ctx context.Context, threadID uuid.UUID) (*domain.Message, error) {
	args := m.Called(ctx, threadID)
	if message, ok := args.Get(0).(*domain.Message); ok {
		return message, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, threadID, readerID uuid.UUID) error {
	args := m.Called(ctx, threadID, readerID)
	return args.Error(0)
}

func (m *MockMessageRepository) CountSince(ctx context.Context, senderID uuid.UUID, window time.Duration) (int, error) {
	args := m.Called(ctx, senderID, window)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAuthRecord(ctx context.Context, id uuid.UUID) (*domain.AuthRecord, error) {
	args := m.Called(ctx, id)
	if record, ok := args.Get(0).(*domain.AuthRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}
