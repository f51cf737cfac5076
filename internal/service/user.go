package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"roomshare/internal/domain"
	"roomshare/internal/repository"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type UpdateProfileInput struct {
	Email              string
	DisplayName        string
	PhotoURL           *string
	Gender             string
	Age                *int
	Occupation         *string
	EmailNotifications bool
}

type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// UpdateMe mutates the caller's own profile only.
	UpdateMe(ctx context.Context, callerID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

func NewUserService(userRepo repository.UserRepository, log logger.Logger) UserService {
	return &userService{userRepo: userRepo, log: log}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) UpdateMe(ctx context.Context, callerID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	if input.Age != nil && (*input.Age < 0 || *input.Age > 150) {
		return nil, fmt.Errorf("%w: invalid age", apperr.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, callerID)
	if errors.Is(err, apperr.ErrUserNotFound) {
		// First save creates the profile.
		user = &domain.User{ID: callerID, EmailNotifications: true}
	} else if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	user.DisplayName = input.DisplayName
	user.PhotoURL = input.PhotoURL
	user.Gender = input.Gender
	user.Age = input.Age
	user.Occupation = input.Occupation
	user.EmailNotifications = input.EmailNotifications

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
