package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roomshare/internal/domain"
	"roomshare/internal/repository"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type CreateRequestInput struct {
	Title       string
	Body        string
	Prefecture  string
	City        string
	BudgetYen   *int
	MoveInMonth *string
}

type RequestService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateRequestInput) (*domain.RoomRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.RoomRequest, error)
	List(ctx context.Context, limit, offset int) ([]*domain.RoomRequest, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type requestService struct {
	requestRepo repository.RequestRepository
	moderation  ModerationService
	log         logger.Logger
}

func NewRequestService(requestRepo repository.RequestRepository, moderation ModerationService, log logger.Logger) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		moderation:  moderation,
		log:         log,
	}
}

func (s *requestService) Create(ctx context.Context, userID uuid.UUID, input CreateRequestInput) (*domain.RoomRequest, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if input.BudgetYen != nil && *input.BudgetYen < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", apperr.ErrValidation)
	}

	if flagged, categories := s.moderation.Check(ctx, input.Title+"\n"+input.Body); flagged {
		s.log.Warn("Room request flagged by moderation", "user_id", userID, "categories", categories)
	}

	request := &domain.RoomRequest{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Body:        input.Body,
		Prefecture:  input.Prefecture,
		City:        input.City,
		BudgetYen:   input.BudgetYen,
		MoveInMonth: input.MoveInMonth,
		CreatedAt:   time.Now(),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *requestService) Get(ctx context.Context, id uuid.UUID) (*domain.RoomRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *requestService) List(ctx context.Context, limit, offset int) ([]*domain.RoomRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.requestRepo.List(ctx, limit, offset)
}

func (s *requestService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.UserID != callerID {
		return apperr.ErrForbidden
	}

	return s.requestRepo.Delete(ctx, id)
}
