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

type CreateGiveawayInput struct {
	Title       string
	Description string
	ImageURLs   []string
	Prefecture  string
	City        string
}

type GiveawayService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateGiveawayInput) (*domain.Giveaway, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Giveaway, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Giveaway, error)
	Close(ctx context.Context, id, callerID uuid.UUID) error
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type giveawayService struct {
	giveawayRepo repository.GiveawayRepository
	moderation   ModerationService
	log          logger.Logger
}

func NewGiveawayService(giveawayRepo repository.GiveawayRepository, moderation ModerationService, log logger.Logger) GiveawayService {
	return &giveawayService{
		giveawayRepo: giveawayRepo,
		moderation:   moderation,
		log:          log,
	}
}

func (s *giveawayService) Create(ctx context.Context, userID uuid.UUID, input CreateGiveawayInput) (*domain.Giveaway, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}

	if flagged, categories := s.moderation.Check(ctx, input.Title+"\n"+input.Description); flagged {
		s.log.Warn("Giveaway flagged by moderation", "user_id", userID, "categories", categories)
	}

	giveaway := &domain.Giveaway{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		ImageURLs:   input.ImageURLs,
		Prefecture:  input.Prefecture,
		City:        input.City,
		Status:      domain.GiveawayStatusOpen,
		CreatedAt:   time.Now(),
	}

	if err := s.giveawayRepo.Create(ctx, giveaway); err != nil {
		return nil, err
	}

	return giveaway, nil
}

func (s *giveawayService) Get(ctx context.Context, id uuid.UUID) (*domain.Giveaway, error) {
	return s.giveawayRepo.GetByID(ctx, id)
}

func (s *giveawayService) List(ctx context.Context, limit, offset int) ([]*domain.Giveaway, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.giveawayRepo.List(ctx, limit, offset)
}

func (s *giveawayService) Close(ctx context.Context, id, callerID uuid.UUID) error {
	giveaway, err := s.giveawayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if giveaway.UserID != callerID {
		return apperr.ErrForbidden
	}

	return s.giveawayRepo.SetStatus(ctx, id, domain.GiveawayStatusClosed)
}

func (s *giveawayService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	giveaway, err := s.giveawayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if giveaway.UserID != callerID {
		return apperr.ErrForbidden
	}

	return s.giveawayRepo.Delete(ctx, id)
}
