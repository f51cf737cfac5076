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

type ThreadService interface {
	// FindOrCreate is idempotent: repeated calls with the same content,
	// seeker and host yield the same thread, even under concurrency.
	FindOrCreate(ctx context.Context, ref domain.ContentRef, seekerID, hostID uuid.UUID) (*domain.Thread, error)
	// Contact is the first-touch path: resolve the thread, then post.
	Contact(ctx context.Context, ref domain.ContentRef, seekerID, hostID uuid.UUID, body string) (*domain.Thread, *domain.Message, error)
	PostMessage(ctx context.Context, threadID, senderID uuid.UUID, body string) (*domain.Message, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ThreadView, error)
	// Messages returns the thread's messages for a participant and
	// marks the counterpart's messages as read.
	Messages(ctx context.Context, threadID, viewerID uuid.UUID) ([]*domain.Message, error)
	Unread(lastMessage *domain.Message, viewerID uuid.UUID) bool
}

type threadService struct {
	threadRepo  repository.ThreadRepository
	messageRepo repository.MessageRepository
	moderation  ModerationService
	log         logger.Logger
}

func NewThreadService(threadRepo repository.ThreadRepository, messageRepo repository.MessageRepository, moderation ModerationService, log logger.Logger) ThreadService {
	return &threadService{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		moderation:  moderation,
		log:         log,
	}
}

func (s *threadService) FindOrCreate(ctx context.Context, ref domain.ContentRef, seekerID, hostID uuid.UUID) (*domain.Thread, error) {
	if ref.Type != domain.ContentTypeListing && ref.Type != domain.ContentTypeRequest {
		return nil, fmt.Errorf("%w: unknown content type %q", apperr.ErrValidation, ref.Type)
	}
	if seekerID == hostID {
		return nil, fmt.Errorf("%w: cannot contact yourself", apperr.ErrValidation)
	}

	now := time.Now()
	thread := &domain.Thread{
		ID:             uuid.New(),
		ContentType:    ref.Type,
		ContentID:      ref.ID,
		HostID:         hostID,
		SeekerID:       seekerID,
		LastActivityAt: now,
		CreatedAt:      now,
	}

	return s.threadRepo.FindOrCreate(ctx, thread)
}

func (s *threadService) Contact(ctx context.Context, ref domain.ContentRef, seekerID, hostID uuid.UUID, body string) (*domain.Thread, *domain.Message, error) {
	thread, err := s.FindOrCreate(ctx, ref, seekerID, hostID)
	if err != nil {
		return nil, nil, err
	}

	message, err := s.PostMessage(ctx, thread.ID, seekerID, body)
	if err != nil {
		return nil, nil, err
	}

	return thread, message, nil
}

func (s *threadService) PostMessage(ctx context.Context, threadID, senderID uuid.UUID, body string) (*domain.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", apperr.ErrValidation)
	}

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.Participant(senderID) {
		return nil, apperr.ErrForbidden
	}

	if flagged, categories := s.moderation.Check(ctx, body); flagged {
		s.log.Warn("Message content flagged by moderation", "thread_id", threadID, "categories", categories)
	}

	message := &domain.Message{
		ID:        uuid.New(),
		ThreadID:  threadID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.threadRepo.Touch(ctx, threadID); err != nil {
		s.log.Warn("Failed to update thread activity", "thread_id", threadID, "error", err)
	}

	return message, nil
}

func (s *threadService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ThreadView, error) {
	threads, err := s.threadRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.ThreadView, 0, len(threads))
	for _, thread := range threads {
		last, err := s.messageRepo.LastInThread(ctx, thread.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, &domain.ThreadView{
			Thread:      thread,
			LastMessage: last,
			Unread:      s.Unread(last, userID),
		})
	}

	return views, nil
}

func (s *threadService) Messages(ctx context.Context, threadID, viewerID uuid.UUID) ([]*domain.Message, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.Participant(viewerID) {
		return nil, apperr.ErrForbidden
	}

	messages, err := s.messageRepo.ListByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkRead(ctx, threadID, viewerID); err != nil {
		s.log.Warn("Failed to mark thread read", "thread_id", threadID, "error", err)
	}

	return messages, nil
}

// Unread reports whether the thread should be badged for the viewer: the
// latest message came from the other participant and is still unread.
// A thread whose last message the viewer sent is never unread.
func (s *threadService) Unread(lastMessage *domain.Message, viewerID uuid.UUID) bool {
	return lastMessage != nil && lastMessage.SenderID != viewerID && lastMessage.ReadAt == nil
}
