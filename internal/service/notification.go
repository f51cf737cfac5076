package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"

	"roomshare/internal/config"
	"roomshare/internal/domain"
	"roomshare/internal/repository"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
	"roomshare/pkg/mailer"
)

const (
	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"

	fallbackSenderName = "ルームシェア利用者"
)

type DispatchResult struct {
	Outcome string `json:"outcome"`
}

// NotificationService emails the other participant of a thread when a
// message is sent. Every gate is checked in order and is a hard stop;
// a failure here never undoes the already-persisted message.
type NotificationService interface {
	Dispatch(ctx context.Context, bearerToken string, threadID uuid.UUID, body, senderName string) (*DispatchResult, error)
}

type notificationService struct {
	sessions    SessionService
	threadRepo  repository.ThreadRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	mail        mailer.Mailer
	rateLimit   config.RateLimitConfig
	appBaseURL  string
	log         logger.Logger
}

func NewNotificationService(
	sessions SessionService,
	threadRepo repository.ThreadRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	mail mailer.Mailer,
	rateLimit config.RateLimitConfig,
	appBaseURL string,
	log logger.Logger,
) NotificationService {
	return &notificationService{
		sessions:    sessions,
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		mail:        mail,
		rateLimit:   rateLimit,
		appBaseURL:  appBaseURL,
		log:         log,
	}
}

func (s *notificationService) Dispatch(ctx context.Context, bearerToken string, threadID uuid.UUID, body, senderName string) (*DispatchResult, error) {
	session, err := s.sessions.Validate(ctx, bearerToken)
	if err != nil {
		return nil, err
	}

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	caller := session.UserID
	if !thread.Participant(caller) {
		return nil, apperr.ErrForbidden
	}

	// The recipient is always derived from the thread, never taken from
	// the request.
	recipientID := thread.Other(caller)

	count, err := s.messageRepo.CountSince(ctx, caller, s.rateLimit.MessageWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: rate limit check: %v", apperr.ErrExternalService, err)
	}
	// The count includes the message just persisted, so strictly-greater
	// lets exactly MessageLimit sends through per window.
	if count > s.rateLimit.MessageLimit {
		s.log.Warn("Message rate limit exceeded", "user_id", caller, "count", count)
		return nil, apperr.ErrRateLimited
	}

	name := s.resolveSenderName(ctx, senderName, caller, session.Email)

	recipient, email, err := s.resolveRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	if recipient != nil && !recipient.EmailNotifications {
		s.log.Info("Recipient has notifications disabled, skipping", "recipient_id", recipientID)
		return &DispatchResult{Outcome: OutcomeSkipped}, nil
	}

	subject, htmlBody, textBody := s.compose(ctx, thread, name, body)

	if err := s.mail.Send(ctx, mailer.Email{
		To:      email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}); err != nil {
		return nil, err
	}

	return &DispatchResult{Outcome: OutcomeSent}, nil
}

// resolveSenderName prefers the supplied name, then the caller's profile
// display name, then the local part of their email, then a generic label.
func (s *notificationService) resolveSenderName(ctx context.Context, supplied string, callerID uuid.UUID, callerEmail string) string {
	if supplied != "" {
		return supplied
	}

	if profile, err := s.userRepo.GetByID(ctx, callerID); err == nil && profile.DisplayName != "" {
		return profile.DisplayName
	}

	if at := strings.Index(callerEmail, "@"); at > 0 {
		return callerEmail[:at]
	}

	return fallbackSenderName
}

// resolveRecipient looks the recipient up in the profile store and falls
// back to the authentication record before giving up. The profile may be
// nil on the fallback path; callers treat that as notifications enabled.
func (s *notificationService) resolveRecipient(ctx context.Context, recipientID uuid.UUID) (*domain.User, string, error) {
	profile, err := s.userRepo.GetByID(ctx, recipientID)
	if err == nil && profile.Email != "" {
		return profile, profile.Email, nil
	}

	record, recErr := s.userRepo.GetAuthRecord(ctx, recipientID)
	if recErr == nil && record.Email != "" {
		return profile, record.Email, nil
	}

	s.log.Warn("No email found for recipient", "recipient_id", recipientID)
	return nil, "", apperr.ErrRecipientNoEmail
}

func (s *notificationService) compose(ctx context.Context, thread *domain.Thread, senderName, body string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("【ルームシェア】%sさんから新着メッセージ", senderName)

	contentTitle := ""
	if thread.ContentType == domain.ContentTypeListing {
		if listing, err := s.listingRepo.GetByID(ctx, thread.ContentID); err == nil {
			contentTitle = listing.Title
		}
	}

	link := fmt.Sprintf("%s/messages/%s", strings.TrimRight(s.appBaseURL, "/"), thread.ID)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>%sさんからメッセージが届きました。</p>", html.EscapeString(senderName)))
	if contentTitle != "" {
		b.WriteString(fmt.Sprintf("<p>物件: %s</p>", html.EscapeString(contentTitle)))
	}
	b.WriteString(fmt.Sprintf("<blockquote>%s</blockquote>", html.EscapeString(body)))
	b.WriteString(fmt.Sprintf(`<p><a href="%s">メッセージを確認する</a></p>`, link))
	htmlBody = b.String()

	var t strings.Builder
	t.WriteString(fmt.Sprintf("%sさんからメッセージが届きました。\n\n", senderName))
	if contentTitle != "" {
		t.WriteString(fmt.Sprintf("物件: %s\n\n", contentTitle))
	}
	t.WriteString(body + "\n\n" + link + "\n")
	textBody = t.String()

	return subject, htmlBody, textBody
}
