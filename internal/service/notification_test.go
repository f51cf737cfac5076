package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roomshare/internal/config"
	"roomshare/internal/domain"
	"roomshare/internal/repository"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
	"roomshare/pkg/mailer"
)

type dispatchFixture struct {
	sessions    *MockSessionService
	threadRepo  *repository.MockThreadRepository
	messageRepo *repository.MockMessageRepository
	userRepo    *repository.MockUserRepository
	listingRepo *repository.MockListingRepository
	mail        *mailer.MockMailer

	svc NotificationService

	token       string
	callerID    uuid.UUID
	recipientID uuid.UUID
	threadID    uuid.UUID
	thread      *domain.Thread
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()

	f := &dispatchFixture{
		sessions:    &MockSessionService{},
		threadRepo:  &repository.MockThreadRepository{},
		messageRepo: &repository.MockMessageRepository{},
		userRepo:    &repository.MockUserRepository{},
		listingRepo: &repository.MockListingRepository{},
		mail:        &mailer.MockMailer{},
		token:       "valid-token",
		callerID:    uuid.New(),
		recipientID: uuid.New(),
		threadID:    uuid.New(),
	}
	f.thread = &domain.Thread{
		ID:          f.threadID,
		ContentType: domain.ContentTypeRequest,
		ContentID:   uuid.New(),
		SeekerID:    f.callerID,
		HostID:      f.recipientID,
	}

	f.svc = NewNotificationService(
		f.sessions, f.threadRepo, f.messageRepo, f.userRepo, f.listingRepo,
		f.mail,
		config.RateLimitConfig{MessageWindow: time.Minute, MessageLimit: 10},
		"https://roomshare.example.com",
		logger.New("error"),
	)

	return f
}

// happyPath arms every gate with passing defaults. Individual tests
// override the gate under test before calling Dispatch.
func (f *dispatchFixture) happyPath() {
	f.sessions.On("Validate", mock.Anything, f.token).
		Return(&domain.Session{UserID: f.callerID, Email: "seeker@example.com"}, nil).Maybe()
	f.threadRepo.On("GetByID", mock.Anything, f.threadID).Return(f.thread, nil).Maybe()
	f.messageRepo.On("CountSince", mock.Anything, f.callerID, time.Minute).Return(1, nil).Maybe()
	f.userRepo.On("GetByID", mock.Anything, f.callerID).
		Return(&domain.User{ID: f.callerID, DisplayName: "太郎", Email: "seeker@example.com", EmailNotifications: true}, nil).Maybe()
	f.userRepo.On("GetByID", mock.Anything, f.recipientID).
		Return(&domain.User{ID: f.recipientID, Email: "host@example.com", EmailNotifications: true}, nil).Maybe()
	f.mail.On("Send", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func TestDispatchSendsEmail(t *testing.T) {
	f := newDispatchFixture(t)
	f.happyPath()

	result, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "部屋はまだ空いていますか", "")

	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, result.Outcome)

	f.mail.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(e mailer.Email) bool {
		return e.To == "host@example.com" &&
			e.Subject == "【ルームシェア】太郎さんから新着メッセージ"
	}))
}

func TestDispatchInvalidToken(t *testing.T) {
	f := newDispatchFixture(t)
	f.sessions.On("Validate", mock.Anything, "bad-token").Return(nil, apperr.ErrUnauthorized)

	_, err := f.svc.Dispatch(context.Background(), "bad-token", f.threadID, "hi", "")

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatchThreadNotFound(t *testing.T) {
	f := newDispatchFixture(t)
	f.happyPath()
	missing := uuid.New()
	f.threadRepo.On("GetByID", mock.Anything, missing).Return(nil, apperr.ErrThreadNotFound)

	_, err := f.svc.Dispatch(context.Background(), f.token, missing, "hi", "")

	assert.ErrorIs(t, err, apperr.ErrThreadNotFound)
	f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatchNonParticipant(t *testing.T) {
	f := newDispatchFixture(t)
	outsider := uuid.New()
	f.sessions.On("Validate", mock.Anything, f.token).
		Return(&domain.Session{UserID: outsider, Email: "outsider@example.com"}, nil)
	f.threadRepo.On("GetByID", mock.Anything, f.threadID).Return(f.thread, nil)

	_, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	f.messageRepo.AssertNotCalled(t, "CountSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchRateLimit(t *testing.T) {
	t.Run("at the limit still sends", func(t *testing.T) {
		f := newDispatchFixture(t)
		f.happyPath()
		f.messageRepo.ExpectedCalls = nil
		f.messageRepo.On("CountSince", mock.Anything, f.callerID, time.Minute).Return(10, nil)

		result, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

		require.NoError(t, err, "the tenth message in the window is still allowed")
		assert.Equal(t, OutcomeSent, result.Outcome)
	})

	t.Run("over the limit is rejected", func(t *testing.T) {
		f := newDispatchFixture(t)
		f.happyPath()
		f.messageRepo.ExpectedCalls = nil
		f.messageRepo.On("CountSince", mock.Anything, f.callerID, time.Minute).Return(11, nil)

		_, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

		assert.ErrorIs(t, err, apperr.ErrRateLimited)
		f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("count failure surfaces as external error", func(t *testing.T) {
		f := newDispatchFixture(t)
		f.happyPath()
		f.messageRepo.ExpectedCalls = nil
		f.messageRepo.On("CountSince", mock.Anything, f.callerID, time.Minute).Return(0, errors.New("connection reset"))

		_, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

		assert.ErrorIs(t, err, apperr.ErrExternalService)
		f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestDispatchRecipientEmailFallback(t *testing.T) {
	t.Run("profile email missing falls back to auth record", func(t *testing.T) {
		f := newDispatchFixture(t)
		f.happyPath()
		f.userRepo.ExpectedCalls = nil
		f.userRepo.On("GetByID", mock.Anything, f.callerID).
			Return(&domain.User{ID: f.callerID, DisplayName: "太郎"}, nil)
		f.userRepo.On("GetByID", mock.Anything, f.recipientID).
			Return(&domain.User{ID: f.recipientID, Email: "", EmailNotifications: true}, nil)
		f.userRepo.On("GetAuthRecord", mock.Anything, f.recipientID).
			Return(&domain.AuthRecord{ID: f.recipientID, Email: "auth@example.com"}, nil)

		result, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

		require.NoError(t, err)
		assert.Equal(t, OutcomeSent, result.Outcome)
		f.mail.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(e mailer.Email) bool {
			return e.To == "auth@example.com"
		}))
	})

	t.Run("no email anywhere fails", func(t *testing.T) {
		f := newDispatchFixture(t)
		f.happyPath()
		f.userRepo.ExpectedCalls = nil
		f.userRepo.On("GetByID", mock.Anything, f.callerID).
			Return(&domain.User{ID: f.callerID, DisplayName: "太郎"}, nil)
		f.userRepo.On("GetByID", mock.Anything, f.recipientID).Return(nil, apperr.ErrUserNotFound)
		f.userRepo.On("GetAuthRecord", mock.Anything, f.recipientID).Return(nil, apperr.ErrUserNotFound)

		_, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

		assert.ErrorIs(t, err, apperr.ErrRecipientNoEmail)
		f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestDispatchNotificationsDisabled(t *testing.T) {
	f := newDispatchFixture(t)
	f.happyPath()
	f.userRepo.ExpectedCalls = nil
	f.userRepo.On("GetByID", mock.Anything, f.callerID).
		Return(&domain.User{ID: f.callerID, DisplayName: "太郎"}, nil)
	f.userRepo.On("GetByID", mock.Anything, f.recipientID).
		Return(&domain.User{ID: f.recipientID, Email: "host@example.com", EmailNotifications: false}, nil)

	result, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

	require.NoError(t, err, "an opted-out recipient is a skip, not a failure")
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatchSenderNameResolution(t *testing.T) {
	t.Run("supplied name wins", func(t *testing.T) {
		f := newDispatchFixture(t)
		f.happyPath()

		_, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "はなこ")

		require.NoError(t, err)
		f.mail.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(e mailer.Email) bool {
			return e.Subject == "【ルームシェア】はなこさんから新着メッセージ"
		}))
	})

	t.Run("falls back to email local part", func(t *testing.T) {
		f := newDispatchFixture(t)
		f.happyPath()
		f.userRepo.ExpectedCalls = nil
		f.userRepo.On("GetByID", mock.Anything, f.callerID).Return(nil, apperr.ErrUserNotFound)
		f.userRepo.On("GetByID", mock.Anything, f.recipientID).
			Return(&domain.User{ID: f.recipientID, Email: "host@example.com", EmailNotifications: true}, nil)

		_, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

		require.NoError(t, err)
		f.mail.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(e mailer.Email) bool {
			return e.Subject == "【ルームシェア】seekerさんから新着メッセージ"
		}))
	})
}

func TestDispatchIncludesListingTitle(t *testing.T) {
	f := newDispatchFixture(t)
	f.thread.ContentType = domain.ContentTypeListing
	f.happyPath()
	f.listingRepo.On("GetByID", mock.Anything, f.thread.ContentID).
		Return(&domain.Listing{ID: f.thread.ContentID, Title: "渋谷の個室"}, nil)

	_, err := f.svc.Dispatch(context.Background(), f.token, f.threadID, "hi", "")

	require.NoError(t, err)
	f.mail.AssertCalled(t, "Send", mock.Anything, mock.MatchedBy(func(e mailer.Email) bool {
		return strings.Contains(e.HTML, "渋谷の個室") &&
			strings.Contains(e.Text, "渋谷の個室") &&
			strings.Contains(e.HTML, "/messages/"+f.threadID.String())
	}))
}
