package service

import (
	"roomshare/internal/config"
	"roomshare/internal/repository"
	"roomshare/pkg/logger"
	"roomshare/pkg/mailer"
)

type Services struct {
	Session      SessionService
	Listing      ListingService
	Thread       ThreadService
	Notification NotificationService
	User         UserService
	Request      RequestService
	Giveaway     GiveawayService
	Moderation   ModerationService
	RateLimit    RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, mail mailer.Mailer, log logger.Logger) *Services {
	moderation := NewModerationService(cfg.Moderation, log)
	sessions := NewSessionService(cfg.Auth, log)

	return &Services{
		Session:    sessions,
		Moderation: moderation,
		Listing:    NewListingService(repos.Listing, moderation, log),
		Thread:     NewThreadService(repos.Thread, repos.Message, moderation, log),
		Notification: NewNotificationService(
			sessions, repos.Thread, repos.Message, repos.User, repos.Listing,
			mail, cfg.RateLimit, cfg.Mailer.AppBaseURL, log,
		),
		User:      NewUserService(repos.User, log),
		Request:   NewRequestService(repos.Request, moderation, log),
		Giveaway:  NewGiveawayService(repos.Giveaway, moderation, log),
		RateLimit: NewRateLimitService(repos.RateLimit, log),
	}
}
