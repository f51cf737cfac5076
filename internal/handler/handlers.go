package handler

import (
	"roomshare/internal/service"
	"roomshare/pkg/logger"
)

type Handlers struct {
	Health       *HealthHandler
	Listing      *ListingHandler
	Thread       *ThreadHandler
	Notification *NotificationHandler
	User         *UserHandler
	Request      *RequestHandler
	Giveaway     *GiveawayHandler
}

func NewHandlers(services *service.Services, log logger.Logger) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Listing:      NewListingHandler(services.Listing, log),
		Thread:       NewThreadHandler(services.Thread, log),
		Notification: NewNotificationHandler(services.Notification, log),
		User:         NewUserHandler(services.User, log),
		Request:      NewRequestHandler(services.Request, log),
		Giveaway:     NewGiveawayHandler(services.Giveaway, log),
	}
}
