package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"roomshare/pkg/logger"
)

type Repositories struct {
	Listing   ListingRepository
	Thread    ThreadRepository
	Message   MessageRepository
	User      UserRepository
	Request   RequestRepository
	Giveaway  GiveawayRepository
	RateLimit RateLimitRepository
}

func NewRepositories(db *pgxpool.Pool, redis *redis.Client, log logger.Logger) *Repositories {
	return &Repositories{
		Listing:   NewListingRepository(db, log),
		Thread:    NewThreadRepository(db, log),
		Message:   NewMessageRepository(db, log),
		User:      NewUserRepository(db, log),
		Request:   NewRequestRepository(db, log),
		Giveaway:  NewGiveawayRepository(db, log),
		RateLimit: NewRateLimitRepository(redis, log),
	}
}
