package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"roomshare/internal/config"
	"roomshare/internal/domain"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

// SessionService validates bearer tokens issued by the authentication
// provider. Tokens are never minted here.
type SessionService interface {
	Validate(ctx context.Context, token string) (*domain.Session, error)
}

type sessionService struct {
	cfg config.AuthConfig
	log logger.Logger
}

func NewSessionService(cfg config.AuthConfig, log logger.Logger) SessionService {
	return &sessionService{cfg: cfg, log: log}
}

func (s *sessionService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, apperr.ErrUnauthorized
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: missing subject", apperr.ErrUnauthorized)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", apperr.ErrUnauthorized)
	}

	email, _ := claims["email"].(string)

	return &domain.Session{UserID: userID, Email: email}, nil
}
