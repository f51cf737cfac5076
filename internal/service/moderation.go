package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"roomshare/internal/config"
	"roomshare/pkg/logger"
)

// ModerationService asks an external endpoint whether text should be
// flagged. The check is advisory: every failure degrades to "not
// flagged" with a logged warning, and submission proceeds.
type ModerationService interface {
	Check(ctx context.Context, text string) (bool, []string)
}

type moderationService struct {
	cfg    config.ModerationConfig
	client *http.Client
	log    logger.Logger
}

func NewModerationService(cfg config.ModerationConfig, log logger.Logger) ModerationService {
	return &moderationService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

type moderationRequest struct {
	Text string `json:"text"`
}

type moderationResponse struct {
	Flagged    bool     `json:"flagged"`
	Categories []string `json:"categories"`
}

func (s *moderationService) Check(ctx context.Context, text string) (bool, []string) {
	if s.cfg.URL == "" || text == "" {
		return false, nil
	}

	body, err := json.Marshal(moderationRequest{Text: text})
	if err != nil {
		s.log.Warn("Moderation check skipped", "error", err)
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		s.log.Warn("Moderation check skipped", "error", err)
		return false, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("Moderation check failed", "error", err)
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("Moderation check failed", "status", resp.StatusCode)
		return false, nil
	}

	var result moderationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.log.Warn("Moderation check failed", "error", err)
		return false, nil
	}

	return result.Flagged, result.Categories
}
