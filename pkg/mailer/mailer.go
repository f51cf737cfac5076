package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type Config struct {
	APIKey       string
	From         string
	TestMode     bool
	OwnerAddress string
}

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type resendMailer struct {
	sender emailSender
	cfg    Config
	log    logger.Logger
}

func NewResend(cfg Config, log logger.Logger) Mailer {
	return &resendMailer{
		sender: resend.NewClient(cfg.APIKey).Emails,
		cfg:    cfg,
		log:    log,
	}
}

func (m *resendMailer) Send(ctx context.Context, email Email) error {
	to := email.To
	subject := email.Subject

	// On an unverified sending domain, deliveries go to the owner
	// address with a marked subject; the intended recipient is logged.
	if m.cfg.TestMode {
		m.log.Info("test mode: redirecting email", "intended_to", email.To)
		to = m.cfg.OwnerAddress
		subject = "[TEST] " + subject
	}

	params := &resend.SendEmailRequest{
		From:    m.cfg.From,
		To:      []string{to},
		Subject: subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	if _, err := m.sender.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("%w: send email: %v", apperr.ErrExternalService, err)
	}

	return nil
}
