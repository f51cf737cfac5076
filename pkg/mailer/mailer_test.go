package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestMailer(cfg Config, sender *fakeSender) Mailer {
	cfg.From = "ルームシェア <noreply@roomshare.example>"
	return &resendMailer{sender: sender, cfg: cfg, log: logger.New("error")}
}

func TestSendDeliversToRecipient(t *testing.T) {
	sender := &fakeSender{}
	m := newTestMailer(Config{}, sender)

	err := m.Send(context.Background(), Email{
		To:      "host@example.com",
		Subject: "新着メッセージ",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"host@example.com"}, sender.sent[0].To)
	assert.Equal(t, "新着メッセージ", sender.sent[0].Subject)
	assert.Equal(t, "<p>hi</p>", sender.sent[0].Html)
}

func TestSendTestModeRedirects(t *testing.T) {
	sender := &fakeSender{}
	m := newTestMailer(Config{TestMode: true, OwnerAddress: "owner@example.com"}, sender)

	err := m.Send(context.Background(), Email{
		To:      "host@example.com",
		Subject: "新着メッセージ",
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"owner@example.com"}, sender.sent[0].To,
		"test mode delivers to the owner address, not the real recipient")
	assert.Equal(t, "[TEST] 新着メッセージ", sender.sent[0].Subject)
}

func TestSendProviderFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("api key invalid")}
	m := newTestMailer(Config{}, sender)

	err := m.Send(context.Background(), Email{To: "host@example.com", Subject: "s"})

	assert.ErrorIs(t, err, apperr.ErrExternalService)
}
