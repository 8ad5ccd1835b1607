package mail

import (
	"context"
	"errors"

	"github.com/resend/resend-go/v2"
)

var _ Mailer = (*ResendMailer)(nil)

// ResendMailer delivers through the Resend transactional API.
type ResendMailer struct {
	client *resend.Client
}

// NewResend constructs a mailer around the given API key.
func NewResend(apiKey string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("mail: api key is required")
	}
	return &ResendMailer{client: resend.NewClient(apiKey)}, nil
}

func (m *ResendMailer) Send(ctx context.Context, from, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	_, err := m.client.Emails.SendWithContext(ctx, params)
	return err
}
