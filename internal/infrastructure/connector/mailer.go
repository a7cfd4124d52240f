package connector

import (
	"context"
	"fmt"

	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used to send mail
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client SESAPI
	sender string
	logger logger.Logger
}

// NewSESMailer creates a Mailer sending from sender through Amazon SES
func NewSESMailer(ctx context.Context, sender, region string, logger logger.Logger) (notifications.Mailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for SES: %w", err)
	}
	return NewSESMailerWithClient(ses.NewFromConfig(cfg), sender, logger), nil
}

// NewSESMailerWithClient creates a Mailer sending from sender through client
func NewSESMailerWithClient(client SESAPI, sender string, logger logger.Logger) notifications.Mailer {
	return &sesMailer{client: client, sender: sender, logger: logger}
}

func (m *sesMailer) Send(ctx context.Context, email *notifications.Email) error {
	input := &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{email.To},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(email.Subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(email.Body)},
			},
		},
		Source: aws.String(m.sender),
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}

	m.logger.Info("Sent email", "to", email.To, "subject", email.Subject, "message_id", aws.ToString(out.MessageId))
	return nil
}

// logMailer writes mails to the log instead of sending them
type logMailer struct {
	logger logger.Logger
}

// NewLogMailer creates a Mailer for development setups without a mail provider
func NewLogMailer(logger logger.Logger) notifications.Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, email *notifications.Email) error {
	m.logger.Info("Email", "to", email.To, "subject", email.Subject, "body", email.Body)
	return nil
}
