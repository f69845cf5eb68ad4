package clients

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// EmailSender sends one transactional email and reports success as a boolean.
// Implementations never return delivery errors to the caller.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html, text string) bool
}

// EmailClient sends transactional email via Amazon SES. With no from-address
// configured it becomes a disabled no-op that reports every send as skipped.
type EmailClient struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	logger    *zap.Logger
}

// NewEmailClient creates an email client. An empty fromEmail disables sending.
func NewEmailClient(ctx context.Context, awsRegion, fromEmail, fromName string, logger *zap.Logger) (*EmailClient, error) {
	if fromEmail == "" {
		logger.Info("email sending disabled: EMAIL_FROM not configured")
		return &EmailClient{enabled: false, logger: logger}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("email sending enabled",
		zap.String("from", fromEmail),
		zap.String("region", awsRegion),
	)

	return &EmailClient{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}, nil
}

// Send delivers one email. Failures are logged and reported as false.
func (e *EmailClient) Send(ctx context.Context, to, subject, html, text string) bool {
	if !e.enabled {
		e.logger.Info("skipping email send (disabled)", zap.String("to", to), zap.String("subject", subject))
		return false
	}

	body := &sestypes.Body{
		Html: &sestypes.Content{Data: aws.String(html)},
	}
	if text != "" {
		body.Text = &sestypes.Content{Data: aws.String(text)}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", e.fromName, e.fromEmail)),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    body,
			},
		},
	}

	if _, err := e.client.SendEmail(ctx, input); err != nil {
		e.logger.Error("email send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return false
	}

	return true
}
