package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
)

// SESAPI is the subset of the SES v2 client used for sending.
type SESAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESConfig configures an SESSender. Without static keys the default AWS
// credential chain is used.
type SESConfig struct {
	Region           string
	AccessKey        string
	SecretKey        string
	From             string
	ConfigurationSet string
}

// SESSender sends email through Amazon SES v2.
type SESSender struct {
	client SESAPI
	from   string
	cfgSet string
}

// NewSESSender loads AWS config and builds the SES client.
func NewSESSender(ctx context.Context, cfg SESConfig) (*SESSender, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSESSenderWithClient(sesv2.NewFromConfig(awsCfg), cfg.From, cfg.ConfigurationSet), nil
}

// NewSESSenderWithClient wraps an existing client.
func NewSESSenderWithClient(client SESAPI, from, configurationSet string) *SESSender {
	return &SESSender{client: client, from: from, cfgSet: configurationSet}
}

// Send submits msg to SES.
func (s *SESSender) Send(ctx context.Context, msg Message) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	if s.cfgSet != "" {
		input.ConfigurationSetName = aws.String(s.cfgSet)
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	messageID := ""
	if out != nil && out.MessageId != nil {
		messageID = *out.MessageId
	}
	logger.Info("ses: email sent", "to", msg.To, "subject", msg.Subject, "message_id", messageID)
	return nil
}

// LogSender logs instead of sending. Used when no email provider is
// configured.
type LogSender struct{}

// Send logs the subject and redacted recipient.
func (LogSender) Send(_ context.Context, msg Message) error {
	logger.Info("email not sent (no provider configured)", "to", msg.To, "subject", msg.Subject)
	return nil
}
