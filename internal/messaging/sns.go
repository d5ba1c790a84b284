package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/novabot-ai/novabot/internal/models"
)

// AlertPublisher defines the interface for publishing operational alerts
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *models.Alert) error
}

// publishAPI is the subset of the SNS client the publisher uses
type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient implements AlertPublisher using AWS SNS
type SNSClient struct {
	client   publishAPI
	topicArn string
	logger   *slog.Logger
}

// NewSNSClient creates a new SNS alert publisher
func NewSNSClient(client *sns.Client, topicArn string, logger *slog.Logger) *SNSClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &SNSClient{
		client:   client,
		topicArn: topicArn,
		logger:   logger,
	}
}

// PublishAlert publishes an alert to the SNS topic
func (s *SNSClient) PublishAlert(ctx context.Context, alert *models.Alert) error {
	// Serialize alert to JSON
	alertBytes, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert to JSON: %w", err)
	}

	// Publish to SNS
	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicArn),
		Subject:  aws.String(alert.Subject),
		Message:  aws.String(string(alertBytes)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"stage": {
				DataType:    aws.String("String"),
				StringValue: aws.String(alert.Stage.String()),
			},
			"kind": {
				DataType:    aws.String("String"),
				StringValue: aws.String(alert.Kind.String()),
			},
		},
	}

	result, err := s.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish alert to SNS: %w", err)
	}

	s.logger.InfoContext(ctx, "alert published to SNS",
		slog.String("alert_id", alert.ID),
		slog.String("kind", alert.Kind.String()),
		slog.String("sns_message_id", aws.ToString(result.MessageId)),
		slog.String("topic_arn", s.topicArn),
	)

	return nil
}
