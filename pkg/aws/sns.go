package aws

import (
	"context"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSClient publishes order events to SNS topics.
type SNSClient struct {
	client *sns.Client
}

func NewSNSClient(cfg sdkaws.Config) *SNSClient {
	return &SNSClient{client: sns.NewFromConfig(cfg)}
}

// Publish publishes a raw message to the given SNS topic ARN.
func (s *SNSClient) Publish(ctx context.Context, topicArn string, message []byte) error {
	return s.publish(ctx, topicArn, nil, message)
}

// PublishKeyed attaches the key as an "eventKey" attribute so subscribers can
// filter on it. On FIFO topics the key is also the message group, keeping
// events for one order in sequence.
func (s *SNSClient) PublishKeyed(ctx context.Context, topicArn string, key, message []byte) error {
	return s.publish(ctx, topicArn, key, message)
}

func (s *SNSClient) publish(ctx context.Context, topicArn string, key, message []byte) error {
	if topicArn == "" {
		return fmt.Errorf("empty topicArn")
	}
	input := &sns.PublishInput{
		TopicArn: sdkaws.String(topicArn),
		Message:  sdkaws.String(string(message)),
	}
	if len(key) > 0 {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"eventKey": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(string(key))},
		}
		if strings.HasSuffix(topicArn, ".fifo") {
			input.MessageGroupId = sdkaws.String(string(key))
		}
	}
	if _, err := s.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", topicArn, err)
	}
	return nil
}
