package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EventPublisher delivers a serialized event to a topic. Kafka and SNS both satisfy it;
// for SNS the topic is the topic ARN.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, message []byte) error
}

// KeyedPublisher is implemented by publishers that can partition by key.
type KeyedPublisher interface {
	PublishKeyed(ctx context.Context, topic string, key, message []byte) error
}

// MetricsRecorder is the subset of the CloudWatch metrics client the services use.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// recordCount emits a metric off the request path.
func recordCount(metrics MetricsRecorder, logger *zap.Logger, name string, dims map[string]string) {
	if metrics == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.RecordCount(ctx, name, dims); err != nil {
			logger.Debug("Failed to record metric", zap.String("metric", name), zap.Error(err))
		}
	}()
}
