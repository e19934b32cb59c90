package database

import (
	"context"
	"fmt"
	"time"

	"video_access_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaWriter the subset of *kafka.Writer used by publishers
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriterWithRetry dial one of the brokers until it answers, then return a writer on Topic
func NewKafkaWriterWithRetry(k KafkaConnection) (*kafka.Writer, error) {
	if len(k.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}

	var err error
	for attempt := 1; attempt <= attempts(k.RetryCount); attempt++ {
		if err = pingBrokers(k.Brokers); err == nil {
			logger.Log.Info("Kafka broker reachable", zap.Strings("brokers", k.Brokers), zap.Int("attempt", attempt))
			return &kafka.Writer{
				Addr:         kafka.TCP(k.Brokers...),
				Topic:        k.Topic,
				Balancer:     &kafka.LeastBytes{},
				RequiredAcks: kafka.RequireOne,
			}, nil
		}

		logger.Log.Warn("Kafka broker unreachable, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < attempts(k.RetryCount) {
			retryPause(k.RetryInterval)
		}
	}

	return nil, fmt.Errorf("connect Kafka after %d attempts: %w", attempts(k.RetryCount), err)
}

func pingBrokers(brokers []string) error {
	var lastErr error
	for _, b := range brokers {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		conn, err := kafka.DialContext(ctx, "tcp", b)
		cancel()
		if err == nil {
			return conn.Close()
		}
		lastErr = err
	}
	return lastErr
}
