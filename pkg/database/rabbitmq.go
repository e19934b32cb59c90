package database

import (
	"fmt"
	"time"

	"video_access_service/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// RabbitRepo definition rabbit repo
type RabbitRepo interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type rabbitRepo struct {
	channel *amqp.Channel
}

// NewRabbitRepository create a RabbitRepository
func NewRabbitRepository(ch *amqp.Channel) RabbitRepo {
	return &rabbitRepo{channel: ch}
}

// ConnectRabbitMQWithRetry dial RabbitMQ, retried RetryCount times
func ConnectRabbitMQWithRetry(d Connection) (*amqp.Connection, error) {
	var (
		conn *amqp.Connection
		err  error
	)

	for attempt := 1; attempt <= attempts(d.RetryCount); attempt++ {
		conn, err = amqp.Dial(d.ConnectStr)
		if err == nil {
			logger.Log.Info("RabbitMQ connected", zap.Int("attempt", attempt))
			return conn, nil
		}

		logger.Log.Warn("RabbitMQ connect failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < attempts(d.RetryCount) {
			retryPause(d.RetryInterval)
		}
	}

	return nil, fmt.Errorf("connect RabbitMQ after %d attempts: %w", attempts(d.RetryCount), err)
}

// GetRabbitMQChannelWithRetry open a channel on conn and declare a durable queue
func GetRabbitMQChannelWithRetry(conn *amqp.Connection, queue string, maxRetries int, interval time.Duration) (*amqp.Channel, error) {
	var (
		ch  *amqp.Channel
		err error
	)

	for attempt := 1; attempt <= attempts(maxRetries); attempt++ {
		ch, err = conn.Channel()
		if err == nil {
			_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
			if err == nil {
				logger.Log.Info("RabbitMQ channel ready", zap.String("queue", queue), zap.Int("attempt", attempt))
				return ch, nil
			}
			_ = ch.Close()
		}

		logger.Log.Warn("RabbitMQ channel failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < attempts(maxRetries) {
			retryPause(interval)
		}
	}

	return nil, fmt.Errorf("open RabbitMQ channel after %d attempts: %w", attempts(maxRetries), err)
}

func (r *rabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return r.channel.Publish(exchange, key, mandatory, immediate, msg)
}
