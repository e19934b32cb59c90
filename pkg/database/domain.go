package database

import (
	"time"
)

// Connection connect string plus retry policy for SQL and AMQP backends
type Connection struct {
	ConnectStr string

	RetryCount    int
	RetryInterval time.Duration
}

// MinIOConnection definition minio
type MinIOConnection struct {
	Endpoint   string
	User       string
	Password   string
	BucketName string
	UseSSL     bool

	RetryCount    int
	RetryInterval time.Duration
}

// KafkaConnection definition kafka
type KafkaConnection struct {
	Brokers       []string
	Topic         string
	RetryCount    int
	RetryInterval time.Duration
}

// retryPause sleeps between connection attempts, interval is in seconds
func retryPause(interval time.Duration) {
	if interval <= 0 {
		interval = 1
	}
	time.Sleep(interval * time.Second)
}
