package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	errprocess "video_access_service/pkg/err"
)

const (
	// DeliveryCloudFront sign CDN edge URLs and cookies with an RSA key pair
	DeliveryCloudFront = "cloudfront"
	// DeliveryS3 presign object storage URLs, no cookies
	DeliveryS3 = "s3"

	// AuditSinkNone keep audit records in the database only
	AuditSinkNone = "none"
	// AuditSinkRabbitMQ also publish audit records to a RabbitMQ queue
	AuditSinkRabbitMQ = "rabbitmq"
	// AuditSinkKafka also publish audit records to a Kafka topic
	AuditSinkKafka = "kafka"

	// FallbackAccountType tier every deployment seeds, grants nothing until scoped
	FallbackAccountType = "tier_0"
)

// Playback definition playback_service YAML structure
type Playback struct {
	Port                string `mapstructure:"port"`
	IP                  string `mapstructure:"ip"`
	QueryTimeoutSeconds int    `mapstructure:"query_timeout_seconds"`
	JWTSecret           string `mapstructure:"jwt_secret"`
	AdminRole           string `mapstructure:"admin_role"`
	DefaultAccountType  string `mapstructure:"default_account_type"`

	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	Redis      RedisConfig    `mapstructure:"redis"`
	MinIO      MinIOConfig    `mapstructure:"minio"`
	Delivery   DeliveryConfig `mapstructure:"delivery"`
	Audit      AuditConfig    `mapstructure:"audit"`
}

// DeliveryConfig definition signed delivery setting
type DeliveryConfig struct {
	Strategy                 string           `mapstructure:"strategy"`
	SignedURLDurationSeconds int64            `mapstructure:"signed_url_duration_seconds"`
	CloudFront               CloudFrontConfig `mapstructure:"cloudfront"`
}

// CloudFrontConfig definition CDN signer setting
type CloudFrontConfig struct {
	Domain           string `mapstructure:"domain"`
	KeyPairID        string `mapstructure:"key_pair_id"`
	PrivateKeyBase64 string `mapstructure:"private_key_base64"`
}

// AuditConfig definition admin audit sink
type AuditConfig struct {
	Sink     string         `mapstructure:"sink"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// RabbitMQConfig definition rabbitmq setting
type RabbitMQConfig struct {
	IP            string `mapstructure:"ip"`
	Port          string `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Queue         string `mapstructure:"queue"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// MinIOConfig definition object storage setting
type MinIOConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	BucketName    string `mapstructure:"bucket_name"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	RedisDB         int  `mapstructure:"redis_db"`
	CacheTTLSeconds int  `mapstructure:"cache_ttl_seconds"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// DSN postgres connection URL
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SignedURLTTL default lifetime of issued credentials, never below one second
func (p Playback) SignedURLTTL() time.Duration {
	secs := p.Delivery.SignedURLDurationSeconds
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

// QueryTimeout bound applied to every persistence call
func (p Playback) QueryTimeout() time.Duration {
	if p.QueryTimeoutSeconds < 1 {
		return 5 * time.Second
	}
	return time.Duration(p.QueryTimeoutSeconds) * time.Second
}

// CacheTTL lifetime of cached entitlement data
func (p Playback) CacheTTL() time.Duration {
	if p.Redis.CacheTTLSeconds < 1 {
		return 30 * time.Second
	}
	return time.Duration(p.Redis.CacheTTLSeconds) * time.Second
}

// AccountTypeFallbacks tiers tried in order when seeding a new user
func (p Playback) AccountTypeFallbacks() []string {
	name := strings.ToLower(strings.TrimSpace(p.DefaultAccountType))
	if name == "" || name == FallbackAccountType {
		return []string{FallbackAccountType}
	}
	return []string{name, FallbackAccountType}
}

// Validate fail fast on settings the service cannot start without
func (p Playback) Validate() error {
	if strings.TrimSpace(p.JWTSecret) == "" {
		return errprocess.New(errprocess.ErrConfiguration, "jwt_secret is not configured")
	}
	switch strings.ToLower(strings.TrimSpace(p.Delivery.Strategy)) {
	case "", DeliveryCloudFront:
		cf := p.Delivery.CloudFront
		if strings.TrimSpace(cf.Domain) == "" {
			return errprocess.New(errprocess.ErrConfiguration, "CloudFront distribution domain is not configured")
		}
		if strings.TrimSpace(cf.KeyPairID) == "" {
			return errprocess.New(errprocess.ErrConfiguration, "CloudFront key pair ID is not configured")
		}
		if strings.TrimSpace(cf.PrivateKeyBase64) == "" {
			return errprocess.New(errprocess.ErrConfiguration, "CloudFront private key is not configured")
		}
	case DeliveryS3:
		if strings.TrimSpace(p.MinIO.BucketName) == "" {
			return errprocess.New(errprocess.ErrConfiguration, "minio bucket_name is not configured")
		}
	default:
		return errprocess.New(errprocess.ErrConfiguration, "unknown delivery strategy: "+p.Delivery.Strategy)
	}
	switch strings.ToLower(strings.TrimSpace(p.Audit.Sink)) {
	case "", AuditSinkNone, AuditSinkRabbitMQ, AuditSinkKafka:
	default:
		return errprocess.New(errprocess.ErrConfiguration, "unknown audit sink: "+p.Audit.Sink)
	}
	return nil
}
