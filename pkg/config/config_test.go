package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
ip: "127.0.0.1"
query_timeout_seconds: 0
jwt_secret: "${TEST_PLAYBACK_JWT}"
default_account_type: " Tier_1 "
pg:
  host: "db"
  port: 5432
  user: "video"
  password: "p@ss word"
  database: "playback"
delivery:
  strategy: "cloudfront"
  signed_url_duration_seconds: 0
  cloudfront:
    domain: "d111111abcdef8.cloudfront.net"
    key_pair_id: "K2JCJMDEHXQW5F"
    private_key_base64: "c2VjcmV0"
audit:
  sink: "kafka"
  kafka:
    brokers: ["kafka-1:9092", "kafka-2:9092"]
    topic: "admin_audit"
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "playback_test.yaml"), []byte(sampleYAML), 0o600))
	return dir
}

func TestReadConfig(t *testing.T) {
	logger.SetNewNop()
	t.Setenv("TEST_PLAYBACK_JWT", "from-env")

	cfg, err := ReadConfig[Playback]("playback_test", writeSample(t))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "127.0.0.1", cfg.IP)
	assert.Equal(t, "db", cfg.PostgreSQL.Host)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Audit.Kafka.Brokers)
	assert.NoError(t, cfg.Validate())

	t.Run("defaults and clamps", func(t *testing.T) {
		assert.Equal(t, time.Second, cfg.SignedURLTTL())
		assert.Equal(t, 5*time.Second, cfg.QueryTimeout())
		assert.Equal(t, 30*time.Second, cfg.CacheTTL())
		assert.Equal(t, []string{"tier_1", FallbackAccountType}, cfg.AccountTypeFallbacks())
	})

	t.Run("dsn escapes credentials", func(t *testing.T) {
		assert.Equal(t, "postgres://video:p%40ss%20word@db:5432/playback?sslmode=disable", cfg.PostgreSQL.DSN())
	})
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig[Playback]("absent", t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	logger.SetNewNop()

	valid := func() Playback {
		return Playback{
			JWTSecret: "secret",
			Delivery: DeliveryConfig{
				CloudFront: CloudFrontConfig{Domain: "cdn.example.com", KeyPairID: "KID", PrivateKeyBase64: "a2V5"},
			},
		}
	}

	cases := []struct {
		name   string
		mutate func(p *Playback)
	}{
		{"missing jwt secret", func(p *Playback) { p.JWTSecret = " " }},
		{"missing cloudfront domain", func(p *Playback) { p.Delivery.CloudFront.Domain = "" }},
		{"missing key pair id", func(p *Playback) { p.Delivery.CloudFront.KeyPairID = "" }},
		{"missing private key", func(p *Playback) { p.Delivery.CloudFront.PrivateKeyBase64 = "" }},
		{"s3 without bucket", func(p *Playback) { p.Delivery.Strategy = DeliveryS3 }},
		{"unknown strategy", func(p *Playback) { p.Delivery.Strategy = "akamai" }},
		{"unknown audit sink", func(p *Playback) { p.Audit.Sink = "nats" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errprocess.ErrConfiguration))
		})
	}

	t.Run("s3 with bucket", func(t *testing.T) {
		p := valid()
		p.Delivery = DeliveryConfig{Strategy: "S3"}
		p.MinIO.BucketName = "videos"
		assert.NoError(t, p.Validate())
	})

	t.Run("fallback tier only", func(t *testing.T) {
		p := valid()
		assert.Equal(t, []string{FallbackAccountType}, p.AccountTypeFallbacks())
	})
}
