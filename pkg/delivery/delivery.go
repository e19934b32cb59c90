// Package delivery turns storage object keys into time-boxed playback credentials.
package delivery

import (
	"context"
	"strings"
	"time"

	"video_access_service/pkg/config"
	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/keycodec"
)

// Cookie names handed to players; CDN edges expect them verbatim.
const (
	CookiePolicy    = "CloudFront-Policy"
	CookieSignature = "CloudFront-Signature"
	CookieKeyPairID = "CloudFront-Key-Pair-Id"
)

// DeliverySigner issues signed access to stored objects.
type DeliverySigner interface {
	// SignURL returns a URL for exactly objectKey valid for ttl.
	SignURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
	// SignCookies returns cookies authorizing every object under prefix for ttl,
	// or nil when the strategy has no cookie form.
	SignCookies(ctx context.Context, prefix string, ttl time.Duration) (map[string]string, error)
	// Strategy names the implementation for logs and metrics.
	Strategy() string
}

// now is swapped by tests
var now = time.Now

// NewSigner builds the signer selected by cfg.Delivery.Strategy.
// presigner is only used by the s3 strategy and may be nil otherwise.
func NewSigner(cfg config.DeliveryConfig, presigner Presigner) (DeliverySigner, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Strategy)) {
	case "", config.DeliveryCloudFront:
		if strings.TrimSpace(cfg.CloudFront.PrivateKeyBase64) == "" {
			return nil, errprocess.New(errprocess.ErrConfiguration, "CloudFront private key is not configured")
		}
		key, err := keycodec.ParsePrivateKey(cfg.CloudFront.PrivateKeyBase64)
		if err != nil {
			return nil, err
		}
		signer, err := NewCloudFrontSigner(cfg.CloudFront.Domain, cfg.CloudFront.KeyPairID, key)
		if err != nil {
			return nil, err
		}
		return signer, nil
	case config.DeliveryS3:
		signer, err := NewPresignSigner(presigner)
		if err != nil {
			return nil, err
		}
		return signer, nil
	default:
		return nil, errprocess.New(errprocess.ErrConfiguration, "unknown delivery strategy: "+cfg.Strategy)
	}
}

func validate(objectKey string, ttl time.Duration) error {
	if strings.TrimSpace(objectKey) == "" {
		return errprocess.Invalid("object key must not be blank")
	}
	if ttl <= 0 {
		return errprocess.Invalid("ttl must be positive, got %s", ttl)
	}
	return nil
}
