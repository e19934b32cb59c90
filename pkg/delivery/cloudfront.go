package delivery

import (
	"context"
	"crypto/rsa"
	"strings"
	"time"

	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"github.com/aws/aws-sdk-go/service/cloudfront/sign"
	"go.uber.org/zap"
)

// CloudFrontSigner signs edge URLs with a canned policy and cookies with a custom policy
type CloudFrontSigner struct {
	domain    string
	keyPairID string
	urls      *sign.URLSigner
	cookies   *sign.CookieSigner
}

// NewCloudFrontSigner every argument is required
func NewCloudFrontSigner(domain, keyPairID string, key *rsa.PrivateKey) (*CloudFrontSigner, error) {
	domain = strings.TrimSpace(domain)
	keyPairID = strings.TrimSpace(keyPairID)
	switch {
	case domain == "":
		return nil, errprocess.New(errprocess.ErrConfiguration, "CloudFront distribution domain is not configured")
	case keyPairID == "":
		return nil, errprocess.New(errprocess.ErrConfiguration, "CloudFront key pair ID is not configured")
	case key == nil:
		return nil, errprocess.New(errprocess.ErrConfiguration, "CloudFront private key is not configured")
	}

	return &CloudFrontSigner{
		domain:    strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://"), "/"),
		keyPairID: keyPairID,
		urls:      sign.NewURLSigner(keyPairID, key),
		cookies:   sign.NewCookieSigner(keyPairID, key),
	}, nil
}

// Strategy name of this signer
func (s *CloudFrontSigner) Strategy() string {
	return "cloudfront"
}

// SignURL canned policy URL for exactly https://{domain}/{objectKey}
func (s *CloudFrontSigner) SignURL(_ context.Context, objectKey string, ttl time.Duration) (string, error) {
	if err := validate(objectKey, ttl); err != nil {
		return "", err
	}

	resource := s.resourceURL(objectKey)
	expiresAt := now().Add(ttl)
	signed, err := s.urls.Sign(resource, expiresAt)
	if err != nil {
		return "", errprocess.Wrap(errprocess.ErrKeyFormat, "failed to sign CloudFront URL", err)
	}

	logger.Log.Debug("signed CloudFront URL", zap.String("resource", resource), zap.Time("expires_at", expiresAt))
	return signed, nil
}

// SignCookies custom policy cookies for every object under prefix, valid [now, now+ttl]
func (s *CloudFrontSigner) SignCookies(_ context.Context, prefix string, ttl time.Duration) (map[string]string, error) {
	if err := validate(prefix, ttl); err != nil {
		return nil, err
	}

	resource := wildcard(s.resourceURL(prefix))
	issuedAt := now()
	policy := &sign.Policy{
		Statements: []sign.Statement{{
			Resource: resource,
			Condition: sign.Condition{
				DateGreaterThan: &sign.AWSEpochTime{Time: issuedAt},
				DateLessThan:    &sign.AWSEpochTime{Time: issuedAt.Add(ttl)},
			},
		}},
	}

	cookies, err := s.cookies.SignWithPolicy(policy)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ErrKeyFormat, "failed to sign CloudFront cookies", err)
	}

	out := make(map[string]string, 3)
	for _, c := range cookies {
		switch c.Name {
		case CookiePolicy, CookieSignature, CookieKeyPairID:
			out[c.Name] = c.Value
		}
	}
	logger.Log.Debug("signed CloudFront cookies", zap.String("resource", resource))
	return out, nil
}

func (s *CloudFrontSigner) resourceURL(key string) string {
	return "https://" + s.domain + "/" + strings.TrimPrefix(strings.TrimSpace(key), "/")
}

// wildcard makes resource match everything below it
func wildcard(resource string) string {
	if strings.HasSuffix(resource, "*") {
		return resource
	}
	if !strings.HasSuffix(resource, "/") {
		resource += "/"
	}
	return resource + "*"
}
