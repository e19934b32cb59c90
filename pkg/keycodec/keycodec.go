// Package keycodec decodes operator supplied RSA signing keys.
//
// Keys arrive as base64 text. The decoded bytes are either DER directly or a PEM
// document whose body is DER, and the DER is either PKCS#8 or legacy PKCS#1.
package keycodec

import (
	"crypto/rsa"
	"crypto/x509"
	encoding_asn1 "encoding/asn1"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	errprocess "video_access_service/pkg/err"
	"video_access_service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var (
	pemBlock  = regexp.MustCompile(`-----BEGIN [^-]+-----([\s\S]+?)-----END [^-]+-----`)
	nonBase64 = regexp.MustCompile(`[^A-Za-z0-9+/=]`)

	oidRSAEncryption = encoding_asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
)

// ParsePrivateKey decodes base64Text into an RSA private key.
// Every failure is reported as errprocess.ErrKeyFormat.
func ParsePrivateKey(base64Text string) (*rsa.PrivateKey, error) {
	compact := strings.Join(strings.Fields(base64Text), "")
	if compact == "" {
		return nil, errprocess.New(errprocess.ErrKeyFormat, "private key is empty")
	}

	outer, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ErrKeyFormat, "private key is not valid base64", err)
	}

	der, err := extractDER(outer)
	if err != nil {
		return nil, err
	}

	if key, err := parsePKCS8(der); err == nil {
		logger.Log.Debug("parsed private key", zap.String("format", "pkcs8"))
		return key, nil
	}

	wrapped, err := wrapPKCS1(der)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ErrKeyFormat, "private key is neither PKCS#8 nor PKCS#1 DER", err)
	}
	key, err := parsePKCS8(wrapped)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ErrKeyFormat, "private key is neither PKCS#8 nor PKCS#1 DER", err)
	}
	logger.Log.Debug("parsed private key", zap.String("format", "pkcs1"))
	return key, nil
}

// extractDER returns the body of the first PEM block in decoded, or decoded itself when there is none
func extractDER(decoded []byte) ([]byte, error) {
	m := pemBlock.FindSubmatch(decoded)
	if m == nil {
		return decoded, nil
	}
	body := nonBase64.ReplaceAll(m[1], nil)
	der, err := base64.StdEncoding.DecodeString(string(body))
	if err != nil {
		return nil, errprocess.Wrap(errprocess.ErrKeyFormat, "PEM body is not valid base64", err)
	}
	return der, nil
}

func parsePKCS8(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not an RSA key")
	}
	return rsaKey, nil
}

// wrapPKCS1 embeds a PKCS#1 RSAPrivateKey in a PKCS#8 PrivateKeyInfo tagged rsaEncryption
func wrapPKCS1(der []byte) ([]byte, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, errors.New("DER is not a single ASN.1 SEQUENCE")
	}
	var version int64
	if !seq.ReadASN1Int64WithTag(&version, cbasn1.INTEGER) || version != 0 {
		return nil, errors.New("DER is not an RSAPrivateKey structure")
	}

	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidRSAEncryption)
			b.AddASN1NULL()
		})
		b.AddASN1OctetString(der)
	})
	return b.Bytes()
}
