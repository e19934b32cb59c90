package domain

import (
	"fmt"
	"strings"
	"time"

	errprocess "video_access_service/pkg/err"

	"github.com/google/uuid"
)

// ContentKeySize fixed width of a content decryption key in bytes
const ContentKeySize = 16

// VideoCodec definition playable codec
type VideoCodec string

const (
	// CodecH264 AVC renditions
	CodecH264 VideoCodec = "h264"
	// CodecHEVC H.265 renditions
	CodecHEVC VideoCodec = "hevc"
)

// ParseVideoCodec case insensitive, surrounding blanks ignored
func ParseVideoCodec(raw string) (VideoCodec, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", errprocess.Invalid("Codec value is required")
	}
	switch VideoCodec(normalized) {
	case CodecH264:
		return CodecH264, nil
	case CodecHEVC:
		return CodecHEVC, nil
	}
	return "", errprocess.Invalid("Unsupported video codec: %s", raw)
}

// VideoAsset content key registered for one video path
type VideoAsset struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoPath  string    `gorm:"uniqueIndex;not null" json:"videoPath"`
	KeyHex     string    `gorm:"size:32;not null" json:"-"`
	KeyBase64  string    `gorm:"size:24;not null" json:"-"`
	KeyVersion int       `gorm:"not null;default:1" json:"keyVersion"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AssetUpsertReq admin request to register or rotate a content key
type AssetUpsertReq struct {
	VideoPath  string `json:"videoPath"`
	KeyHex     string `json:"keyHex"`
	KeyBase64  string `json:"keyBase64"`
	KeyVersion *int   `json:"keyVersion,omitempty"`
}

// NormalizeVideoPath trims blanks, then every leading and trailing slash. Case is kept.
func NormalizeVideoPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errprocess.Invalid("videoPath is required")
	}
	p := strings.Trim(trimmed, "/")
	if strings.TrimSpace(p) == "" {
		return "", errprocess.Invalid("videoPath is invalid")
	}
	return p, nil
}

// StorageKeys object layout written by the encoding pipeline for one video
type StorageKeys struct {
	Video    string
	Metadata string
	Prefix   string
}

// BuildStorageKeys path must already be normalized
func BuildStorageKeys(path string, codec VideoCodec) StorageKeys {
	base := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		base = path[i+1:]
	}
	prefix := fmt.Sprintf("videos/%s/", path)
	return StorageKeys{
		Video:    fmt.Sprintf("%s%s_sourcefps_%s.mp4", prefix, base, codec),
		Metadata: fmt.Sprintf("%s%s_metadata.json", prefix, base),
		Prefix:   prefix,
	}
}

// CredentialBundle signed playback access, never persisted
type CredentialBundle struct {
	VideoURL         string            `json:"videoUrl"`
	MetadataURL      string            `json:"metadataUrl"`
	Codec            VideoCodec        `json:"codec"`
	ExpiresInSeconds int64             `json:"expiresInSeconds"`
	SignedCookies    map[string]string `json:"signedCookies"`
}
