package domain

import (
	"strings"
	"time"

	errprocess "video_access_service/pkg/err"

	"github.com/google/uuid"
)

// LicenseStatus explicit license state
type LicenseStatus string

const (
	// LicenseActive grants until ExpiresAt
	LicenseActive LicenseStatus = "ACTIVE"
	// LicenseSuspended denies, may be reactivated
	LicenseSuspended LicenseStatus = "SUSPENDED"
	// LicenseRevoked denies
	LicenseRevoked LicenseStatus = "REVOKED"
)

// ParseLicenseStatus case insensitive
func ParseLicenseStatus(raw string) (LicenseStatus, error) {
	switch s := LicenseStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case LicenseActive, LicenseSuspended, LicenseRevoked:
		return s, nil
	}
	return "", errprocess.Invalid("unknown license status %q", raw)
}

// DenialReason why a playback check was denied
type DenialReason string

const (
	// DenialNotFound no license and the tier does not cover the video
	DenialNotFound DenialReason = "NOT_FOUND"
	// DenialSuspended license suspended
	DenialSuspended DenialReason = "SUSPENDED"
	// DenialRevoked license revoked
	DenialRevoked DenialReason = "REVOKED"
	// DenialExpired active license past its expiry
	DenialExpired DenialReason = "EXPIRED"
)

// Message client facing text, one per reason
func (r DenialReason) Message() string {
	switch r {
	case DenialSuspended:
		return "This video license is suspended."
	case DenialRevoked:
		return "This video license has been revoked."
	case DenialExpired:
		return "This video license has expired."
	default:
		return "No license exists for this video."
	}
}

// UserVideoLicense per user override of tier entitlement
type UserVideoLicense struct {
	ID              uuid.UUID     `json:"id"`
	UserID          string        `json:"userId"`
	VideoID         string        `json:"videoPath"`
	Status          LicenseStatus `json:"status"`
	ExpiresAt       *time.Time    `json:"expiresAt"`
	LastValidatedAt *time.Time    `json:"lastValidatedAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// LicenseUpsertReq admin request; nil fields keep the stored value
type LicenseUpsertReq struct {
	UserID    string     `json:"userId"`
	VideoPath string     `json:"videoPath"`
	Status    *string    `json:"status,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// LicenseDecision outcome of one playback check
type LicenseDecision struct {
	VideoID      string         `json:"videoId"`
	Granted      bool           `json:"licenseGranted"`
	Status       *LicenseStatus `json:"status"`
	ExpiresAt    *time.Time     `json:"expiresAt"`
	CheckedAt    time.Time      `json:"checkedAt"`
	DenialReason *DenialReason  `json:"denialReason"`
}

// AccessDeniedError a denied decision surfaced as an error
type AccessDeniedError struct {
	VideoID string
	Reason  DenialReason
}

func (e *AccessDeniedError) Error() string {
	return e.Reason.Message()
}

// Is matches errprocess.ErrAccessDenied
func (e *AccessDeniedError) Is(target error) bool {
	return target == errprocess.ErrAccessDenied
}
