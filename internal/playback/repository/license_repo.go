package repository

import (
	"context"
	"errors"
	"time"

	"video_access_service/internal/playback/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// LicenseRepo definition per user video license store
type LicenseRepo interface {
	Migrate(ctx context.Context) error
	// Find nil when the user holds no license for videoID
	Find(ctx context.Context, userID, videoID string) (*domain.UserVideoLicense, error)
	// Upsert single row upsert on (user_id, video_id); stored id and timestamps are read back into l
	Upsert(ctx context.Context, l *domain.UserVideoLicense) error
	Delete(ctx context.Context, userID, videoID string) (bool, error)
	TouchLastValidated(ctx context.Context, id uuid.UUID, at time.Time) error
}

type licenseRepo struct {
	db *pgxpool.Pool
}

// NewLicenseRepo create a LicenseRepo
func NewLicenseRepo(db *pgxpool.Pool) LicenseRepo {
	return &licenseRepo{db: db}
}

const createLicenseTable = `
CREATE TABLE IF NOT EXISTS user_video_licenses (
	id                UUID PRIMARY KEY,
	user_id           TEXT NOT NULL,
	video_id          TEXT NOT NULL,
	status            TEXT NOT NULL,
	expires_at        TIMESTAMPTZ NULL,
	last_validated_at TIMESTAMPTZ NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT uq_user_video_license UNIQUE (user_id, video_id)
)`

func (r *licenseRepo) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createLicenseTable)
	return err
}

func (r *licenseRepo) Find(ctx context.Context, userID, videoID string) (*domain.UserVideoLicense, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id::text, user_id, video_id, status, expires_at, last_validated_at, created_at, updated_at
		FROM user_video_licenses
		WHERE user_id = $1 AND video_id = $2`, userID, videoID)

	var (
		l          domain.UserVideoLicense
		id, status string
	)
	err := row.Scan(&id, &l.UserID, &l.VideoID, &status, &l.ExpiresAt, &l.LastValidatedAt, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if l.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	l.Status = domain.LicenseStatus(status)
	return &l, nil
}

func (r *licenseRepo) Upsert(ctx context.Context, l *domain.UserVideoLicense) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO user_video_licenses (id, user_id, video_id, status, expires_at)
		VALUES ($1::uuid, $2, $3, $4, $5)
		ON CONFLICT (user_id, video_id) DO UPDATE
		SET status = EXCLUDED.status, expires_at = EXCLUDED.expires_at, updated_at = now()
		RETURNING id::text, last_validated_at, created_at, updated_at`,
		l.ID.String(), l.UserID, l.VideoID, string(l.Status), l.ExpiresAt)

	var id string
	if err := row.Scan(&id, &l.LastValidatedAt, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	l.ID = parsed
	return nil
}

func (r *licenseRepo) Delete(ctx context.Context, userID, videoID string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM user_video_licenses WHERE user_id = $1 AND video_id = $2", userID, videoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// TouchLastValidated last writer wins
func (r *licenseRepo) TouchLastValidated(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, "UPDATE user_video_licenses SET last_validated_at = $1 WHERE id = $2::uuid", at, id.String())
	return err
}
