package authentication

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnresponsiveDatabase = errors.New("error occurred during writing to blacklisted_tokens table")

// BlacklistRepository is the persisted set of revoked token ids.
type BlacklistRepository interface {
	// Revoke records a jti as revoked. Revoking the same jti twice is
	// a no-op, never an error.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	// IsRevoked reports whether a jti has ever been revoked,
	// regardless of whether its original expiry has passed.
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// PurgeExpired removes rows whose original expiry has passed.
	// Purging is storage hygiene only: an expired token already fails
	// signature validation.
	PurgeExpired(ctx context.Context) (int64, error)
}

type blacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

func (r *blacklistRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	record := &BlacklistedToken{JTI: jti, ExpiresAt: expiresAt}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record).
		Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *blacklistRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BlacklistedToken{}).
		Where("jti = ?", jti).
		Count(&count).
		Error
	if err != nil {
		return false, ErrUnresponsiveDatabase
	}
	return count > 0, nil
}

func (r *blacklistRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&BlacklistedToken{})
	if res.Error != nil {
		return 0, ErrUnresponsiveDatabase
	}
	return res.RowsAffected, nil
}
