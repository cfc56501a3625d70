package authentication

import (
	"time"
)

// BlacklistedToken records a revoked token by its jti. A token whose
// jti appears here is rejected for good, even if its signature would
// still verify. ExpiresAt keeps the token's original expiry so expired
// rows can be purged without affecting correctness.
type BlacklistedToken struct {
	JTI       string    `gorm:"primaryKey;column:jti"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }
