package discussion

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discussion links a scholarship to its provisioned Discord channel.
// One discussion per scholarship.
type Discussion struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	ScholarshipID uuid.UUID `json:"scholarship_id" gorm:"type:uuid;uniqueIndex;not null"`
	ChannelID     string    `json:"channel_id" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d *Discussion) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
