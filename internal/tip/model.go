package tip

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tip is a piece of application advice shared for a scholarship.
type Tip struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	ScholarshipID uuid.UUID `json:"scholarship_id" gorm:"type:uuid;index;not null"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	DateShared    time.Time `json:"date_shared"`
}

func (t *Tip) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
