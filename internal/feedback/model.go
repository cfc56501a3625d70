package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is a student's review of a scholarship, rated out of 5.
type Feedback struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ScholarshipID  uuid.UUID `json:"scholarship_id" gorm:"type:uuid;index;not null"`
	StudentID      uuid.UUID `json:"student_id" gorm:"type:uuid;index;not null"`
	Rating         int       `json:"rating" gorm:"not null"`
	Review         string    `json:"review"`
	TipsOnApplying string    `json:"tips_on_applying"`
	LikesCount     int       `json:"likes_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Like marks that a student liked a feedback entry, at most once.
type Like struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FeedbackID uuid.UUID `json:"feedback_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_feedback_student"`
	StudentID  uuid.UUID `json:"student_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_feedback_student"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }

func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
