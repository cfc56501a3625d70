package scholarship

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const StatusOpen = "open"

// Scholarship is a program published by a partner organization.
type Scholarship struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	Location        string    `json:"location"`
	ApplicationLink string    `json:"application_link"`
	FieldOfStudy    string    `json:"field_of_study"`
	FundingType     string    `json:"funding_type"`
	FundingAmount   float64   `json:"funding_amount"`
	Duration        int       `json:"duration"`
	Status          string    `json:"status" gorm:"default:open"`
	PartnerID       uuid.UUID `json:"partner_id" gorm:"type:uuid;index;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *Scholarship) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Filter narrows scholarship listings. Zero values mean "any".
type Filter struct {
	Location     string
	FieldOfStudy string
	FundingType  string
}
