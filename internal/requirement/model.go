package requirement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CountryRequirement is one application document required for a
// country.
type CountryRequirement struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Country      string    `json:"country" gorm:"index;not null"`
	DocumentType string    `json:"document_type" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Mandatory    bool      `json:"mandatory" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
}

func (CountryRequirement) TableName() string { return "country_requirements" }

func (r *CountryRequirement) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
