package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents the set of possible user roles. It is fixed at
// registration and never changes afterwards.
type Role string

const (
	// Student applies to scholarships and writes reviews
	Student Role = "student"
	// Partner publishes scholarships and manages requirements
	Partner Role = "partner"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	switch r {
	case Student, Partner:
		return true
	}
	return false
}

// User represents an account in the system. Exactly one of
// StudentProfile or PartnerProfile exists, depending on Role.
type User struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	// Email address (unique)
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	FullName string `json:"full_name" gorm:"not null"`
	// Password hash (hidden from JSON)
	Password  string    `json:"-"`
	IsActive  bool      `json:"is_active" gorm:"default:false"`
	Role      Role      `json:"user_type" gorm:"column:user_type;type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StudentProfile *StudentProfile `json:"student_details,omitempty" gorm:"foreignKey:UserID"`
	PartnerProfile *PartnerProfile `json:"partner_details,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// StudentProfile holds the student-specific half of an account.
type StudentProfile struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	University string    `json:"university"`
	Username   string    `json:"username"`
	// Interested holds the id of the scholarship the student last
	// marked interest in
	Interested string    `json:"interested,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (StudentProfile) TableName() string { return "students" }

func (s *StudentProfile) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PartnerProfile holds the partner-specific half of an account.
type PartnerProfile struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	PhoneNumber string    `json:"phone_number"`
	Website     string    `json:"website"`
	Address     string    `json:"address"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PartnerProfile) TableName() string { return "partners" }

func (p *PartnerProfile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// NewUser initializes an inactive User. Activation, when the flow
// exists, happens out of band.
func NewUser(email, fullName, passwordHash string, role Role) *User {
	return &User{
		Email:    email,
		FullName: fullName,
		Password: passwordHash,
		IsActive: false,
		Role:     role,
	}
}
