package requirement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequirementNotFound  = errors.New("requirement not found")
	ErrNoRequirements       = errors.New("no requirements found for country")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to country_requirements table")
)

type RequirementRepository interface {
	// CreateBatch inserts all requirements for a country in one
	// transaction, all or nothing.
	CreateBatch(ctx context.Context, requirements []CountryRequirement) error
	ListByCountry(ctx context.Context, country string) ([]CountryRequirement, error)
	ReadByID(ctx context.Context, id uuid.UUID) (*CountryRequirement, error)
	Update(ctx context.Context, requirement *CountryRequirement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type requirementRepository struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) RequirementRepository {
	return &requirementRepository{db: db}
}

func (r *requirementRepository) CreateBatch(ctx context.Context, requirements []CountryRequirement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range requirements {
			if err := tx.Create(&requirements[i]).Error; err != nil {
				return ErrUnresponsiveDatabase
			}
		}
		return nil
	})
}

func (r *requirementRepository) ListByCountry(ctx context.Context, country string) ([]CountryRequirement, error) {
	var requirements []CountryRequirement
	err := r.db.WithContext(ctx).
		Where("LOWER(country) = LOWER(?)", country).
		Find(&requirements).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	if len(requirements) == 0 {
		return nil, ErrNoRequirements
	}
	return requirements, nil
}

func (r *requirementRepository) ReadByID(ctx context.Context, id uuid.UUID) (*CountryRequirement, error) {
	var requirement CountryRequirement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requirement).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequirementNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &requirement, nil
}

func (r *requirementRepository) Update(ctx context.Context, requirement *CountryRequirement) error {
	if err := r.db.WithContext(ctx).Save(requirement).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *requirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&CountryRequirement{})
	if res.Error != nil {
		return ErrUnresponsiveDatabase
	}
	if res.RowsAffected == 0 {
		return ErrRequirementNotFound
	}
	return nil
}
