package scholarship

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrScholarshipNotFound  = errors.New("scholarship not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to scholarships table")
)

type ScholarshipRepository interface {
	Create(ctx context.Context, scholarship *Scholarship) error
	List(ctx context.Context, filter *Filter) ([]Scholarship, error)
	ReadByID(ctx context.Context, id uuid.UUID) (*Scholarship, error)
	Update(ctx context.Context, scholarship *Scholarship) error
	// Delete removes the scholarship together with its feedback and
	// the feedback's likes, all or nothing.
	Delete(ctx context.Context, id uuid.UUID) error
}

type scholarshipRepository struct {
	db *gorm.DB
}

func NewScholarshipRepository(db *gorm.DB) ScholarshipRepository {
	return &scholarshipRepository{db: db}
}

func (r *scholarshipRepository) Create(ctx context.Context, scholarship *Scholarship) error {
	if err := r.db.WithContext(ctx).Create(scholarship).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *scholarshipRepository) List(ctx context.Context, filter *Filter) ([]Scholarship, error) {
	query := r.db.WithContext(ctx).Model(&Scholarship{})
	if filter != nil {
		if filter.Location != "" {
			query = query.Where("location = ?", filter.Location)
		}
		if filter.FieldOfStudy != "" {
			query = query.Where("field_of_study = ?", filter.FieldOfStudy)
		}
		if filter.FundingType != "" {
			query = query.Where("funding_type = ?", filter.FundingType)
		}
	}

	var scholarships []Scholarship
	if err := query.Find(&scholarships).Error; err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return scholarships, nil
}

func (r *scholarshipRepository) ReadByID(ctx context.Context, id uuid.UUID) (*Scholarship, error) {
	var scholarship Scholarship
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&scholarship).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScholarshipNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &scholarship, nil
}

func (r *scholarshipRepository) Update(ctx context.Context, scholarship *Scholarship) error {
	if err := r.db.WithContext(ctx).Save(scholarship).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *scholarshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// dependent rows first; likes hang off feedback, feedback off
		// the scholarship
		err := tx.Exec(
			"DELETE FROM likes WHERE feedback_id IN (SELECT id FROM feedback WHERE scholarship_id = ?)",
			id,
		).Error
		if err != nil {
			return ErrUnresponsiveDatabase
		}
		if err := tx.Exec("DELETE FROM feedback WHERE scholarship_id = ?", id).Error; err != nil {
			return ErrUnresponsiveDatabase
		}

		res := tx.Where("id = ?", id).Delete(&Scholarship{})
		if res.Error != nil {
			return ErrUnresponsiveDatabase
		}
		if res.RowsAffected == 0 {
			return ErrScholarshipNotFound
		}
		return nil
	})
}
