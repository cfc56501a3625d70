package tip

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTipNotFound          = errors.New("tip not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to tips table")
)

type TipRepository interface {
	Create(ctx context.Context, tip *Tip) error
	ReadByID(ctx context.Context, id uuid.UUID) (*Tip, error)
	ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Tip, error)
	Update(ctx context.Context, tip *Tip) error
}

type tipRepository struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) TipRepository {
	return &tipRepository{db: db}
}

func (r *tipRepository) Create(ctx context.Context, tip *Tip) error {
	if err := r.db.WithContext(ctx).Create(tip).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *tipRepository) ReadByID(ctx context.Context, id uuid.UUID) (*Tip, error) {
	var tip Tip
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tip).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTipNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &tip, nil
}

func (r *tipRepository) ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Tip, error) {
	var tips []Tip
	err := r.db.WithContext(ctx).
		Where("scholarship_id = ?", scholarshipID).
		Find(&tips).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return tips, nil
}

func (r *tipRepository) Update(ctx context.Context, tip *Tip) error {
	if err := r.db.WithContext(ctx).Save(tip).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}
