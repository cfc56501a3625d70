package discussion

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDiscussionNotFound   = errors.New("discussion not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to discussions table")
)

type DiscussionRepository interface {
	Create(ctx context.Context, discussion *Discussion) error
	ReadByScholarship(ctx context.Context, scholarshipID uuid.UUID) (*Discussion, error)
}

type discussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) Create(ctx context.Context, discussion *Discussion) error {
	if err := r.db.WithContext(ctx).Create(discussion).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *discussionRepository) ReadByScholarship(ctx context.Context, scholarshipID uuid.UUID) (*Discussion, error) {
	var discussion Discussion
	err := r.db.WithContext(ctx).
		Where("scholarship_id = ?", scholarshipID).
		First(&discussion).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDiscussionNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &discussion, nil
}
