package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrAlreadyLiked         = errors.New("feedback already liked by this student")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to feedback table")
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *Feedback) error
	ReadByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Feedback, error)
	// Delete removes the feedback row and all its likes in one
	// transaction, or neither.
	Delete(ctx context.Context, id uuid.UUID) error
	// AddLike inserts a like and bumps the denormalized counter
	// atomically.
	AddLike(ctx context.Context, feedbackID, studentID uuid.UUID) (int, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *feedbackRepository) ReadByID(ctx context.Context, id uuid.UUID) (*Feedback, error) {
	var feedback Feedback
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&feedback).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &feedback, nil
}

func (r *feedbackRepository) ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Feedback, error) {
	var feedbacks []Feedback
	err := r.db.WithContext(ctx).
		Where("scholarship_id = ?", scholarshipID).
		Find(&feedbacks).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return feedbacks, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_id = ?", id).Delete(&Like{}).Error; err != nil {
			return ErrUnresponsiveDatabase
		}
		res := tx.Where("id = ?", id).Delete(&Feedback{})
		if res.Error != nil {
			return ErrUnresponsiveDatabase
		}
		if res.RowsAffected == 0 {
			return ErrFeedbackNotFound
		}
		return nil
	})
}

func (r *feedbackRepository) AddLike(ctx context.Context, feedbackID, studentID uuid.UUID) (int, error) {
	var likesCount int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var feedback Feedback
		err := tx.Where("id = ?", feedbackID).First(&feedback).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		if err != nil {
			return ErrUnresponsiveDatabase
		}

		var existing int64
		err = tx.Model(&Like{}).
			Where("feedback_id = ? AND student_id = ?", feedbackID, studentID).
			Count(&existing).
			Error
		if err != nil {
			return ErrUnresponsiveDatabase
		}
		if existing > 0 {
			return ErrAlreadyLiked
		}

		like := &Like{FeedbackID: feedbackID, StudentID: studentID}
		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return ErrUnresponsiveDatabase
		}

		feedback.LikesCount++
		if err := tx.Save(&feedback).Error; err != nil {
			return ErrUnresponsiveDatabase
		}
		likesCount = feedback.LikesCount
		return nil
	})
	return likesCount, err
}
