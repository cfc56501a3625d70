package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/scholarship"
	"github.com/opportunity-hub/api/internal/user"
)

// CreateInput is what a student supplies when reviewing a scholarship.
type CreateInput struct {
	ScholarshipID  uuid.UUID
	Rating         int
	Review         string
	TipsOnApplying string
}

type FeedbackService interface {
	Create(ctx context.Context, studentUserID uuid.UUID, input *CreateInput) (*Feedback, error)
	ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, studentUserID, feedbackID uuid.UUID) (int, error)
}

type feedbackService struct {
	repo         FeedbackRepository
	scholarships scholarship.ScholarshipRepository
	userService  user.UserService
	logger       *zap.Logger
}

func NewFeedbackService(
	repo FeedbackRepository,
	scholarships scholarship.ScholarshipRepository,
	userService user.UserService,
	logger *zap.Logger,
) FeedbackService {
	return &feedbackService{
		repo:         repo,
		scholarships: scholarships,
		userService:  userService,
		logger:       logger,
	}
}

func (s *feedbackService) Create(ctx context.Context, studentUserID uuid.UUID, input *CreateInput) (*Feedback, error) {
	student, err := s.userService.ReadStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.scholarships.ReadByID(ctx, input.ScholarshipID); err != nil {
		return nil, err
	}

	feedback := &Feedback{
		ScholarshipID:  input.ScholarshipID,
		StudentID:      student.ID,
		Rating:         input.Rating,
		Review:         input.Review,
		TipsOnApplying: input.TipsOnApplying,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		s.logger.Error("failed to create feedback", zap.Error(err))
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Feedback, error) {
	return s.repo.ListByScholarship(ctx, scholarshipID)
}

func (s *feedbackService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrFeedbackNotFound) {
			s.logger.Error("failed to delete feedback", zap.String("id", id.String()), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *feedbackService) Like(ctx context.Context, studentUserID, feedbackID uuid.UUID) (int, error) {
	student, err := s.userService.ReadStudentByUserID(ctx, studentUserID)
	if err != nil {
		return 0, err
	}
	likesCount, err := s.repo.AddLike(ctx, feedbackID, student.ID)
	if err != nil {
		if !errors.Is(err, ErrAlreadyLiked) && !errors.Is(err, ErrFeedbackNotFound) {
			s.logger.Error("failed to add like", zap.String("feedback_id", feedbackID.String()), zap.Error(err))
		}
		return 0, err
	}
	return likesCount, nil
}
