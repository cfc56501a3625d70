package tip

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/scholarship"
)

var ErrNotTipOwner = errors.New("only the tip's author can update it")

// CreateInput is what a user supplies when sharing a tip.
type CreateInput struct {
	Title         string
	Content       string
	ScholarshipID uuid.UUID
}

// UpdateInput carries optional new values; nil means keep as is.
type UpdateInput struct {
	Title   *string
	Content *string
}

type TipService interface {
	Create(ctx context.Context, userID uuid.UUID, input *CreateInput) (*Tip, error)
	ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Tip, error)
	Update(ctx context.Context, userID, tipID uuid.UUID, input *UpdateInput) (*Tip, error)
}

type tipService struct {
	repo         TipRepository
	scholarships scholarship.ScholarshipRepository
	logger       *zap.Logger
}

func NewTipService(repo TipRepository, scholarships scholarship.ScholarshipRepository, logger *zap.Logger) TipService {
	return &tipService{
		repo:         repo,
		scholarships: scholarships,
		logger:       logger,
	}
}

func (s *tipService) Create(ctx context.Context, userID uuid.UUID, input *CreateInput) (*Tip, error) {
	if _, err := s.scholarships.ReadByID(ctx, input.ScholarshipID); err != nil {
		return nil, err
	}

	tip := &Tip{
		Title:         input.Title,
		Content:       input.Content,
		ScholarshipID: input.ScholarshipID,
		UserID:        userID,
		DateShared:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, tip); err != nil {
		s.logger.Error("failed to create tip", zap.Error(err))
		return nil, err
	}
	return tip, nil
}

func (s *tipService) ListByScholarship(ctx context.Context, scholarshipID uuid.UUID) ([]Tip, error) {
	return s.repo.ListByScholarship(ctx, scholarshipID)
}

func (s *tipService) Update(ctx context.Context, userID, tipID uuid.UUID, input *UpdateInput) (*Tip, error) {
	tip, err := s.repo.ReadByID(ctx, tipID)
	if err != nil {
		return nil, err
	}
	if tip.UserID != userID {
		return nil, ErrNotTipOwner
	}

	if input.Title != nil {
		tip.Title = *input.Title
	}
	if input.Content != nil {
		tip.Content = *input.Content
	}

	if err := s.repo.Update(ctx, tip); err != nil {
		s.logger.Error("failed to update tip", zap.String("id", tipID.String()), zap.Error(err))
		return nil, err
	}
	return tip, nil
}
