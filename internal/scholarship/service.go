package scholarship

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/user"
)

var ErrPartnerProfileNotFound = errors.New("partner profile not found for current user")

// CreateInput is the full set of fields a partner supplies when
// publishing a program.
type CreateInput struct {
	Title           string
	Description     string
	Location        string
	ApplicationLink string
	FieldOfStudy    string
	FundingType     string
	FundingAmount   float64
	Duration        int
	Status          string
}

type ScholarshipService interface {
	Create(ctx context.Context, partnerUserID uuid.UUID, input *CreateInput) (*Scholarship, error)
	List(ctx context.Context, filter *Filter) ([]Scholarship, error)
	ReadByID(ctx context.Context, id uuid.UUID) (*Scholarship, error)
	Update(ctx context.Context, id uuid.UUID, input *CreateInput) (*Scholarship, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkInterest(ctx context.Context, studentUserID, scholarshipID uuid.UUID) error
}

type scholarshipService struct {
	repo        ScholarshipRepository
	userService user.UserService
	logger      *zap.Logger
}

func NewScholarshipService(repo ScholarshipRepository, userService user.UserService, logger *zap.Logger) ScholarshipService {
	return &scholarshipService{
		repo:        repo,
		userService: userService,
		logger:      logger,
	}
}

func (s *scholarshipService) Create(ctx context.Context, partnerUserID uuid.UUID, input *CreateInput) (*Scholarship, error) {
	partner, err := s.userService.ReadPartnerByUserID(ctx, partnerUserID)
	if err != nil {
		if errors.Is(err, user.ErrPartnerNotFound) {
			return nil, ErrPartnerProfileNotFound
		}
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = StatusOpen
	}
	scholarship := &Scholarship{
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		ApplicationLink: input.ApplicationLink,
		FieldOfStudy:    input.FieldOfStudy,
		FundingType:     input.FundingType,
		FundingAmount:   input.FundingAmount,
		Duration:        input.Duration,
		Status:          status,
		PartnerID:       partner.ID,
	}
	if err := s.repo.Create(ctx, scholarship); err != nil {
		s.logger.Error("failed to create scholarship", zap.Error(err))
		return nil, err
	}
	return scholarship, nil
}

func (s *scholarshipService) List(ctx context.Context, filter *Filter) ([]Scholarship, error) {
	return s.repo.List(ctx, filter)
}

func (s *scholarshipService) ReadByID(ctx context.Context, id uuid.UUID) (*Scholarship, error) {
	return s.repo.ReadByID(ctx, id)
}

func (s *scholarshipService) Update(ctx context.Context, id uuid.UUID, input *CreateInput) (*Scholarship, error) {
	scholarship, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	scholarship.Title = input.Title
	scholarship.Description = input.Description
	scholarship.Location = input.Location
	scholarship.ApplicationLink = input.ApplicationLink
	scholarship.FieldOfStudy = input.FieldOfStudy
	scholarship.FundingType = input.FundingType
	scholarship.FundingAmount = input.FundingAmount
	scholarship.Duration = input.Duration
	if input.Status != "" {
		scholarship.Status = input.Status
	}

	if err := s.repo.Update(ctx, scholarship); err != nil {
		s.logger.Error("failed to update scholarship", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return scholarship, nil
}

func (s *scholarshipService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrScholarshipNotFound) {
			s.logger.Error("failed to delete scholarship", zap.String("id", id.String()), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *scholarshipService) MarkInterest(ctx context.Context, studentUserID, scholarshipID uuid.UUID) error {
	if _, err := s.repo.ReadByID(ctx, scholarshipID); err != nil {
		return err
	}
	return s.userService.MarkInterest(ctx, studentUserID, scholarshipID.String())
}
