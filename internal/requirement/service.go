package requirement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequirementInput is one document requirement within a bulk create.
type RequirementInput struct {
	DocumentType string
	Description  string
	Mandatory    bool
}

// UpdateInput carries optional new values; nil means keep as is.
type UpdateInput struct {
	DocumentType *string
	Description  *string
	Mandatory    *bool
}

type RequirementService interface {
	CreateForCountry(ctx context.Context, country string, inputs []RequirementInput) ([]CountryRequirement, error)
	ListByCountry(ctx context.Context, country string) ([]CountryRequirement, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateInput) (*CountryRequirement, error)
	Delete(ctx context.Context, id uuid.UUID) (*CountryRequirement, error)
}

type requirementService struct {
	repo   RequirementRepository
	logger *zap.Logger
}

func NewRequirementService(repo RequirementRepository, logger *zap.Logger) RequirementService {
	return &requirementService{
		repo:   repo,
		logger: logger,
	}
}

func (s *requirementService) CreateForCountry(ctx context.Context, country string, inputs []RequirementInput) ([]CountryRequirement, error) {
	requirements := make([]CountryRequirement, 0, len(inputs))
	for _, in := range inputs {
		requirements = append(requirements, CountryRequirement{
			Country:      country,
			DocumentType: in.DocumentType,
			Description:  in.Description,
			Mandatory:    in.Mandatory,
		})
	}
	if err := s.repo.CreateBatch(ctx, requirements); err != nil {
		s.logger.Error("failed to create requirements", zap.String("country", country), zap.Error(err))
		return nil, err
	}
	return requirements, nil
}

func (s *requirementService) ListByCountry(ctx context.Context, country string) ([]CountryRequirement, error) {
	return s.repo.ListByCountry(ctx, country)
}

func (s *requirementService) Update(ctx context.Context, id uuid.UUID, input *UpdateInput) (*CountryRequirement, error) {
	requirement, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DocumentType != nil {
		requirement.DocumentType = *input.DocumentType
	}
	if input.Description != nil {
		requirement.Description = *input.Description
	}
	if input.Mandatory != nil {
		requirement.Mandatory = *input.Mandatory
	}

	if err := s.repo.Update(ctx, requirement); err != nil {
		s.logger.Error("failed to update requirement", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return requirement, nil
}

func (s *requirementService) Delete(ctx context.Context, id uuid.UUID) (*CountryRequirement, error) {
	requirement, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete requirement", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return requirement, nil
}
