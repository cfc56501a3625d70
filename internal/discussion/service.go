package discussion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/scholarship"
)

// ChannelResult reports whether a channel was freshly provisioned or
// already existed.
type ChannelResult struct {
	Status      string `json:"status"`
	ChannelLink string `json:"channel_link"`
}

type DiscussionService interface {
	// GetOrCreateChannel provisions a chat channel for a scholarship,
	// or returns the existing one.
	GetOrCreateChannel(ctx context.Context, userID, scholarshipID uuid.UUID) (*ChannelResult, error)
	ReadByScholarship(ctx context.Context, scholarshipID uuid.UUID) (*ChannelResult, error)
}

type discussionService struct {
	repo         DiscussionRepository
	scholarships scholarship.ScholarshipRepository
	channels     ChannelCreator
	logger       *zap.Logger
}

func NewDiscussionService(
	repo DiscussionRepository,
	scholarships scholarship.ScholarshipRepository,
	channels ChannelCreator,
	logger *zap.Logger,
) DiscussionService {
	return &discussionService{
		repo:         repo,
		scholarships: scholarships,
		channels:     channels,
		logger:       logger,
	}
}

func (s *discussionService) GetOrCreateChannel(ctx context.Context, userID, scholarshipID uuid.UUID) (*ChannelResult, error) {
	program, err := s.scholarships.ReadByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ReadByScholarship(ctx, scholarshipID)
	if err == nil {
		return &ChannelResult{
			Status:      "channel already exists",
			ChannelLink: s.channels.ChannelLink(existing.ChannelID),
		}, nil
	}
	if !errors.Is(err, ErrDiscussionNotFound) {
		return nil, err
	}

	topic := fmt.Sprintf("Discussion channel for %s", program.Title)
	channelID, err := s.channels.CreateChannel(ctx, program.Title, topic)
	if err != nil {
		s.logger.Error("channel provisioning failed",
			zap.String("scholarship_id", scholarshipID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	discussion := &Discussion{
		UserID:        userID,
		ScholarshipID: scholarshipID,
		ChannelID:     channelID,
	}
	if err := s.repo.Create(ctx, discussion); err != nil {
		s.logger.Error("failed to persist discussion", zap.Error(err))
		return nil, err
	}

	return &ChannelResult{
		Status:      "channel created",
		ChannelLink: s.channels.ChannelLink(channelID),
	}, nil
}

func (s *discussionService) ReadByScholarship(ctx context.Context, scholarshipID uuid.UUID) (*ChannelResult, error) {
	if _, err := s.scholarships.ReadByID(ctx, scholarshipID); err != nil {
		return nil, err
	}
	discussion, err := s.repo.ReadByScholarship(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	return &ChannelResult{
		Status:      "discussion found",
		ChannelLink: s.channels.ChannelLink(discussion.ChannelID),
	}, nil
}
