package feedback_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/opportunity-hub/api/internal/feedback"
	"github.com/opportunity-hub/api/internal/scholarship"
	"github.com/opportunity-hub/api/internal/user"
)

type feedbackFixture struct {
	db      *gorm.DB
	service feedback.FeedbackService
	student *user.User
	program *scholarship.Scholarship
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &user.StudentProfile{}, &user.PartnerProfile{},
		&scholarship.Scholarship{}, &feedback.Feedback{}, &feedback.Like{},
	))

	logger := zap.NewNop()
	userService := user.NewUserService(user.NewUserRepository(db), logger)
	service := feedback.NewFeedbackService(
		feedback.NewFeedbackRepository(db),
		scholarship.NewScholarshipRepository(db),
		userService,
		logger,
	)

	password := gofakeit.Password(true, true, true, false, false, 12)
	student, err := userService.Register(context.Background(), &user.Registration{
		Email:           gofakeit.Email(),
		FullName:        gofakeit.Name(),
		Password:        password,
		ConfirmPassword: password,
		Role:            user.Student,
		University:      gofakeit.Company(),
		Username:        gofakeit.Username(),
	})
	require.NoError(t, err)

	program := &scholarship.Scholarship{
		Title:     gofakeit.Sentence(3),
		Status:    scholarship.StatusOpen,
		PartnerID: uuid.New(),
	}
	require.NoError(t, db.Create(program).Error)

	return &feedbackFixture{db: db, service: service, student: student, program: program}
}

func reviewInput(scholarshipID uuid.UUID) *feedback.CreateInput {
	return &feedback.CreateInput{
		ScholarshipID:  scholarshipID,
		Rating:         4,
		Review:         gofakeit.Sentence(8),
		TipsOnApplying: gofakeit.Sentence(5),
	}
}

func TestCreateFeedback(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.student.ID, reviewInput(f.program.ID))
	require.NoError(t, err)

	assert.Equal(t, f.program.ID, created.ScholarshipID)
	assert.Equal(t, f.student.StudentProfile.ID, created.StudentID)
	assert.Equal(t, 4, created.Rating)
	assert.Zero(t, created.LikesCount)

	listed, err := f.service.ListByScholarship(ctx, f.program.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreateFeedbackUnknownScholarship(t *testing.T) {
	f := newFeedbackFixture(t)

	_, err := f.service.Create(context.Background(), f.student.ID, reviewInput(uuid.New()))
	assert.ErrorIs(t, err, scholarship.ErrScholarshipNotFound)
}

func TestCreateFeedbackRequiresStudentProfile(t *testing.T) {
	f := newFeedbackFixture(t)

	_, err := f.service.Create(context.Background(), uuid.New(), reviewInput(f.program.ID))
	assert.ErrorIs(t, err, user.ErrStudentNotFound)
}

func TestLikeFeedback(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.student.ID, reviewInput(f.program.ID))
	require.NoError(t, err)

	count, err := f.service.Like(ctx, f.student.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// the same student cannot like the same review twice
	_, err = f.service.Like(ctx, f.student.ID, created.ID)
	assert.ErrorIs(t, err, feedback.ErrAlreadyLiked)

	listed, err := f.service.ListByScholarship(ctx, f.program.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].LikesCount)
}

func TestLikeUnknownFeedback(t *testing.T) {
	f := newFeedbackFixture(t)

	_, err := f.service.Like(context.Background(), f.student.ID, uuid.New())
	assert.ErrorIs(t, err, feedback.ErrFeedbackNotFound)
}

func TestDeleteFeedbackRemovesLikes(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.student.ID, reviewInput(f.program.ID))
	require.NoError(t, err)

	_, err = f.service.Like(ctx, f.student.ID, created.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID))

	var likeCount int64
	require.NoError(t, f.db.Model(&feedback.Like{}).Count(&likeCount).Error)
	assert.Zero(t, likeCount)

	err = f.service.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, feedback.ErrFeedbackNotFound)
}
