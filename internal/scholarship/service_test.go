package scholarship_test

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

type scholarshipFixture struct {
	db          *gorm.DB
	service     scholarship.ScholarshipService
	userService user.UserService
	partner     *user.User
	student     *user.User
}

func newScholarshipFixture(t *testing.T) *scholarshipFixture {
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
	service := scholarship.NewScholarshipService(scholarship.NewScholarshipRepository(db), userService, logger)

	partner := registerUser(t, userService, user.Partner)
	student := registerUser(t, userService, user.Student)

	return &scholarshipFixture{
		db:          db,
		service:     service,
		userService: userService,
		partner:     partner,
		student:     student,
	}
}

func registerUser(t *testing.T, service user.UserService, role user.Role) *user.User {
	t.Helper()
	password := gofakeit.Password(true, true, true, false, false, 12)
	reg := &user.Registration{
		Email:           gofakeit.Email(),
		FullName:        gofakeit.Name(),
		Password:        password,
		ConfirmPassword: password,
		Role:            role,
	}
	switch role {
	case user.Student:
		reg.University = gofakeit.Company()
		reg.Username = gofakeit.Username()
	case user.Partner:
		reg.PhoneNumber = gofakeit.Phone()
		reg.Website = gofakeit.URL()
		reg.Address = gofakeit.Address().Address
		reg.Country = gofakeit.Country()
	}
	account, err := service.Register(context.Background(), reg)
	require.NoError(t, err)
	return account
}

func sampleInput() *scholarship.CreateInput {
	return &scholarship.CreateInput{
		Title:           gofakeit.Sentence(3),
		Description:     gofakeit.Paragraph(1, 2, 10, " "),
		Location:        gofakeit.Country(),
		ApplicationLink: gofakeit.URL(),
		FieldOfStudy:    "Computer Science",
		FundingType:     "full",
		FundingAmount:   25000,
		Duration:        24,
	}
}

func TestCreateScholarship(t *testing.T) {
	f := newScholarshipFixture(t)
	input := sampleInput()

	created, err := f.service.Create(context.Background(), f.partner.ID, input)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, input.Title, created.Title)
	assert.Equal(t, scholarship.StatusOpen, created.Status)
	assert.Equal(t, f.partner.PartnerProfile.ID, created.PartnerID)
}

func TestCreateScholarshipRequiresPartnerProfile(t *testing.T) {
	f := newScholarshipFixture(t)

	_, err := f.service.Create(context.Background(), f.student.ID, sampleInput())
	assert.ErrorIs(t, err, scholarship.ErrPartnerProfileNotFound)
}

func TestListScholarshipsWithFilters(t *testing.T) {
	f := newScholarshipFixture(t)
	ctx := context.Background()

	germany := sampleInput()
	germany.Location = "Germany"
	germany.FieldOfStudy = "Physics"
	_, err := f.service.Create(ctx, f.partner.ID, germany)
	require.NoError(t, err)

	france := sampleInput()
	france.Location = "France"
	_, err = f.service.Create(ctx, f.partner.ID, france)
	require.NoError(t, err)

	all, err := f.service.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.service.List(ctx, &scholarship.Filter{Location: "Germany"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Physics", filtered[0].FieldOfStudy)

	none, err := f.service.List(ctx, &scholarship.Filter{Location: "Germany", FieldOfStudy: "Law"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateScholarship(t *testing.T) {
	f := newScholarshipFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.partner.ID, sampleInput())
	require.NoError(t, err)

	input := sampleInput()
	input.Title = "Updated Title"
	input.Status = "closed"
	updated, err := f.service.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "closed", updated.Status)

	reread, err := f.service.ReadByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", reread.Title)
}

func TestUpdateUnknownScholarship(t *testing.T) {
	f := newScholarshipFixture(t)

	_, err := f.service.Update(context.Background(), uuid.New(), sampleInput())
	assert.ErrorIs(t, err, scholarship.ErrScholarshipNotFound)
}

func TestDeleteScholarshipCascades(t *testing.T) {
	f := newScholarshipFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.partner.ID, sampleInput())
	require.NoError(t, err)

	review := &feedback.Feedback{
		ScholarshipID: created.ID,
		StudentID:     f.student.StudentProfile.ID,
		Rating:        5,
		Review:        "great program",
	}
	require.NoError(t, f.db.Create(review).Error)
	require.NoError(t, f.db.Create(&feedback.Like{
		FeedbackID: review.ID,
		StudentID:  f.student.StudentProfile.ID,
	}).Error)

	require.NoError(t, f.service.Delete(ctx, created.ID))

	_, err = f.service.ReadByID(ctx, created.ID)
	assert.ErrorIs(t, err, scholarship.ErrScholarshipNotFound)

	var feedbackCount, likeCount int64
	require.NoError(t, f.db.Model(&feedback.Feedback{}).Count(&feedbackCount).Error)
	require.NoError(t, f.db.Model(&feedback.Like{}).Count(&likeCount).Error)
	assert.Zero(t, feedbackCount)
	assert.Zero(t, likeCount)

	err = f.service.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, scholarship.ErrScholarshipNotFound)
}

func TestMarkInterest(t *testing.T) {
	f := newScholarshipFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.partner.ID, sampleInput())
	require.NoError(t, err)

	require.NoError(t, f.service.MarkInterest(ctx, f.student.ID, created.ID))

	profile, err := f.userService.ReadStudentByUserID(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), profile.Interested)

	err = f.service.MarkInterest(ctx, f.student.ID, uuid.New())
	assert.ErrorIs(t, err, scholarship.ErrScholarshipNotFound)
}
