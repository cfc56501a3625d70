package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &StudentProfile{}, &PartnerProfile{}))
	return db
}

func newTestService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(NewUserRepository(db), zap.NewNop()), db
}

func studentRegistration() *Registration {
	password := gofakeit.Password(true, true, true, false, false, 12)
	return &Registration{
		Email:           gofakeit.Email(),
		FullName:        gofakeit.Name(),
		Password:        password,
		ConfirmPassword: password,
		Role:            Student,
		University:      gofakeit.Company(),
		Username:        gofakeit.Username(),
	}
}

func partnerRegistration() *Registration {
	password := gofakeit.Password(true, true, true, false, false, 12)
	return &Registration{
		Email:           gofakeit.Email(),
		FullName:        gofakeit.Name(),
		Password:        password,
		ConfirmPassword: password,
		Role:            Partner,
		PhoneNumber:     gofakeit.Phone(),
		Website:         gofakeit.URL(),
		Address:         gofakeit.Address().Address,
		Country:         gofakeit.Country(),
	}
}

func TestRegisterStudent(t *testing.T) {
	service, db := newTestService(t)
	reg := studentRegistration()

	account, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	assert.Equal(t, reg.Email, account.Email)
	assert.Equal(t, Student, account.Role)
	assert.False(t, account.IsActive)
	require.NotNil(t, account.StudentProfile)
	assert.Equal(t, reg.University, account.StudentProfile.University)

	// the password is stored hashed, never in the clear
	assert.NotEqual(t, reg.Password, account.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(reg.Password)))

	var userCount, profileCount int64
	require.NoError(t, db.Model(&User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&StudentProfile{}).Count(&profileCount).Error)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, profileCount)
}

func TestRegisterPartner(t *testing.T) {
	service, _ := newTestService(t)
	reg := partnerRegistration()

	account, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	assert.Equal(t, Partner, account.Role)
	require.NotNil(t, account.PartnerProfile)
	assert.Equal(t, reg.Country, account.PartnerProfile.Country)

	profile, err := service.ReadPartnerByUserID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, profile.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	reg := studentRegistration()

	_, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	second := studentRegistration()
	second.Email = reg.Email
	_, err = service.Register(context.Background(), second)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(reg *Registration)
		wantErr error
	}{
		{
			name:    "bad email",
			mutate:  func(reg *Registration) { reg.Email = "not-an-email" },
			wantErr: ErrInvalidEmailFormat,
		},
		{
			name: "password mismatch",
			mutate: func(reg *Registration) {
				reg.ConfirmPassword = reg.Password + "x"
			},
			wantErr: ErrPasswordMismatch,
		},
		{
			name: "short password",
			mutate: func(reg *Registration) {
				reg.Password = "ab1"
				reg.ConfirmPassword = "ab1"
			},
			wantErr: ErrPasswordShouldBeNCharacters,
		},
		{
			name: "digits only password",
			mutate: func(reg *Registration) {
				reg.Password = "123456789"
				reg.ConfirmPassword = "123456789"
			},
			wantErr: ErrPasswordNotAlphanumeric,
		},
		{
			name:    "unknown role",
			mutate:  func(reg *Registration) { reg.Role = Role("admin") },
			wantErr: ErrInvalidRole,
		},
		{
			name:    "student without university",
			mutate:  func(reg *Registration) { reg.University = "" },
			wantErr: ErrMissingStudentFields,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := studentRegistration()
			tc.mutate(reg)
			_, err := service.Register(ctx, reg)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterPartnerMissingFields(t *testing.T) {
	service, _ := newTestService(t)

	reg := partnerRegistration()
	reg.Website = ""
	_, err := service.Register(context.Background(), reg)
	assert.ErrorIs(t, err, ErrMissingPartnerFields)
}

func TestReadUserByEmail(t *testing.T) {
	service, _ := newTestService(t)
	reg := studentRegistration()

	created, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	found, err := service.ReadUserByEmail(context.Background(), reg.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.ReadUserByEmail(context.Background(), gofakeit.Email())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetPassword(t *testing.T) {
	service, _ := newTestService(t)
	reg := studentRegistration()

	account, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	require.NoError(t, service.SetPassword(context.Background(), account.ID, "NewPassw0rd"))

	updated, err := service.ReadUserByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("NewPassw0rd")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(reg.Password)))
}

func TestSetPasswordRejectsWeakPassword(t *testing.T) {
	service, _ := newTestService(t)
	reg := studentRegistration()

	account, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	err = service.SetPassword(context.Background(), account.ID, "short")
	assert.ErrorIs(t, err, ErrPasswordShouldBeNCharacters)
}

func TestMarkInterest(t *testing.T) {
	service, _ := newTestService(t)
	reg := studentRegistration()

	account, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	require.NoError(t, service.MarkInterest(context.Background(), account.ID, "some-scholarship-id"))

	profile, err := service.ReadStudentByUserID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "some-scholarship-id", profile.Interested)
}

func TestMarkInterestRequiresStudent(t *testing.T) {
	service, _ := newTestService(t)
	reg := partnerRegistration()

	account, err := service.Register(context.Background(), reg)
	require.NoError(t, err)

	err = service.MarkInterest(context.Background(), account.ID, "some-scholarship-id")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
