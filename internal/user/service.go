package user

import (
	"context"
	"errors"
	"net/mail"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingPasswordFailed = errors.New("hashing password failed")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidRole           = errors.New("user type must be student or partner")
	ErrPasswordMismatch      = errors.New("the two passwords did not match")
	ErrMissingStudentFields  = errors.New("university and username must be provided for a student")
	ErrMissingPartnerFields  = errors.New("phone number, website, address and country must be provided for a partner")
)

// Registration is the full payload needed to create an account with
// its role-specific profile.
type Registration struct {
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
	Role            Role

	// student fields
	University string
	Username   string

	// partner fields
	PhoneNumber string
	Website     string
	Address     string
	Country     string
}

type UserService interface {
	Register(ctx context.Context, reg *Registration) (*User, error)
	ReadUserByEmail(ctx context.Context, email string) (*User, error)
	ReadUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	ReadStudentByUserID(ctx context.Context, userID uuid.UUID) (*StudentProfile, error)
	ReadPartnerByUserID(ctx context.Context, userID uuid.UUID) (*PartnerProfile, error)
	SetPassword(ctx context.Context, id uuid.UUID, password string) error
	MarkInterest(ctx context.Context, userID uuid.UUID, scholarshipID string) error
}

type userService struct {
	repo   UserRepository
	logger *zap.Logger
}

func NewUserService(repo UserRepository, logger *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

func (s *userService) Register(ctx context.Context, reg *Registration) (*User, error) {
	if err := s.validateRegistration(reg); err != nil {
		s.logger.Warn("registration validation failed", zap.String("email", reg.Email), zap.Error(err))
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, ErrHashingPasswordFailed
	}

	account := NewUser(reg.Email, reg.FullName, string(hashed), reg.Role)

	switch reg.Role {
	case Student:
		profile := &StudentProfile{University: reg.University, Username: reg.Username}
		err = s.repo.CreateStudent(ctx, account, profile)
		account.StudentProfile = profile
	case Partner:
		profile := &PartnerProfile{
			PhoneNumber: reg.PhoneNumber,
			Website:     reg.Website,
			Address:     reg.Address,
			Country:     reg.Country,
		}
		err = s.repo.CreatePartner(ctx, account, profile)
		account.PartnerProfile = profile
	}
	if err != nil {
		s.logger.Error("failed to register user", zap.String("email", reg.Email), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (s *userService) validateRegistration(reg *Registration) error {
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return ErrInvalidEmailFormat
	}
	if err := CheckPassword(reg.Password); err != nil {
		return err
	}
	if reg.Password != reg.ConfirmPassword {
		return ErrPasswordMismatch
	}
	switch reg.Role {
	case Student:
		if reg.University == "" || reg.Username == "" {
			return ErrMissingStudentFields
		}
	case Partner:
		if reg.PhoneNumber == "" || reg.Website == "" || reg.Address == "" || reg.Country == "" {
			return ErrMissingPartnerFields
		}
	default:
		return ErrInvalidRole
	}
	return nil
}

func (s *userService) ReadUserByEmail(ctx context.Context, email string) (*User, error) {
	account, err := s.repo.ReadByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (s *userService) ReadUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	account, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user by id", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (s *userService) ReadStudentByUserID(ctx context.Context, userID uuid.UUID) (*StudentProfile, error) {
	return s.repo.ReadStudentByUserID(ctx, userID)
}

func (s *userService) ReadPartnerByUserID(ctx context.Context, userID uuid.UUID) (*PartnerProfile, error) {
	return s.repo.ReadPartnerByUserID(ctx, userID)
}

func (s *userService) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	if err := CheckPassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return ErrHashingPasswordFailed
	}

	account, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		return err
	}

	account.Password = string(hashed)
	if err := s.repo.Update(ctx, account); err != nil {
		s.logger.Error("failed to update password", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) MarkInterest(ctx context.Context, userID uuid.UUID, scholarshipID string) error {
	profile, err := s.repo.ReadStudentByUserID(ctx, userID)
	if err != nil {
		return err
	}
	profile.Interested = scholarshipID
	if err := s.repo.UpdateStudent(ctx, profile); err != nil {
		s.logger.Error("failed to mark interest", zap.String("user_id", userID.String()), zap.Error(err))
		return err
	}
	return nil
}
