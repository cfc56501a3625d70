package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrStudentNotFound      = errors.New("student profile not found")
	ErrPartnerNotFound      = errors.New("partner profile not found")
	ErrUserNotCreated       = errors.New("user not created")
	ErrUserNotUpdated       = errors.New("user not updated")
	ErrUnresponsiveDatabase = errors.New("error occurred during writing to users table")
)

type UserRepository interface {
	CreateStudent(ctx context.Context, user *User, profile *StudentProfile) error
	CreatePartner(ctx context.Context, user *User, profile *PartnerProfile) error
	ReadByEmail(ctx context.Context, email string) (*User, error)
	ReadByID(ctx context.Context, id uuid.UUID) (*User, error)
	ReadStudentByUserID(ctx context.Context, userID uuid.UUID) (*StudentProfile, error)
	ReadPartnerByUserID(ctx context.Context, userID uuid.UUID) (*PartnerProfile, error)
	Update(ctx context.Context, user *User) error
	UpdateStudent(ctx context.Context, profile *StudentProfile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateStudent inserts the user and its student profile in one
// transaction so a half-registered account can never exist.
func (r *userRepository) CreateStudent(ctx context.Context, user *User, profile *StudentProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateCreateError(err)
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return ErrUserNotCreated
		}
		return nil
	})
}

func (r *userRepository) CreatePartner(ctx context.Context, user *User, profile *PartnerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateCreateError(err)
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return ErrUserNotCreated
		}
		return nil
	})
}

func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailAlreadyExists
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "email") {
		return ErrEmailAlreadyExists
	}
	return ErrUserNotCreated
}

func (r *userRepository) ReadByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *userRepository) ReadByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *userRepository) ReadStudentByUserID(ctx context.Context, userID uuid.UUID) (*StudentProfile, error) {
	var profile StudentProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &profile, nil
}

func (r *userRepository) ReadPartnerByUserID(ctx context.Context, userID uuid.UUID) (*PartnerProfile, error) {
	var profile PartnerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &profile, nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailAlreadyExists
		}
		return ErrUserNotUpdated
	}
	return nil
}

func (r *userRepository) UpdateStudent(ctx context.Context, profile *StudentProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return ErrUserNotUpdated
	}
	return nil
}
