package authentication

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/opportunity-hub/api/internal/user"
	"github.com/opportunity-hub/api/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLoginFailed        = errors.New("login failed")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrWrongTokenKind     = errors.New("wrong token kind")
	ErrWrongOldPassword   = errors.New("old password is not correct")
)

// TokenPair is one access/refresh pair bound to the same subject with
// distinct jtis.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthenticationService interface {
	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Validate decodes a token and checks blacklist state and kind.
	// Kind is enforced on every path: a refresh token never passes as
	// an access token and vice versa.
	Validate(ctx context.Context, tokenString string, kind utils.TokenKind) (*utils.Claims, error)
	// Refresh rotates a refresh token. The old token is revoked as
	// part of rotation, so a stolen refresh token cannot be replayed
	// once its holder has exchanged it.
	Refresh(ctx context.Context, refreshJWT string) (*TokenPair, error)
	// Logout blacklists the access token's jti.
	Logout(ctx context.Context, accessJWT string) error
	ResetPassword(ctx context.Context, tokenString, password string) error
	UpdatePassword(ctx context.Context, tokenString, oldPassword, password string) error
}

type authenticationService struct {
	userService user.UserService
	blacklist   BlacklistRepository
	logger      *zap.Logger
	secret      string
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthenticationService(
	userService user.UserService,
	blacklist BlacklistRepository,
	logger *zap.Logger,
	cfg *utils.TokenConfig,
) AuthenticationService {
	return &authenticationService{
		userService: userService,
		blacklist:   blacklist,
		logger:      logger,
		secret:      cfg.Secret,
		accessTTL:   cfg.AccessTokenTTL,
		refreshTTL:  cfg.RefreshTokenTTL,
	}
}

func (a *authenticationService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	account, err := a.userService.ReadUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrLoginFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return a.issuePair(account)
}

func (a *authenticationService) issuePair(account *user.User) (*TokenPair, error) {
	subject := account.ID.String()

	accessJWT, _, err := utils.IssueToken(subject, account.Role, utils.AccessToken, a.secret, a.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshJWT, _, err := utils.IssueToken(subject, account.Role, utils.RefreshToken, a.secret, a.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessJWT, RefreshToken: refreshJWT}, nil
}

func (a *authenticationService) Validate(ctx context.Context, tokenString string, kind utils.TokenKind) (*utils.Claims, error) {
	claims, err := utils.ParseToken(tokenString, a.secret)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	revoked, err := a.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		a.logger.Error("blacklist lookup failed", zap.Error(err))
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}

func (a *authenticationService) Refresh(ctx context.Context, refreshJWT string) (*TokenPair, error) {
	claims, err := a.Validate(ctx, refreshJWT, utils.RefreshToken)
	if err != nil {
		return nil, err
	}

	account, err := a.subjectUser(ctx, claims)
	if err != nil {
		return nil, err
	}

	pair, err := a.issuePair(account)
	if err != nil {
		return nil, err
	}

	// consume the old refresh token; rotation must not leave it usable
	if err := a.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		a.logger.Error("failed to revoke rotated refresh token", zap.String("jti", claims.ID), zap.Error(err))
		return nil, err
	}

	return pair, nil
}

func (a *authenticationService) Logout(ctx context.Context, accessJWT string) error {
	claims, err := a.Validate(ctx, accessJWT, utils.AccessToken)
	if err != nil {
		return err
	}
	if err := a.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		a.logger.Error("failed to blacklist token", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

func (a *authenticationService) ResetPassword(ctx context.Context, tokenString, password string) error {
	claims, err := a.Validate(ctx, tokenString, utils.AccessToken)
	if err != nil {
		return err
	}
	account, err := a.subjectUser(ctx, claims)
	if err != nil {
		return err
	}
	return a.userService.SetPassword(ctx, account.ID, password)
}

func (a *authenticationService) UpdatePassword(ctx context.Context, tokenString, oldPassword, password string) error {
	claims, err := a.Validate(ctx, tokenString, utils.AccessToken)
	if err != nil {
		return err
	}
	account, err := a.subjectUser(ctx, claims)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(oldPassword)) != nil {
		return ErrWrongOldPassword
	}
	return a.userService.SetPassword(ctx, account.ID, password)
}

func (a *authenticationService) subjectUser(ctx context.Context, claims *utils.Claims) (*user.User, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		a.logger.Error("invalid subject claim", zap.String("subject", claims.Subject), zap.Error(err))
		return nil, ErrInvalidToken
	}
	account, err := a.userService.ReadUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return account, nil
}
