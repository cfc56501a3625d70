package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextUserKey is the key under which the authenticated User is stored in Gin context.
const ContextUserKey = "user"

// FromContext returns the authenticated user placed in the context by
// the auth middleware.
func FromContext(c *gin.Context) (*User, bool) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := raw.(*User)
	return u, ok
}

// RegisterRequest represents the payload for registering a new account.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	FullName        string `json:"full_name" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	UserType        Role   `json:"user_type" binding:"required,oneof=student partner"`

	// student fields
	University string `json:"university"`
	Username   string `json:"username"`

	// partner fields
	PhoneNumber string `json:"phone_number"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	Country     string `json:"country"`
}

// UserHandler handles HTTP requests for user resources.
type UserHandler struct {
	service UserService
	logger  *zap.Logger
}

// NewUserHandler registers user endpoints. The protected group must
// carry the auth middleware.
func NewUserHandler(public, protected *gin.RouterGroup, service UserService, logger *zap.Logger) *UserHandler {
	h := &UserHandler{service: service, logger: logger}
	public.POST("/auth/register", h.Register)
	protected.GET("/users/me", h.ReadCurrentUser)
	return h
}

// Register godoc
// @Summary      Register
// @Description  Create a new student or partner account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RegisterRequest  true  "Registration payload"
// @Success      201      {object}  User
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}
	reg := &Registration{
		Email:           req.Email,
		FullName:        req.FullName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.UserType,
		University:      req.University,
		Username:        req.Username,
		PhoneNumber:     req.PhoneNumber,
		Website:         req.Website,
		Address:         req.Address,
		Country:         req.Country,
	}
	account, err := h.service.Register(c.Request.Context(), reg)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, account)
	case errors.Is(err, ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, ErrInvalidEmailFormat),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPasswordShouldBeNCharacters),
		errors.Is(err, ErrPasswordNotAlphanumeric),
		errors.Is(err, ErrMissingStudentFields),
		errors.Is(err, ErrMissingPartnerFields),
		errors.Is(err, ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("service.Register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
	}
}

// ReadCurrentUser godoc
// @Summary      Get current user
// @Description  Fetch the record for the authenticated user
// @Tags         users
// @Produce      json
// @Success      200 {object} User
// @Failure      401 {object} map[string]string
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) ReadCurrentUser(c *gin.Context) {
	account, ok := FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, account)
}
