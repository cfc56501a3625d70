package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/authentication"
	"github.com/opportunity-hub/api/internal/scholarship"
	"github.com/opportunity-hub/api/internal/user"
)

// CreateFeedbackRequest represents the payload for reviewing a program.
type CreateFeedbackRequest struct {
	ScholarshipID  uuid.UUID `json:"scholarship_id" binding:"required"`
	Rating         int       `json:"rating" binding:"required,min=1,max=5"`
	Review         string    `json:"review"`
	TipsOnApplying string    `json:"tips_on_applying"`
}

// FeedbackHandler handles HTTP requests for review resources.
type FeedbackHandler struct {
	service FeedbackService
	logger  *zap.Logger
}

func NewFeedbackHandler(public, protected *gin.RouterGroup, service FeedbackService, logger *zap.Logger) *FeedbackHandler {
	h := &FeedbackHandler{service: service, logger: logger}

	public.GET("/programs/:id/reviews", h.ListByScholarship)

	protected.POST("/reviews", authentication.RequireRole(logger, user.Student), h.Create)
	protected.DELETE("/reviews/:id", authentication.RequireRole(logger, user.Partner), h.Delete)
	protected.POST("/reviews/:id/like", authentication.RequireRole(logger, user.Student), h.Like)
	return h
}

func bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
// @Summary      Create Review
// @Description  Review a scholarship program (student only)
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateFeedbackRequest  true  "Review payload"
// @Success      201      {object}  Feedback
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	account, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid review payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review payload"})
		return
	}
	input := &CreateInput{
		ScholarshipID:  req.ScholarshipID,
		Rating:         req.Rating,
		Review:         req.Review,
		TipsOnApplying: req.TipsOnApplying,
	}
	feedback, err := h.service.Create(c.Request.Context(), account.ID, input)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, feedback)
	case errors.Is(err, user.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
	case errors.Is(err, scholarship.ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	default:
		h.logger.Error("service.Create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create review"})
	}
}

// ListByScholarship godoc
// @Summary      List Reviews for a Program
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {array}   Feedback
// @Failure      500  {object}  map[string]string
// @Router       /programs/{id}/reviews [get]
func (h *FeedbackHandler) ListByScholarship(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	feedbacks, err := h.service.ListByScholarship(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("service.ListByScholarship failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, feedbacks)
}

// Delete godoc
// @Summary      Delete Review
// @Description  Remove a review and all its likes (partner only)
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /reviews/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "feedback deleted successfully"})
	case errors.Is(err, ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
	default:
		h.logger.Error("service.Delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete review"})
	}
}

// Like godoc
// @Summary      Like Review
// @Description  Like a review once per student
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Security     BearerAuth
// @Router       /reviews/{id}/like [post]
func (h *FeedbackHandler) Like(c *gin.Context) {
	account, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := bindID(c)
	if !ok {
		return
	}
	likesCount, err := h.service.Like(c.Request.Context(), account.ID, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "like added successfully", "likes_count": likesCount})
	case errors.Is(err, ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
	case errors.Is(err, user.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
	case errors.Is(err, ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"error": "you have already liked this feedback"})
	default:
		h.logger.Error("service.Like failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add like"})
	}
}
