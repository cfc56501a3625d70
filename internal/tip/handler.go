package tip

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

// CreateTipRequest represents the payload for sharing a tip.
type CreateTipRequest struct {
	Title         string    `json:"title" binding:"required"`
	Content       string    `json:"content" binding:"required"`
	ScholarshipID uuid.UUID `json:"scholarship_id" binding:"required"`
}

// UpdateTipRequest carries optional new values for an existing tip.
type UpdateTipRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// TipHandler handles HTTP requests for tip resources.
type TipHandler struct {
	service TipService
	logger  *zap.Logger
}

func NewTipHandler(public, protected *gin.RouterGroup, service TipService, logger *zap.Logger) *TipHandler {
	h := &TipHandler{service: service, logger: logger}

	public.GET("/programs/:id/tips", h.ListByScholarship)

	protected.POST("/tips", authentication.RequireRole(logger, user.Student, user.Partner), h.Create)
	protected.PUT("/tips/:id", h.Update)
	return h
}

// Create godoc
// @Summary      Share Tip
// @Description  Share application advice for a program (student or partner)
// @Tags         tips
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateTipRequest  true  "Tip payload"
// @Success      201      {object}  Tip
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /tips [post]
func (h *TipHandler) Create(c *gin.Context) {
	account, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid tip payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tip payload"})
		return
	}
	input := &CreateInput{
		Title:         req.Title,
		Content:       req.Content,
		ScholarshipID: req.ScholarshipID,
	}
	tip, err := h.service.Create(c.Request.Context(), account.ID, input)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, tip)
	case errors.Is(err, scholarship.ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	default:
		h.logger.Error("service.Create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not share tip"})
	}
}

// ListByScholarship godoc
// @Summary      List Tips for a Program
// @Tags         tips
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {array}   Tip
// @Failure      500  {object}  map[string]string
// @Router       /programs/{id}/tips [get]
func (h *TipHandler) ListByScholarship(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return
	}
	tips, err := h.service.ListByScholarship(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("service.ListByScholarship failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch tips"})
		return
	}
	c.JSON(http.StatusOK, tips)
}

// Update godoc
// @Summary      Update Tip
// @Description  Update an existing tip. Only the author can update it.
// @Tags         tips
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Tip ID"
// @Param        payload  body      UpdateTipRequest  true  "Update payload"
// @Success      200      {object}  Tip
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /tips/{id} [put]
func (h *TipHandler) Update(c *gin.Context) {
	account, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return
	}
	var req UpdateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tip payload"})
		return
	}
	tip, err := h.service.Update(c.Request.Context(), account.ID, id, &UpdateInput{Title: req.Title, Content: req.Content})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, tip)
	case errors.Is(err, ErrTipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "tip not found"})
	case errors.Is(err, ErrNotTipOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not authorized to update this tip"})
	default:
		h.logger.Error("service.Update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update tip"})
	}
}
