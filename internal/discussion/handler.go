package discussion

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/scholarship"
	"github.com/opportunity-hub/api/internal/user"
)

// CreateChannelRequest names the scholarship to provision a channel
// for.
type CreateChannelRequest struct {
	ScholarshipID uuid.UUID `json:"scholarship_id" binding:"required"`
}

// DiscussionHandler handles HTTP requests for discussion resources.
type DiscussionHandler struct {
	service DiscussionService
	logger  *zap.Logger
}

// NewDiscussionHandler registers discussion endpoints; both require
// authentication.
func NewDiscussionHandler(protected *gin.RouterGroup, service DiscussionService, logger *zap.Logger) *DiscussionHandler {
	h := &DiscussionHandler{service: service, logger: logger}
	protected.POST("/discussions", h.CreateChannel)
	protected.GET("/discussions/:id", h.ReadByScholarship)
	return h
}

// CreateChannel godoc
// @Summary      Create discussion channel
// @Description  Provision a Discord channel for a scholarship or return the existing one
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateChannelRequest  true  "Scholarship reference"
// @Success      200      {object}  ChannelResult
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Security     BearerAuth
// @Router       /discussions [post]
func (h *DiscussionHandler) CreateChannel(c *gin.Context) {
	account, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scholarship_id required"})
		return
	}
	result, err := h.service.GetOrCreateChannel(c.Request.Context(), account.ID, req.ScholarshipID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, scholarship.ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	case errors.Is(err, ErrChannelProvisioning):
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not provision discussion channel"})
	default:
		h.logger.Error("service.GetOrCreateChannel failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create discussion"})
	}
}

// ReadByScholarship godoc
// @Summary      Get discussion for a Program
// @Tags         discussions
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {object}  ChannelResult
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /discussions/{id} [get]
func (h *DiscussionHandler) ReadByScholarship(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return
	}
	result, err := h.service.ReadByScholarship(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, scholarship.ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	case errors.Is(err, ErrDiscussionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no discussion found for the specified scholarship"})
	default:
		h.logger.Error("service.ReadByScholarship failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch discussion"})
	}
}
