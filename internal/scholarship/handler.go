package scholarship

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/authentication"
	"github.com/opportunity-hub/api/internal/user"
)

// CreateScholarshipRequest represents the payload for creating or
// updating a program.
type CreateScholarshipRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	Location        string  `json:"location" binding:"required"`
	ApplicationLink string  `json:"application_link" binding:"required"`
	FieldOfStudy    string  `json:"field_of_study" binding:"required"`
	FundingType     string  `json:"funding_type" binding:"required"`
	FundingAmount   float64 `json:"funding_amount"`
	Duration        int     `json:"duration"`
	Status          string  `json:"status"`
}

// ScholarshipHandler handles HTTP requests for program resources.
type ScholarshipHandler struct {
	service ScholarshipService
	logger  *zap.Logger
}

// NewScholarshipHandler registers program endpoints. Reads are public;
// mutations require a role.
func NewScholarshipHandler(public, protected *gin.RouterGroup, service ScholarshipService, logger *zap.Logger) *ScholarshipHandler {
	h := &ScholarshipHandler{service: service, logger: logger}

	public.GET("/programs", h.List)
	public.GET("/programs/filters", h.ListFiltered)
	public.GET("/programs/:id", h.ReadByID)

	partnerOnly := authentication.RequireRole(logger, user.Partner)
	protected.POST("/programs", partnerOnly, h.Create)
	protected.PUT("/programs/:id", partnerOnly, h.Update)
	protected.DELETE("/programs/:id", partnerOnly, h.Delete)
	protected.POST("/programs/:id/interest", authentication.RequireRole(logger, user.Student), h.MarkInterest)
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
// @Summary      Create Program
// @Description  Publish a new scholarship program (partner only)
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateScholarshipRequest  true  "Program payload"
// @Success      201      {object}  Scholarship
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /programs [post]
func (h *ScholarshipHandler) Create(c *gin.Context) {
	account, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid program payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program payload"})
		return
	}
	scholarship, err := h.service.Create(c.Request.Context(), account.ID, toInput(&req))
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, scholarship)
	case errors.Is(err, ErrPartnerProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "partner not found"})
	default:
		h.logger.Error("service.Create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create program"})
	}
}

// List godoc
// @Summary      List Programs
// @Tags         programs
// @Produce      json
// @Success      200  {array}   Scholarship
// @Failure      500  {object}  map[string]string
// @Router       /programs [get]
func (h *ScholarshipHandler) List(c *gin.Context) {
	scholarships, err := h.service.List(c.Request.Context(), nil)
	if err != nil {
		h.logger.Error("service.List failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch programs"})
		return
	}
	c.JSON(http.StatusOK, scholarships)
}

// ListFiltered godoc
// @Summary      List Programs by filters
// @Tags         programs
// @Produce      json
// @Param        location        query  string  false  "Location"
// @Param        field_of_study  query  string  false  "Field of study"
// @Param        funding_type    query  string  false  "Funding type"
// @Success      200  {array}   Scholarship
// @Failure      500  {object}  map[string]string
// @Router       /programs/filters [get]
func (h *ScholarshipHandler) ListFiltered(c *gin.Context) {
	filter := &Filter{
		Location:     c.Query("location"),
		FieldOfStudy: c.Query("field_of_study"),
		FundingType:  c.Query("funding_type"),
	}
	scholarships, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("service.List failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch programs"})
		return
	}
	c.JSON(http.StatusOK, scholarships)
}

// ReadByID godoc
// @Summary      Get Program by ID
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {object}  Scholarship
// @Failure      404  {object}  map[string]string
// @Router       /programs/{id} [get]
func (h *ScholarshipHandler) ReadByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	scholarship, err := h.service.ReadByID(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, scholarship)
	case errors.Is(err, ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	default:
		h.logger.Error("service.ReadByID failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch program"})
	}
}

// Update godoc
// @Summary      Update Program
// @Description  Update a scholarship program (partner only)
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Program ID"
// @Param        payload  body      CreateScholarshipRequest  true  "Program payload"
// @Success      200      {object}  Scholarship
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /programs/{id} [put]
func (h *ScholarshipHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program payload"})
		return
	}
	scholarship, err := h.service.Update(c.Request.Context(), id, toInput(&req))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, scholarship)
	case errors.Is(err, ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	default:
		h.logger.Error("service.Update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update program"})
	}
}

// Delete godoc
// @Summary      Delete Program
// @Description  Delete a scholarship program with its feedback and likes (partner only)
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /programs/{id} [delete]
func (h *ScholarshipHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "scholarship deleted successfully"})
	case errors.Is(err, ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	default:
		h.logger.Error("service.Delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete program"})
	}
}

// MarkInterest godoc
// @Summary      Mark interest in a Program
// @Description  Store the scholarship on the student profile (student only)
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /programs/{id}/interest [post]
func (h *ScholarshipHandler) MarkInterest(c *gin.Context) {
	account, ok := user.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := bindID(c)
	if !ok {
		return
	}
	err := h.service.MarkInterest(c.Request.Context(), account.ID, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "interest successfully marked"})
	case errors.Is(err, ErrScholarshipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
	case errors.Is(err, user.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
	default:
		h.logger.Error("service.MarkInterest failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark interest"})
	}
}

func toInput(req *CreateScholarshipRequest) *CreateInput {
	return &CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		ApplicationLink: req.ApplicationLink,
		FieldOfStudy:    req.FieldOfStudy,
		FundingType:     req.FundingType,
		FundingAmount:   req.FundingAmount,
		Duration:        req.Duration,
		Status:          req.Status,
	}
}
