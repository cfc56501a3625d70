package requirement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/authentication"
	"github.com/opportunity-hub/api/internal/user"
)

// RequirementPayload is one document requirement within a bulk create.
type RequirementPayload struct {
	DocumentType string `json:"document_type" binding:"required"`
	Description  string `json:"description"`
	Mandatory    bool   `json:"mandatory"`
}

// CreateRequirementsRequest represents the bulk payload for a country.
type CreateRequirementsRequest struct {
	Country      string               `json:"country" binding:"required"`
	Requirements []RequirementPayload `json:"requirements" binding:"required,min=1,dive"`
}

// UpdateRequirementRequest carries optional new values.
type UpdateRequirementRequest struct {
	DocumentType *string `json:"document_type"`
	Description  *string `json:"description"`
	Mandatory    *bool   `json:"mandatory"`
}

// RequirementHandler handles HTTP requests for country requirement
// resources.
type RequirementHandler struct {
	service RequirementService
	logger  *zap.Logger
}

func NewRequirementHandler(public, protected *gin.RouterGroup, service RequirementService, logger *zap.Logger) *RequirementHandler {
	h := &RequirementHandler{service: service, logger: logger}

	public.GET("/requirements/:country", h.ListByCountry)

	partnerOnly := authentication.RequireRole(logger, user.Partner)
	protected.POST("/requirements", partnerOnly, h.Create)
	protected.PUT("/requirements/:country", partnerOnly, h.Update)
	protected.DELETE("/requirements/:country", partnerOnly, h.Delete)
	return h
}

// Create godoc
// @Summary      Add Country Requirements
// @Description  Bulk-add required documents for a country (partner only)
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateRequirementsRequest  true  "Requirements payload"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Security     BearerAuth
// @Router       /requirements [post]
func (h *RequirementHandler) Create(c *gin.Context) {
	var req CreateRequirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid requirements payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requirements payload"})
		return
	}
	inputs := make([]RequirementInput, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		inputs = append(inputs, RequirementInput{
			DocumentType: r.DocumentType,
			Description:  r.Description,
			Mandatory:    r.Mandatory,
		})
	}
	requirements, err := h.service.CreateForCountry(c.Request.Context(), req.Country, inputs)
	if err != nil {
		h.logger.Error("service.CreateForCountry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add requirements"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":       "requirements added successfully",
		"country":      req.Country,
		"requirements": requirements,
	})
}

// ListByCountry godoc
// @Summary      Get Requirements by Country
// @Tags         requirements
// @Produce      json
// @Param        country  path      string  true  "Country name (case-insensitive)"
// @Success      200      {array}   CountryRequirement
// @Failure      404      {object}  map[string]string
// @Router       /requirements/{country} [get]
func (h *RequirementHandler) ListByCountry(c *gin.Context) {
	country := c.Param("country")
	requirements, err := h.service.ListByCountry(c.Request.Context(), country)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, requirements)
	case errors.Is(err, ErrNoRequirements):
		c.JSON(http.StatusNotFound, gin.H{"error": "no requirements found for the country: " + country})
	default:
		h.logger.Error("service.ListByCountry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch requirements"})
	}
}

// Update godoc
// @Summary      Update Requirement
// @Description  Update a country requirement by id (partner only)
// @Tags         requirements
// @Accept       json
// @Produce      json
// @Param        country  path      string                    true  "Requirement ID"
// @Param        payload  body      UpdateRequirementRequest  true  "Update payload"
// @Success      200      {object}  CountryRequirement
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /requirements/{country} [put]
func (h *RequirementHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req UpdateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requirement payload"})
		return
	}
	input := &UpdateInput{
		DocumentType: req.DocumentType,
		Description:  req.Description,
		Mandatory:    req.Mandatory,
	}
	requirement, err := h.service.Update(c.Request.Context(), id, input)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, requirement)
	case errors.Is(err, ErrRequirementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "requirement not found"})
	default:
		h.logger.Error("service.Update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update requirement"})
	}
}

// Delete godoc
// @Summary      Delete Requirement
// @Description  Delete a country requirement by id (partner only)
// @Tags         requirements
// @Produce      json
// @Param        country  path      string  true  "Requirement ID"
// @Success      200      {object}  CountryRequirement
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /requirements/{country} [delete]
func (h *RequirementHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	requirement, err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, requirement)
	case errors.Is(err, ErrRequirementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "requirement not found"})
	default:
		h.logger.Error("service.Delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete requirement"})
	}
}

// requirement ids share the :country route segment; both are parsed
// from the same path parameter
func (h *RequirementHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("country"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return uuid.Nil, false
	}
	return id, true
}
