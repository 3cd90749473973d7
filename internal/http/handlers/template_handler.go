package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcus102/AGROVIE-sub002/internal/dto"
	"github.com/marcus102/AGROVIE-sub002/internal/service"
)

// TemplateHandler serves quick start templates for the wizard.
type TemplateHandler struct {
	templates *service.TemplateService
}

// NewTemplateHandler creates a new handler.
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// Save handles POST /api/templates.
func (h *TemplateHandler) Save(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and draft are required"})
		return
	}

	template, err := h.templates.Save(c.Request.Context(), userID, req.Name, &req.Draft)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	templates, err := h.templates.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// Load handles GET /api/templates/:id/draft. The returned draft has its
// prices reset so the wizard prices it against current rules.
func (h *TemplateHandler) Load(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	draft, err := h.templates.Load(c.Request.Context(), templateID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// Update handles PUT /api/templates/:id. It replaces both the name and the
// stored draft of a template the user owns.
func (h *TemplateHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	var req dto.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and draft are required"})
		return
	}

	template, err := h.templates.Update(c.Request.Context(), templateID, userID, req.Name, &req.Draft)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// Delete handles DELETE /api/templates/:id.
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	if err := h.templates.Delete(c.Request.Context(), templateID, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}
