package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcus102/AGROVIE-sub002/internal/dto"
	"github.com/marcus102/AGROVIE-sub002/internal/repository"
	"github.com/marcus102/AGROVIE-sub002/internal/service"
)

// MissionHandler serves mission submission, listing and applications.
type MissionHandler struct {
	missions *service.MissionService
}

// NewMissionHandler creates a new handler.
func NewMissionHandler(missions *service.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

// Submit handles POST /api/missions. The draft is re-validated in full
// before persisting; a draft edited after review does not slip through.
func (h *MissionHandler) Submit(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.SubmitMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft is required"})
		return
	}

	mission, err := h.missions.Submit(c.Request.Context(), userID, &req.Draft)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, mission)
}

// Get handles GET /api/missions/:id.
func (h *MissionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	mission, err := h.missions.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, mission)
}

// List handles GET /api/missions with status, role, specialization, search
// and pagination query parameters.
func (h *MissionHandler) List(c *gin.Context) {
	params := repository.MissionListParams{
		Status:         c.Query("status"),
		ActorRole:      c.Query("actor_role"),
		Specialization: c.Query("specialization"),
		Search:         c.Query("search"),
		Limit:          parseIntQuery(c, "limit", 20),
		Offset:         parseIntQuery(c, "offset", 0),
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	missions, total, err := h.missions.List(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MissionListResponse{
		Missions: missions,
		Total:    total,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
}

// Mine handles GET /api/missions/mine and returns the caller's missions
// regardless of status.
func (h *MissionHandler) Mine(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	missions, err := h.missions.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"missions": missions})
}

// Apply handles POST /api/missions/:id/apply.
func (h *MissionHandler) Apply(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	if err := h.missions.Apply(c.Request.Context(), missionID, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "application recorded"})
}

// UpdateStatus handles PATCH /api/missions/:id/status. Owners may only
// remove their mission; moderation statuses require the admin role.
func (h *MissionHandler) UpdateStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	var req dto.UpdateMissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.missions.UpdateStatus(c.Request.Context(), missionID, userID, currentUserRole(c), req.Status); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
