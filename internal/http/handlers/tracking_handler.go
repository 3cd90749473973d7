package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcus102/AGROVIE-sub002/internal/dto"
	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/service"
)

// TrackingHandler serves the mission tracking lifecycle.
type TrackingHandler struct {
	tracking *service.TrackingService
}

// NewTrackingHandler creates a new handler.
func NewTrackingHandler(tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// Start handles POST /api/tracking.
func (h *TrackingHandler) Start(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.StartTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mission_id and total_tasks are required"})
		return
	}

	missionID, err := uuid.Parse(req.MissionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	tracking, err := h.tracking.Start(c.Request.Context(), missionID, userID, req.TotalTasks)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, tracking)
}

// Get handles GET /api/tracking/:id.
func (h *TrackingHandler) Get(c *gin.Context) {
	userID, trackingID, ok := h.identify(c)
	if !ok {
		return
	}

	tracking, err := h.tracking.Get(c.Request.Context(), trackingID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tracking)
}

// Mine handles GET /api/tracking and lists the caller's tracking records.
func (h *TrackingHandler) Mine(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	records, err := h.tracking.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracking": records})
}

// Pause handles POST /api/tracking/:id/pause.
func (h *TrackingHandler) Pause(c *gin.Context) {
	h.transition(c, h.tracking.Pause)
}

// Resume handles POST /api/tracking/:id/resume.
func (h *TrackingHandler) Resume(c *gin.Context) {
	h.transition(c, h.tracking.Resume)
}

// Complete handles POST /api/tracking/:id/complete. Completed is terminal.
func (h *TrackingHandler) Complete(c *gin.Context) {
	h.transition(c, h.tracking.Complete)
}

// CompleteTask handles POST /api/tracking/:id/tasks/complete. Completing a
// task when all tasks are already done is a no-op, not an error.
func (h *TrackingHandler) CompleteTask(c *gin.Context) {
	h.transition(c, h.tracking.CompleteTask)
}

// AddTime handles POST /api/tracking/:id/time.
func (h *TrackingHandler) AddTime(c *gin.Context) {
	userID, trackingID, ok := h.identify(c)
	if !ok {
		return
	}

	var req dto.AddTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Minutes < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "minutes must be a positive integer"})
		return
	}

	tracking, err := h.tracking.AddTime(c.Request.Context(), trackingID, userID, req.Minutes)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tracking)
}

// Earnings handles GET /api/tracking/:id/earnings.
func (h *TrackingHandler) Earnings(c *gin.Context) {
	userID, trackingID, ok := h.identify(c)
	if !ok {
		return
	}

	tracking, err := h.tracking.Get(c.Request.Context(), trackingID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	earnings, err := h.tracking.CurrentEarnings(c.Request.Context(), tracking)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.EarningsResponse{
		TrackingID:      tracking.ID.String(),
		CompletionRate:  tracking.CompletionRate,
		CurrentEarnings: earnings,
	})
}

// transition runs one of the state machine operations and renders the
// updated tracking record.
func (h *TrackingHandler) transition(c *gin.Context, fn func(ctx context.Context, trackingID, userID uuid.UUID) (*models.MissionTracking, error)) {
	userID, trackingID, ok := h.identify(c)
	if !ok {
		return
	}

	tracking, err := fn(c.Request.Context(), trackingID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tracking)
}

// identify resolves the caller and the tracking id path parameter.
func (h *TrackingHandler) identify(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return uuid.Nil, uuid.Nil, false
	}

	trackingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tracking id"})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, trackingID, true
}
