package handlers

import (
	"errors"
	"net/http"

	itineraryRepo "monastery360/database/repository/itinerary"
	"monastery360/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItineraryHandler serves the archive of confirmed itineraries. Repo is nil
// when no database is configured.
type ItineraryHandler struct {
	Repo itineraryRepo.ItineraryRepository
}

func (h *ItineraryHandler) available(c *gin.Context) bool {
	if h.Repo == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "itinerary archive is not configured", "")
		return false
	}
	return true
}

// GetItinerary handles GET /api/itineraries/:id.
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	if !h.available(c) {
		return
	}
	id := c.Param("id")
	it, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, itineraryRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "itinerary not found", id)
			return
		}
		getLogger(c).Error("Failed to load itinerary", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load itinerary", "")
		return
	}
	c.JSON(http.StatusOK, it)
}

// ListSessionItineraries handles GET /api/planner/sessions/:sessionID/itineraries.
// The session ID is the only key; archived plans are never looked up by
// visitor contact details.
func (h *ItineraryHandler) ListSessionItineraries(c *gin.Context) {
	if !h.available(c) {
		return
	}
	sessionID := c.Param("sessionID")
	list, err := h.Repo.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Failed to list itineraries", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list itineraries", "")
		return
	}
	c.JSON(http.StatusOK, list)
}
