package handlers

import (
	"net/http"

	"monastery360/models"
	"monastery360/services/planner"
	"monastery360/utils"

	"github.com/gin-gonic/gin"
)

// PlannerHandler exposes the visit-planner wizard over HTTP. Every endpoint
// answers with the session view after the change.
type PlannerHandler struct {
	Service planner.PlannerService
}

type toggleMonasteryRequest struct {
	MonasteryID string `json:"monasteryId" binding:"required"`
}

type selectOfferRequest struct {
	OfferID string `json:"offerId" binding:"required"`
}

type selectPackageRequest struct {
	PackageID string `json:"packageId" binding:"required"`
}

// stateWithError carries the saved state alongside a recoverable error, so
// the client can redraw the form with the message.
type stateWithError struct {
	utils.ErrorResponse
	Session *models.SessionView `json:"session,omitempty"`
}

func respondState(c *gin.Context, status int, state *models.WizardState) {
	view := models.ToSessionView(*state)
	c.JSON(status, view)
}

func respond(c *gin.Context, state *models.WizardState, err error) {
	if err != nil {
		if state != nil {
			respondErrorWithState(c, state, err)
			return
		}
		writePlannerError(c, err)
		return
	}
	respondState(c, http.StatusOK, state)
}

// respondErrorWithState is used for invalid queries, failed searches and
// failed submissions, where the state was still saved.
func respondErrorWithState(c *gin.Context, state *models.WizardState, err error) {
	status, resp, ok := plannerErrorResponse(err)
	if !ok {
		writePlannerError(c, err)
		return
	}
	view := models.ToSessionView(*state)
	c.JSON(status, stateWithError{ErrorResponse: resp, Session: &view})
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}

// StartSession handles POST /api/planner/sessions.
func (h *PlannerHandler) StartSession(c *gin.Context) {
	state, err := h.Service.StartSession(c.Request.Context())
	if err != nil {
		writePlannerError(c, err)
		return
	}
	respondState(c, http.StatusCreated, state)
}

// GetSession handles GET /api/planner/sessions/:sessionID.
func (h *PlannerHandler) GetSession(c *gin.Context) {
	state, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	respond(c, state, err)
}

// EndSession handles DELETE /api/planner/sessions/:sessionID.
func (h *PlannerHandler) EndSession(c *gin.Context) {
	if err := h.Service.EndSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		writePlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlannerHandler) ToggleMonastery(c *gin.Context) {
	var req toggleMonasteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.Service.ToggleMonastery(c.Request.Context(), c.Param("sessionID"), req.MonasteryID)
	respond(c, state, err)
}

func (h *PlannerHandler) NextStep(c *gin.Context) {
	state, err := h.Service.NextStep(c.Request.Context(), c.Param("sessionID"))
	respond(c, state, err)
}

func (h *PlannerHandler) PreviousStep(c *gin.Context) {
	state, err := h.Service.PreviousStep(c.Request.Context(), c.Param("sessionID"))
	respond(c, state, err)
}

// SearchFlights handles POST .../flights/search. The body is the whole flight
// form; blank fields are reported as invalidQuery rather than bind errors.
func (h *PlannerHandler) SearchFlights(c *gin.Context) {
	var q models.FlightQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.Service.SearchFlights(c.Request.Context(), c.Param("sessionID"), q)
	respond(c, state, err)
}

func (h *PlannerHandler) SearchHotels(c *gin.Context) {
	var q models.HotelQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.Service.SearchHotels(c.Request.Context(), c.Param("sessionID"), q)
	respond(c, state, err)
}

func (h *PlannerHandler) SelectFlight(c *gin.Context) {
	var req selectOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.Service.SelectFlight(c.Request.Context(), c.Param("sessionID"), req.OfferID)
	respond(c, state, err)
}

func (h *PlannerHandler) SelectHotel(c *gin.Context) {
	var req selectOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.Service.SelectHotel(c.Request.Context(), c.Param("sessionID"), req.OfferID)
	respond(c, state, err)
}

func (h *PlannerHandler) SelectPackage(c *gin.Context) {
	var req selectPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.Service.SelectPackage(c.Request.Context(), c.Param("sessionID"), req.PackageID)
	respond(c, state, err)
}

func (h *PlannerHandler) UpdateVisitor(c *gin.Context) {
	var v models.VisitorInfo
	if err := c.ShouldBindJSON(&v); err != nil {
		badRequest(c, err)
		return
	}
	state, err := h.Service.UpdateVisitor(c.Request.Context(), c.Param("sessionID"), v)
	respond(c, state, err)
}

// Submit handles POST .../submit. It blocks for the delivery call.
func (h *PlannerHandler) Submit(c *gin.Context) {
	state, err := h.Service.Submit(c.Request.Context(), c.Param("sessionID"))
	respond(c, state, err)
}

// Reset handles POST .../reset ("create another plan").
func (h *PlannerHandler) Reset(c *gin.Context) {
	state, err := h.Service.Reset(c.Request.Context(), c.Param("sessionID"))
	respond(c, state, err)
}
