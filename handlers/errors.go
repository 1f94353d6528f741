package handlers

import (
	"errors"
	"net/http"

	"monastery360/services/planner"
	"monastery360/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByCode = map[string]int{
	planner.CodeValidation:           http.StatusUnprocessableEntity,
	planner.CodeInvalidQuery:         http.StatusBadRequest,
	planner.CodeSearchFailure:        http.StatusBadGateway,
	planner.CodeInvalidRecipient:     http.StatusBadRequest,
	planner.CodeSubmissionFailure:    http.StatusBadGateway,
	planner.CodeSubmissionInProgress: http.StatusConflict,
	planner.CodeSessionLocked:        http.StatusConflict,
	planner.CodeSessionNotFound:      http.StatusNotFound,
	planner.CodeSessionEnded:         http.StatusNotFound,
}

// plannerErrorResponse maps a planner error onto a status and body. ok is
// false for errors outside the planner taxonomy.
func plannerErrorResponse(err error) (status int, resp utils.ErrorResponse, ok bool) {
	var pe *planner.PlannerError
	if !errors.As(err, &pe) {
		return http.StatusInternalServerError, utils.ErrorResponse{}, false
	}
	status, known := statusByCode[pe.Code]
	if !known {
		status = http.StatusInternalServerError
	}
	resp = utils.ErrorResponse{
		Code:      pe.Code,
		Message:   pe.Message,
		Field:     pe.Field,
		Retryable: pe.Retryable,
	}
	if pe.Err != nil && status >= http.StatusInternalServerError {
		resp.Details = pe.Err.Error()
	}
	return status, resp, true
}

// writePlannerError writes err as a JSON error. Unknown errors are 500s.
func writePlannerError(c *gin.Context, err error) {
	status, resp, ok := plannerErrorResponse(err)
	if !ok {
		getLogger(c).Error("planner request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred. Please try again later.")
		return
	}
	utils.JSONErrorResponse(c, status, resp)
}
