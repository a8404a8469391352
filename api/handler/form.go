package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/talentclip/controller"
	"github.com/use-agent/talentclip/models"
)

// GetForm returns a handler for GET /api/v1/form.
func GetForm(ctl *controller.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondForm(c, ctl, nil)
	}
}

// RefreshForm returns a handler for POST /api/v1/form/refresh.
//
// Environment problems (no tab, wrong site, nothing extracted) are not HTTP
// errors: the response is 200 and the status line says what happened.
func RefreshForm(ctl *controller.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := ctl.Refresh(c.Request.Context())
		respondForm(c, ctl, err)
	}
}

// EditField returns a handler for PUT /api/v1/form/fields/:field.
func EditField(ctl *controller.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FieldUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewAppError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}

		if err := ctl.Edit(c.Request.Context(), models.Field(c.Param("field")), req.Value); err != nil {
			respondError(c, err)
			return
		}
		respondForm(c, ctl, nil)
	}
}

// SubmitForm returns a handler for POST /api/v1/form/submit.
//
// Validation and delivery failures answer 200 with the form, whose status
// line carries the outcome. 409 means a submission is already in flight.
func SubmitForm(ctl *controller.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := ctl.Submit(c.Request.Context())
		if models.HasCode(err, models.ErrCodeConflict) {
			state := ctl.State()
			c.JSON(http.StatusConflict, models.FormResponse{
				Success: false,
				Form:    &state,
				Error:   models.AsAppError(err).ToDetail(),
			})
			return
		}
		respondForm(c, ctl, err)
	}
}

// respondForm writes the current form with status 200. A non-nil outcome
// marks the response unsuccessful and carries its code.
func respondForm(c *gin.Context, ctl *controller.Controller, outcome error) {
	state := ctl.State()
	resp := models.FormResponse{Success: outcome == nil, Form: &state}
	if outcome != nil {
		resp.Error = models.AsAppError(outcome).ToDetail()
	}
	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, err error) {
	appErr := models.AsAppError(err)
	c.JSON(mapErrorToStatus(appErr), models.FormResponse{
		Success: false,
		Error:   appErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.AppError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnknownField:
		return http.StatusNotFound // 404
	case models.ErrCodeConflict:
		return http.StatusConflict // 409
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
