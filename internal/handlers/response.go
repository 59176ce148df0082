package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathforge/pathforge-backend/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondAppError maps a service error onto the wire. Known *apperr.Error
// values carry their own status and code; anything else is an opaque 500.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		RespondError(c, appErr.Status, appErr.Code, appErr.Err)
		return
	}
	var malformed *apperr.MalformedRoadmap
	if errors.As(err, &malformed) {
		// Raw model output never reaches the client.
		RespondError(c, http.StatusInternalServerError, "generation_failed", errors.New("failed to generate roadmap"))
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
