package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shahad2004/Medical-Backend/security"
	"github.com/Shahad2004/Medical-Backend/services"
)

// sendServiceError translates a service error into the HTTP response for its
// kind. Controllers never branch on database errors; the service has already
// classified the failure.
func sendServiceError(c *gin.Context, err error) {
	message := "An unexpected error occurred"
	var se *services.Error
	if errors.As(err, &se) {
		message = se.Message
	}

	switch services.KindOf(err) {
	case services.KindValidation:
		security.SendError(c, http.StatusBadRequest, security.CodeValidationError, "Validation failed", message)
	case services.KindUnauthorized:
		security.SendError(c, http.StatusUnauthorized, security.CodeInvalidCredentials, "Authentication failed", message)
	case services.KindForbidden:
		security.SendError(c, http.StatusForbidden, security.CodeInsufficientPermissions, "Access denied", message)
	case services.KindNotFound:
		security.SendError(c, http.StatusNotFound, security.CodeResourceNotFound, "Resource not found", message)
	case services.KindConflict:
		// Duplicate signups answer 400, matching the long-standing client
		// contract.
		security.SendError(c, http.StatusBadRequest, security.CodeConflict, "Already exists", message)
	default:
		security.SendError(c, http.StatusInternalServerError, security.CodeDatabaseError, "Internal error", message)
	}
}
