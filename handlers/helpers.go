package handlers

import (
	"errors"
	"net/http"

	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/models"
	"github.com/Tibluka/voicetaskapi/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services wired by main before the router starts.
var (
	Spendings *services.SpendingService
	Projects  *services.ProjectService
	Bills     *services.FixedBillService
	Summary   *services.SummaryService
	Queries   *services.QueryOrchestrator
	Profiles  services.ProfileStore
)

// currentUserID extracts the authenticated user's id from the claims the
// auth middleware stored on the context. A false return has already written
// the 401 response.
func currentUserID(c *gin.Context) (string, bool) {
	user, exists := c.Get("user")
	if !exists {
		logger.Get().Error("user not authenticated")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}

	claims, ok := user.(*models.AppClaims)
	if !ok {
		logger.Get().Error("invalid user claims")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user claims"})
		return "", false
	}

	return claims.Sub, true
}

// respondError maps the error taxonomy to response classes: validation to
// 400, unknown/unowned ids to 404, conflicts to 400, anything else to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Get().Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
