package handlers

import (
	"net/http"

	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExecuteQuery is the declarative fan-out endpoint: the caller (typically
// the NLP-intent layer) names the sources it needs and gets one keyed
// object back.
func ExecuteQuery(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.QueryInstructions
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := Queries.ExecuteQueries(c.Request.Context(), userID, req)
	if err != nil {
		logger.Get().Error("error executing queries",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
