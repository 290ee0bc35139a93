package handlers

import (
	"net/http"

	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func InsertSpending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.InsertSpendingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := Spendings.InsertSpending(c.Request.Context(), userID, req)
	if err != nil {
		logger.Get().Error("error inserting spending",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	logger.Get().Info("spending created",
		zap.String("user_id", userID),
		zap.Int("records", len(records)))
	c.JSON(http.StatusCreated, gin.H{"spendings": records})
}

func RemoveSpending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	removed, err := Spendings.RemoveSpending(c.Request.Context(), userID, id)
	if err != nil {
		logger.Get().Error("error removing spending",
			zap.String("user_id", userID),
			zap.String("spending_id", id),
			zap.Error(err))
		respondError(c, err)
		return
	}

	logger.Get().Info("spending removed",
		zap.String("user_id", userID),
		zap.String("spending_id", id),
		zap.Int64("removed", removed))
	c.JSON(http.StatusOK, gin.H{"message": "Spending removed successfully", "removed": removed})
}

func ConsultSpending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ConsultQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := Spendings.ConsultSpending(c.Request.Context(), userID, req)
	if err != nil {
		logger.Get().Error("error consulting spendings",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
