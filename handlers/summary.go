package handlers

import (
	"net/http"

	"github.com/Tibluka/voicetaskapi/dates"
	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetMonthlySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	yearMonth := c.Param("yearMonth")
	summary, err := Summary.GetMonthlySummary(c.Request.Context(), userID, yearMonth)
	if err != nil {
		logger.Get().Error("error compiling monthly summary",
			zap.String("user_id", userID),
			zap.String("month", yearMonth),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func GetCurrentMonthSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := Summary.GetMonthlySummary(c.Request.Context(), userID, dates.CurrentMonth())
	if err != nil {
		logger.Get().Error("error compiling monthly summary",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
