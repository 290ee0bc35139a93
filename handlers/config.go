package handlers

import (
	"net/http"

	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UpdateConfigRequest struct {
	BudgetStrategy    *string            `json:"budgetStrategy"`
	CustomPercentages map[string]float64 `json:"customPercentages"`
	MonthlyIncome     *float64           `json:"monthlyIncome"`
	MonthLimit        *float64           `json:"monthLimit"`
	Goals             []string           `json:"goals"`
}

func GetConfig(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cfg, err := Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error("error fetching profile config",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}
	if cfg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Config not found"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func CreateConfig(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	existing, err := Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Config already exists"})
		return
	}

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := models.NewDefaultProfileConfig(userID)
	if req.BudgetStrategy != nil {
		cfg.BudgetStrategy = *req.BudgetStrategy
	}
	if req.CustomPercentages != nil {
		cfg.CustomPercentages = req.CustomPercentages
	}
	cfg.MonthlyIncome = req.MonthlyIncome
	cfg.MonthLimit = req.MonthLimit
	if req.Goals != nil {
		cfg.Goals = req.Goals
	}

	if err := Profiles.Insert(c.Request.Context(), cfg); err != nil {
		logger.Get().Error("error creating profile config",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cfg)
}

func UpdateConfig(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]any{}
	if req.BudgetStrategy != nil {
		fields["budgetStrategy"] = *req.BudgetStrategy
	}
	if req.CustomPercentages != nil {
		fields["customPercentages"] = req.CustomPercentages
	}
	if req.MonthlyIncome != nil {
		fields["monthlyIncome"] = *req.MonthlyIncome
	}
	if req.MonthLimit != nil {
		fields["monthLimit"] = *req.MonthLimit
	}
	if req.Goals != nil {
		fields["goals"] = req.Goals
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	matched, err := Profiles.SetFields(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Config not found"})
		return
	}

	cfg, err := Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
