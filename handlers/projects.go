package handlers

import (
	"net/http"

	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateProjectRequest struct {
	ProjectName string   `json:"projectName"`
	Description string   `json:"description"`
	TargetValue *float64 `json:"targetValue"`
}

type UpdateProjectRequest struct {
	ProjectName *string  `json:"projectName"`
	Description *string  `json:"description"`
	TargetValue *float64 `json:"targetValue"`
	Status      *string  `json:"status"`
}

func ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projects, err := Projects.ListProjects(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		logger.Get().Error("error listing projects",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := Projects.CreateProject(c.Request.Context(), userID, req.ProjectName, req.Description, req.TargetValue)
	if err != nil {
		logger.Get().Error("error creating project",
			zap.String("user_id", userID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	logger.Get().Info("project created",
		zap.String("user_id", userID),
		zap.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

func GetProjectDetails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	details, err := Projects.GetProjectDetails(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := Projects.UpdateProject(c.Request.Context(), userID, c.Param("id"), services.ProjectUpdate{
		ProjectName: req.ProjectName,
		Description: req.Description,
		TargetValue: req.TargetValue,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"project": project,
	})
}

func DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	project, err := Projects.DeleteProject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("project deleted",
		zap.String("user_id", userID),
		zap.String("project_id", project.ProjectID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"note":    "Associated spendings were not deleted and remain in your history",
	})
}
