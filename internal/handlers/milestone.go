package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathforge/pathforge-backend/internal/requestdata"
	"github.com/pathforge/pathforge-backend/internal/services"
)

type MilestoneHandler struct {
	progressService services.ProgressService
}

func NewMilestoneHandler(progressService services.ProgressService) *MilestoneHandler {
	return &MilestoneHandler{progressService: progressService}
}

func (mh *MilestoneHandler) Toggle(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	milestoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid milestone id"})
		return
	}
	milestone, err := mh.progressService.ToggleMilestone(c.Request.Context(), milestoneID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"milestone": milestone,
	})
}
