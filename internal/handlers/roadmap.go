package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathforge/pathforge-backend/internal/apperr"
	"github.com/pathforge/pathforge-backend/internal/generation"
	"github.com/pathforge/pathforge-backend/internal/requestdata"
	"github.com/pathforge/pathforge-backend/internal/services"
)

type RoadmapHandler struct {
	generationService services.RoadmapGenerationService
	roadmapService    services.RoadmapService
}

func NewRoadmapHandler(generationService services.RoadmapGenerationService, roadmapService services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{
		generationService: generationService,
		roadmapService:    roadmapService,
	}
}

// Generate runs the full generation pipeline for the authenticated user.
// Pipeline failures past validation all collapse to the same generic message;
// the details live in the server logs.
func (rh *RoadmapHandler) Generate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input generation.FormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	roadmap, doc, err := rh.generationService.Generate(c.Request.Context(), rd.UserID, input)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Status == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": appErr.Err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate roadmap. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"roadmap":       roadmap,
		"generatedData": doc,
	})
}

func (rh *RoadmapHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	roadmaps, err := rh.roadmapService.GetUserRoadmaps(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	// Bare array, not an envelope.
	RespondOK(c, roadmaps)
}

func (rh *RoadmapHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	roadmapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
		return
	}
	detail, err := rh.roadmapService.GetRoadmapDetail(c.Request.Context(), rd.UserID, roadmapID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (rh *RoadmapHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	roadmapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
		return
	}
	if err := rh.roadmapService.DeleteRoadmap(c.Request.Context(), rd.UserID, roadmapID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
