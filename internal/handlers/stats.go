package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathforge/pathforge-backend/internal/requestdata"
	"github.com/pathforge/pathforge-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	stats, err := sh.statsService.GetUserStats(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, stats)
}
