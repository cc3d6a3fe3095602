package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sales-insights-go/internal/types"
)

const leaderboardTTL = 10 * time.Minute

func (s *Server) handleAgentAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	var cached types.AgentAnalyticsResponse
	if hit, err := s.cache.GetJSON(ctx, "leaderboard", &cached); err == nil && hit {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	agents, err := s.store.AgentLeaderboard(ctx)
	if err != nil {
		s.log.WithError(err).Error("agent leaderboard failed")
		fail(c, http.StatusInternalServerError, "error retrieving agent analytics")
		return
	}

	resp := types.AgentAnalyticsResponse{Agents: agents}
	_ = s.cache.SetJSON(ctx, "leaderboard", resp, leaderboardTTL)
	c.Header("Cache-Control", "private, max-age=120")
	c.JSON(http.StatusOK, resp)
}
