package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sales-insights-go/internal/auth"
	"sales-insights-go/internal/cache"
	"sales-insights-go/internal/config"
	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/store"
	"sales-insights-go/internal/types"
)

// CallStore is the persistence surface the handlers need.
type CallStore interface {
	CreateCall(ctx context.Context, call *types.Call) error
	GetCall(ctx context.Context, callID string) (*types.Call, error)
	ListCalls(ctx context.Context, filter types.CallFilter) ([]types.Call, int, error)
	ListEmbeddings(ctx context.Context) ([]store.CallEmbedding, error)
	AgentLeaderboard(ctx context.Context) ([]types.AgentAnalytics, error)
}

type Server struct {
	cfg   config.Settings
	log   *logger.Logger
	store CallStore
	cache cache.Cache
	proc  *insights.Processor
	auth  *auth.Service
}

func NewServer(cfg config.Settings, log *logger.Logger, st CallStore, ca cache.Cache, proc *insights.Processor, authSvc *auth.Service) *Server {
	return &Server{cfg: cfg, log: log, store: st, cache: ca, proc: proc, auth: authSvc}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/register", s.handleRegister)
		authGroup.GET("/me", auth.Middleware(s.auth, s.cfg.MasterAPIToken), s.handleMe)
	}

	v1 := r.Group("/api/v1", auth.Middleware(s.auth, s.cfg.MasterAPIToken))
	{
		v1.GET("/calls", s.handleListCalls)
		v1.POST("/calls", s.handleCreateCall)
		v1.GET("/calls/:call_id", s.handleGetCall)
		v1.GET("/calls/:call_id/recommendations", s.handleRecommendations)
		v1.GET("/analytics/agents", s.handleAgentAnalytics)
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := s.log.WithRequest(c.Request)
		c.Next()
		entry.WithField("status", c.Writer.Status()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request handled")
	}
}

func fail(c *gin.Context, status int, detail string) {
	c.JSON(status, types.ErrorResponse{Detail: detail})
}
