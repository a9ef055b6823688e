package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quant-core/internal/backtest"
	"quant-core/internal/engine"
	"quant-core/internal/events"
	"quant-core/internal/market"
	"quant-core/internal/monitor"
	"quant-core/internal/pattern"
	"quant-core/pkg/db"
)

// Server wires HTTP endpoints around the decision engine and event bus.
type Server struct {
	Router    *gin.Engine
	Bus       *events.Bus
	Engine    *engine.Engine
	Simulator *backtest.Simulator
	Queries   *db.Queries
	Metrics   *monitor.Metrics
	JWTSecret string
	Meta      SystemMeta

	// Optional pattern-matching surface; set before Start when a CSV
	// corpus is configured.
	Matcher *pattern.Matcher
	Source  market.Source

	adminUser string
	adminHash string
	log       *zap.Logger
}

// SystemMeta describes runtime status exposed to the UI.
type SystemMeta struct {
	Symbol        string
	Interval      string
	UseMockSource bool
	Version       string
}

func NewServer(bus *events.Bus, eng *engine.Engine, sim *backtest.Simulator, queries *db.Queries, metrics *monitor.Metrics, meta SystemMeta, jwtSecret, adminUser, adminPassword string, log *zap.Logger) (*Server, error) {
	adminHash, err := hashPassword(adminPassword)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Middleware stack (order matters!)
	r.Use(gin.Recovery())                      // Panic recovery (first)
	r.Use(RequestIDMiddleware())               // Request ID tracking
	r.Use(RequestLogger(log))                  // Request logging (after ID is set)
	r.Use(RateLimitMiddleware())               // Rate limiting
	r.Use(TimeoutMiddleware(30 * time.Second)) // Request timeout (30s)
	r.Use(CORSMiddleware())                    // CORS (last before routes)

	s := &Server{
		Router:    r,
		Bus:       bus,
		Engine:    eng,
		Simulator: sim,
		Queries:   queries,
		Metrics:   metrics,
		JWTSecret: jwtSecret,
		Meta:      meta,
		adminUser: adminUser,
		adminHash: adminHash,
		log:       log,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.Router.GET("/health", s.health)
	s.Router.GET("/ws", s.websocket)

	api := s.Router.Group("/api")
	{
		api.GET("/system/status", s.getSystemStatus)
		api.GET("/metrics", s.getMetrics)

		// Auth endpoints (no auth required)
		auth := api.Group("/auth")
		{
			auth.POST("/login", s.login)
		}

		// Protected API
		protected := api.Group("")
		protected.Use(AuthMiddleware(s.JWTSecret))
		{
			protected.GET("/snapshot", s.getSnapshot)
			protected.GET("/trades", s.getTrades)
			protected.GET("/pattern", s.getPatternVote)

			protected.POST("/backtest", s.runBacktest)
			protected.GET("/backtest/runs", s.listBacktestRuns)
			protected.GET("/backtest/runs/:id", s.getBacktestRun)
		}
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Start(addr string) error {
	return s.Router.Run(addr)
}
