package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"quant-core/internal/backtest"
	"quant-core/pkg/db"
)

type listTradesQuery struct {
	Limit int `form:"limit"`
}

type listRunsQuery struct {
	Limit int `form:"limit"`
}

type backtestRequest struct {
	Symbol       string          `json:"symbol" binding:"required,min=1"`
	Interval     string          `json:"interval"`
	StartBalance decimal.Decimal `json:"start_balance"`
	Leverage     decimal.Decimal `json:"leverage"`
}

func (q *listTradesQuery) normalize() {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Limit > 500 {
		q.Limit = 500
	}
}

func (q *listRunsQuery) normalize() {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{
		"code":  code,
		"error": msg,
	})
}

// getSnapshot returns the engine's latest decision state.
func (s *Server) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.Snapshot())
}

// getTrades lists closed trades, newest first.
func (s *Server) getTrades(c *gin.Context) {
	var q listTradesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_QUERY", "invalid query parameters")
		return
	}
	q.normalize()

	trades, err := s.Queries.ListTrades(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if trades == nil {
		trades = []db.Trade{}
	}
	c.JSON(http.StatusOK, trades)
}

// runBacktest executes a simulation synchronously and returns its summary.
// The request context bounds the run, so a disconnecting client stops it.
func (s *Server) runBacktest(c *gin.Context) {
	var req backtestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := s.Simulator.Run(c.Request.Context(), backtest.Params{
		Symbol:       req.Symbol,
		Interval:     req.Interval,
		StartBalance: req.StartBalance,
		Leverage:     req.Leverage,
	})
	if err != nil {
		if ctxErr := c.Request.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			respondError(c, http.StatusRequestTimeout, "RUN_CANCELED", "backtest canceled")
			return
		}
		respondError(c, http.StatusInternalServerError, "BACKTEST_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// listBacktestRuns returns persisted run summaries, newest first.
func (s *Server) listBacktestRuns(c *gin.Context) {
	var q listRunsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_QUERY", "invalid query parameters")
		return
	}
	q.normalize()

	runs, err := s.Queries.ListBacktestRuns(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if runs == nil {
		runs = []db.BacktestRun{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getBacktestRun(c *gin.Context) {
	run, err := s.Queries.GetBacktestRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(c, http.StatusNotFound, "RUN_NOT_FOUND", "backtest run not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, run)
}

// getPatternVote classifies the most recent candles against the configured
// k-NN corpus. 503 when no corpus was loaded at startup.
func (s *Server) getPatternVote(c *gin.Context) {
	if s.Matcher == nil || s.Source == nil {
		respondError(c, http.StatusServiceUnavailable, "PATTERN_UNAVAILABLE", "pattern corpus not configured")
		return
	}

	recent, err := s.Source.FetchRecent(c.Request.Context(), s.Meta.Symbol, s.Meta.Interval, 60)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":       s.Meta.Symbol,
		"interval":     s.Meta.Interval,
		"signal":       s.Matcher.Decide(recent).String(),
		"history_size": s.Matcher.HistorySize(),
	})
}

func (s *Server) getSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"symbol":      s.Meta.Symbol,
		"interval":    s.Meta.Interval,
		"mock_source": s.Meta.UseMockSource,
		"version":     s.Meta.Version,
	})
}

func (s *Server) getMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.Metrics.Snapshot())
}
