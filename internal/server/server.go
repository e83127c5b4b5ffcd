// Package server exposes the HTTP boundary: user registration, watchlist
// management, the manual trigger and the read-side signal views.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bearwatch/internal/engine"
	"bearwatch/internal/ledger"
	"bearwatch/internal/logger"
	"bearwatch/internal/models"
	"bearwatch/internal/report"
	"bearwatch/internal/sentiment"
	"bearwatch/internal/store"
)

type Server struct {
	engine     *engine.Engine
	store      store.Store
	fetcher    engine.Fetcher
	classifier *sentiment.Classifier
	generator  report.Generator
	ledger     *ledger.Ledger
	router     *gin.Engine
	started    time.Time
	log        zerolog.Logger
}

func New(eng *engine.Engine, st store.Store, fetcher engine.Fetcher, classifier *sentiment.Classifier, gen report.Generator, led *ledger.Ledger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:     eng,
		store:      st,
		fetcher:    fetcher,
		classifier: classifier,
		generator:  gen,
		ledger:     led,
		started:    time.Now(),
		log:        logger.Get().With().Str("component", "server").Logger(),
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/stats", s.stats)
		api.POST("/connect", s.connect)
		api.POST("/watchlist", s.appendWatchlist)
		api.POST("/trigger-check", s.triggerCheck)
		api.GET("/signals", s.signals)
		api.GET("/bearish", s.bearishReport)
		api.GET("/bullish", s.bullishReport)
	}

	s.router = r
	return s
}

// Run serves until the context is cancelled, then shuts down with a short
// drain timeout.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Str("port", port).Msg("http server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) stats(c *gin.Context) {
	users, err := s.store.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":  len(users),
		"ledger": s.ledger.Stats(),
	})
}

type connectRequest struct {
	Username string `json:"username" binding:"required"`
	ChatID   string `json:"chat_id" binding:"required"`
}

func (s *Server) connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and chat_id are required"})
		return
	}

	user, err := s.store.UpsertUser(c.Request.Context(), req.Username, req.ChatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.log.Info().Str("user", user.Username).Msg("user connected")
	c.JSON(http.StatusOK, gin.H{
		"message": "connected",
		"user":    user,
	})
}

type watchlistRequest struct {
	Username string `json:"username" binding:"required"`
	Keyword  string `json:"keyword" binding:"required"`
}

func (s *Server) appendWatchlist(c *gin.Context) {
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and keyword are required"})
		return
	}

	user, added, err := s.store.AppendWatchlist(c.Request.Context(), req.Username, req.Keyword)
	if errors.Is(err, store.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found, connect first"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := "keyword added"
	if !added {
		message = "keyword already in watchlist"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"watchlist": user.Watchlist,
	})
}

func (s *Server) triggerCheck(c *gin.Context) {
	result, err := s.engine.TriggerOnce(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"alerts_sent":    result.AlertsSent,
		"matches_found":  result.MatchesFound,
		"market_summary": result.MarketSummary,
		"details":        result.Details,
	})
}

func (s *Server) signals(c *gin.Context) {
	signals := s.fetcher.FetchAll(c.Request.Context())
	classified := s.classifier.ClassifyAll(signals)

	c.JSON(http.StatusOK, gin.H{
		"count":   len(classified),
		"signals": classified,
	})
}

func (s *Server) bearishReport(c *gin.Context) {
	s.leanReport(c, "Bearish", models.LabelNegative)
}

func (s *Server) bullishReport(c *gin.Context) {
	s.leanReport(c, "Bullish", models.LabelPositive)
}

// leanReport classifies the current batch, keeps the signals matching the
// requested lean and renders the narrative report. A failing generator falls
// back to the placeholder so the endpoint stays useful without it.
func (s *Server) leanReport(c *gin.Context, lean string, label models.Label) {
	signals := s.fetcher.FetchAll(c.Request.Context())
	classified := s.classifier.ClassifyAll(signals)

	var matching []models.ClassifiedSignal
	for _, sig := range classified {
		if sig.Sentiment == label {
			matching = append(matching, sig)
		}
	}

	rep, err := s.generator.MarketReport(c.Request.Context(), lean, matching)
	if err != nil {
		s.log.Warn().Err(err).Str("lean", lean).Msg("report generation failed, using placeholder")
		rep, _ = report.NewPlaceholder().MarketReport(c.Request.Context(), lean, matching)
	}

	c.JSON(http.StatusOK, gin.H{
		"lean":   lean,
		"count":  len(matching),
		"report": rep,
	})
}
