// Package api exposes the simulator over HTTP for interactive callers. A
// scenario is posted as JSON and cleared in-process; nothing is persisted.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/gridsim/meritsim/config"
	"github.com/gridsim/meritsim/core/logger"
	"github.com/gridsim/meritsim/core/model"
	"github.com/gridsim/meritsim/core/simulation"
)

// Handler serves simulation requests.
type Handler struct {
	Engine *simulation.Engine
	Log    logger.Logger
	// OnResult, when set, observes every completed run with its wall time.
	OnResult func(res *model.Result, dur time.Duration)
}

// NewHandler creates a Handler around the given engine.
func NewHandler(engine *simulation.Engine, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Handler{Engine: engine, Log: log}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Simulate handles POST /api/v1/simulate.
func (h *Handler) Simulate(c *gin.Context) {
	var sc model.Scenario
	if err := c.ShouldBindJSON(&sc); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	start := time.Now()
	res, err := h.Engine.Run(c.Request.Context(), sc)
	if err != nil {
		var ae simulation.AlignmentError
		var le simulation.LookupError
		if errors.As(err, &ae) || errors.As(err, &le) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		h.Log.Errorf("simulate: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if h.OnResult != nil {
		h.OnResult(res, time.Since(start))
	}
	c.JSON(http.StatusOK, res)
}

// NewRouter builds the HTTP handler with CORS applied.
func NewRouter(h *Handler, cfg config.APIConfig) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := r.Group("/api/v1")
	v1.POST("/simulate", h.Simulate)

	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}
