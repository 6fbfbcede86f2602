// Package handler provides the HTTP request handlers.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/interfaces/http/dto"
)

const modelNotLoaded = "モデル未読み込み"

// HealthHandler serves the banner and the health probes.
type HealthHandler struct {
	svc *plot.Service
}

func NewHealthHandler(svc *plot.Service) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Root serves the welcome banner.
// @Summary API banner
// @Description Welcome banner with model readiness
// @Tags System
// @Produce json
// @Success 200 {object} dto.BannerResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	ctx := c.Request.Context()
	ready := h.svc.EngineReady(ctx)
	path := modelNotLoaded
	if ready {
		path = h.svc.EngineInfo(ctx).Path
	}
	c.JSON(http.StatusOK, dto.BannerResponse{
		Message:    "PlotWeaver API へようこそ！",
		Status:     "running",
		ModelReady: ready,
		ModelPath:  path,
	})
}

// Health reports service health with model and genre info.
// @Summary Health check
// @Description Service health with model state and available genres
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	info := h.svc.EngineInfo(ctx)
	genres, _ := h.svc.Genres()

	keys := make([]string, len(genres))
	for i, g := range genres {
		keys[i] = string(g)
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:          "healthy",
		ModelReady:      info.Ready,
		AvailableGenres: keys,
		ModelInfo: dto.ModelInfo{
			Path:   info.Path,
			Loaded: info.Ready,
		},
	})
}

type readinessCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks"`
}

// Ready reports whether the service can take generation traffic.
// @Summary Readiness check
// @Description Whether the inference engine can serve requests
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	checks := map[string]*readinessCheck{
		"engine": {Status: "ok"},
	}
	resp := readinessResponse{Status: "ok", Checks: checks}

	if !h.svc.EngineReady(ctx) {
		checks["engine"].Status = "error"
		checks["engine"].Error = "inference engine not ready"
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live reports process liveness.
// @Summary Liveness check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Genres lists the supported genres.
// @Summary List genres
// @Description The seven supported genres with display names
// @Tags Generation
// @Produce json
// @Success 200 {object} dto.Response[dto.GenresResponse]
// @Router /genres [get]
func (h *HealthHandler) Genres(c *gin.Context) {
	genres, names := h.svc.Genres()

	keys := make([]string, len(genres))
	for i, g := range genres {
		keys[i] = string(g)
	}

	dto.Success(c, dto.GenresResponse{
		Genres:       keys,
		DisplayNames: names,
	})
}
