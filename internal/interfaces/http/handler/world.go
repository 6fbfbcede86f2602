package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/domain/entity"
	"plotweaver/internal/interfaces/http/dto"
	apperrors "plotweaver/pkg/errors"
)

// WorldHandler serves the world building endpoints.
type WorldHandler struct {
	svc *plot.Service
}

func NewWorldHandler(svc *plot.Service) *WorldHandler {
	return &WorldHandler{svc: svc}
}

// ListSettings returns world settings, optionally filtered by type.
// @Summary List world settings
// @Tags World
// @Produce json
// @Param type query string false "setting type filter"
// @Success 200 {object} dto.Response[dto.WorldSettingListResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /world/settings [get]
func (h *WorldHandler) ListSettings(c *gin.Context) {
	ctx := c.Request.Context()

	t := entity.SettingType(c.Query("type"))
	if t != "" && !t.Valid() {
		respondError(c, apperrors.New(apperrors.CodeInvalidParam, "unknown setting type").WithDetail(string(t)))
		return
	}

	settings, err := h.svc.ListWorldSettings(ctx, t)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.WorldSettingListResponse{
		Settings:   settings,
		TotalCount: len(settings),
	})
}

// AddSetting stores a piece of world building.
// @Summary Add a world setting
// @Tags World
// @Accept json
// @Produce json
// @Param body body dto.WorldSettingRequest true "world setting"
// @Success 201 {object} dto.Response[dto.WorldSettingMessageResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /world/settings [post]
func (h *WorldHandler) AddSetting(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.WorldSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ws, err := h.svc.AddWorldSetting(ctx, plot.SettingInput{
		Name:        req.Name,
		Type:        entity.SettingType(req.Type),
		Description: req.Description,
		Details:     req.Details,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.WorldSettingMessageResponse{
		Message: fmt.Sprintf("世界設定「%s」が追加されました", ws.Name),
		Setting: ws,
	})
}

// ListTimeline returns timeline events in chronological order.
// @Summary List timeline events
// @Tags World
// @Produce json
// @Param limit query int false "most recent N events"
// @Success 200 {object} dto.Response[dto.TimelineResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /world/timeline [get]
func (h *WorldHandler) ListTimeline(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(c, apperrors.New(apperrors.CodeInvalidParam, "limit must be a non-negative integer"))
			return
		}
		limit = v
	}

	events, err := h.svc.ListTimelineEvents(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.TimelineResponse{
		Events:     events,
		TotalCount: len(events),
	})
}

// AddTimelineEvent stores a dated event.
// @Summary Add a timeline event
// @Tags World
// @Accept json
// @Produce json
// @Param body body dto.TimelineEventRequest true "timeline event"
// @Success 201 {object} dto.Response[dto.TimelineEventMessageResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /world/timeline [post]
func (h *WorldHandler) AddTimelineEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ev, err := h.svc.AddTimelineEvent(ctx, plot.EventInput{
		Title:             req.Name,
		Description:       req.Description,
		Year:              req.Year,
		Month:             req.Month,
		Day:               req.Day,
		Importance:        req.Importance,
		RelatedCharacters: req.RelatedCharacters,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.TimelineEventMessageResponse{
		Message: fmt.Sprintf("時系列イベント「%s」が追加されました", ev.Title),
		Event:   ev,
	})
}

// ListPlots returns plot threads, optionally filtered by status.
// @Summary List plot threads
// @Tags World
// @Produce json
// @Param status query string false "thread status filter"
// @Success 200 {object} dto.Response[dto.PlotThreadListResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /world/plots [get]
func (h *WorldHandler) ListPlots(c *gin.Context) {
	ctx := c.Request.Context()

	status := entity.PlotStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		respondError(c, apperrors.New(apperrors.CodeInvalidParam, "unknown plot status").WithDetail(string(status)))
		return
	}

	plots, err := h.svc.ListPlotThreads(ctx, status)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.PlotThreadListResponse{
		Plots:      plots,
		TotalCount: len(plots),
	})
}

// AddPlot registers a plot thread.
// @Summary Add a plot thread
// @Tags World
// @Accept json
// @Produce json
// @Param body body dto.PlotThreadRequest true "plot thread"
// @Success 201 {object} dto.Response[dto.PlotThreadMessageResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /world/plots [post]
func (h *WorldHandler) AddPlot(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PlotThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	th, err := h.svc.AddPlotThread(ctx, plot.ThreadInput{
		Title:             req.Name,
		Description:       req.Description,
		SetupEvents:       req.SetupEvents,
		RelatedCharacters: req.RelatedCharacters,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.PlotThreadMessageResponse{
		Message: fmt.Sprintf("伏線「%s」が追加されました", th.Title),
		Plot:    th,
	})
}

// ResolvePlot closes a plot thread with its payoff events.
// @Summary Resolve a plot thread
// @Tags World
// @Accept json
// @Produce json
// @Param id path string true "thread id"
// @Param body body dto.ResolvePlotRequest true "payoff events"
// @Success 200 {object} dto.Response[dto.PlotThreadMessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /world/plots/{id}/resolve [post]
func (h *WorldHandler) ResolvePlot(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req dto.ResolvePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	th, err := h.svc.ResolvePlotThread(ctx, id, req.PayoffEvents)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.PlotThreadMessageResponse{
		Message: fmt.Sprintf("伏線「%s」が回収されました", th.Title),
		Plot:    th,
	})
}

// Consistency reports world consistency warnings.
// @Summary World consistency check
// @Tags World
// @Produce json
// @Success 200 {object} dto.Response[dto.ConsistencyResponse]
// @Router /world/consistency [get]
func (h *WorldHandler) Consistency(c *gin.Context) {
	ctx := c.Request.Context()

	warnings, err := h.svc.CheckWorldConsistency(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ConsistencyResponse{
		Warnings:   warnings,
		TotalCount: len(warnings),
	})
}
