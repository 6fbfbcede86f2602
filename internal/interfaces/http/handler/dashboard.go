package handler

import (
	"github.com/gin-gonic/gin"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/interfaces/http/dto"
)

// DashboardHandler serves the project overview endpoint.
type DashboardHandler struct {
	svc *plot.Service
}

func NewDashboardHandler(svc *plot.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Overview returns aggregate counts across world, stories and
// characters.
// @Summary Project dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.Response[dto.DashboardResponse]
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	d, err := h.svc.BuildDashboard(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.DashboardResponse{
		WorldStats: dto.WorldStatsDTO{
			SettingsCount:  d.WorldStats.SettingsCount,
			TimelineEvents: d.WorldStats.TimelineEvents,
			ActivePlots:    d.WorldStats.ActivePlots,
		},
		StoryStats: dto.StoryStatsDTO{
			TotalStories:  d.StoryStats.TotalStories,
			TotalChapters: d.StoryStats.TotalChapters,
			TotalWords:    d.StoryStats.TotalWords,
		},
		CharacterStats: dto.CharacterStatsDTO{
			TotalCharacters: d.CharacterStats.TotalCharacters,
		},
	})
}
