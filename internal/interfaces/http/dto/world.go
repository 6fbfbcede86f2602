package dto

import (
	"plotweaver/internal/domain/entity"
)

// WorldSettingRequest adds a piece of world building.
type WorldSettingRequest struct {
	Name        string            `json:"name" binding:"required"`
	Type        string            `json:"type" binding:"required"`
	Description string            `json:"description"`
	Details     map[string]string `json:"details"`
}

// TimelineEventRequest adds a dated event to the world chronology.
// Importance defaults to 1; month and day are optional.
type TimelineEventRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	Year              int      `json:"year"`
	Month             int      `json:"month"`
	Day               int      `json:"day"`
	Importance        int      `json:"importance"`
	RelatedCharacters []string `json:"related_characters"`
}

// PlotThreadRequest registers a setup that must eventually pay off.
type PlotThreadRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	SetupEvents       []string `json:"setup_events"`
	RelatedCharacters []string `json:"related_characters"`
}

// ResolvePlotRequest closes a plot thread with its payoff events.
type ResolvePlotRequest struct {
	PayoffEvents []string `json:"payoff_events"`
}

// WorldSettingMessageResponse pairs a result message with the stored
// setting.
type WorldSettingMessageResponse struct {
	Message string               `json:"message"`
	Setting *entity.WorldSetting `json:"setting"`
}

// TimelineEventMessageResponse pairs a result message with the stored
// event.
type TimelineEventMessageResponse struct {
	Message string                `json:"message"`
	Event   *entity.TimelineEvent `json:"event"`
}

// PlotThreadMessageResponse pairs a result message with the stored
// thread.
type PlotThreadMessageResponse struct {
	Message string             `json:"message"`
	Plot    *entity.PlotThread `json:"plot"`
}

// WorldSettingListResponse lists world settings.
type WorldSettingListResponse struct {
	Settings   []*entity.WorldSetting `json:"settings"`
	TotalCount int                    `json:"total_count"`
}

// TimelineResponse lists timeline events in chronological order.
type TimelineResponse struct {
	Events     []*entity.TimelineEvent `json:"events"`
	TotalCount int                     `json:"total_count"`
}

// PlotThreadListResponse lists plot threads.
type PlotThreadListResponse struct {
	Plots      []*entity.PlotThread `json:"plots"`
	TotalCount int                  `json:"total_count"`
}

// ConsistencyResponse carries world consistency warnings.
type ConsistencyResponse struct {
	Warnings   []string `json:"warnings"`
	TotalCount int      `json:"total_count"`
}
