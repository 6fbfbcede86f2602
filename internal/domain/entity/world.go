// Package entity defines the domain entities.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SettingType classifies a world setting.
type SettingType string

const (
	SettingGeography  SettingType = "geography"
	SettingHistory    SettingType = "history"
	SettingCulture    SettingType = "culture"
	SettingMagic      SettingType = "magic"
	SettingTechnology SettingType = "technology"
	SettingPolitics   SettingType = "politics"
	SettingReligion   SettingType = "religion"
	SettingEconomy    SettingType = "economy"
)

var settingTypes = map[SettingType]bool{
	SettingGeography:  true,
	SettingHistory:    true,
	SettingCulture:    true,
	SettingMagic:      true,
	SettingTechnology: true,
	SettingPolitics:   true,
	SettingReligion:   true,
	SettingEconomy:    true,
}

// Valid reports whether t is one of the defined setting types.
func (t SettingType) Valid() bool {
	return settingTypes[t]
}

// WorldSetting is a single piece of world building.
type WorldSetting struct {
	ID          string            `json:"id"`
	Type        SettingType       `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Details     map[string]string `json:"details"`
	CreatedAt   time.Time         `json:"created_at"`
}

func NewWorldSetting(t SettingType, name, description string, details map[string]string) *WorldSetting {
	if details == nil {
		details = map[string]string{}
	}
	return &WorldSetting{
		ID:          uuid.NewString(),
		Type:        t,
		Name:        name,
		Description: description,
		Details:     details,
		CreatedAt:   time.Now(),
	}
}

// Clone returns a deep copy so stored state cannot be mutated through
// returned references.
func (s *WorldSetting) Clone() *WorldSetting {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Details = make(map[string]string, len(s.Details))
	for k, v := range s.Details {
		cp.Details[k] = v
	}
	return &cp
}

// TimelineEvent is a dated event in the world chronology.
// Month and Day are optional; zero means unset.
type TimelineEvent struct {
	ID                string    `json:"id"`
	Year              int       `json:"year"`
	Month             int       `json:"month,omitempty"`
	Day               int       `json:"day,omitempty"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Importance        int       `json:"importance"`
	RelatedCharacters []string  `json:"related_characters"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewTimelineEvent(year, month, day int, title, description string, importance int, related []string) *TimelineEvent {
	if related == nil {
		related = []string{}
	}
	return &TimelineEvent{
		ID:                uuid.NewString(),
		Year:              year,
		Month:             month,
		Day:               day,
		Title:             title,
		Description:       description,
		Importance:        importance,
		RelatedCharacters: related,
		CreatedAt:         time.Now(),
	}
}

// Clone returns a deep copy.
func (e *TimelineEvent) Clone() *TimelineEvent {
	if e == nil {
		return nil
	}
	cp := *e
	cp.RelatedCharacters = append([]string(nil), e.RelatedCharacters...)
	return &cp
}

// Before reports whether e happens before other on the timeline.
func (e *TimelineEvent) Before(other *TimelineEvent) bool {
	if e.Year != other.Year {
		return e.Year < other.Year
	}
	if e.Month != other.Month {
		return e.Month < other.Month
	}
	return e.Day < other.Day
}

// PlotStatus is the plot thread lifecycle enum.
type PlotStatus string

const (
	PlotActive    PlotStatus = "active"
	PlotResolved  PlotStatus = "resolved"
	PlotAbandoned PlotStatus = "abandoned"
)

// Valid reports whether s is one of the defined plot statuses.
func (s PlotStatus) Valid() bool {
	switch s {
	case PlotActive, PlotResolved, PlotAbandoned:
		return true
	}
	return false
}

// PlotThread tracks a setup that must eventually pay off.
type PlotThread struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            PlotStatus `json:"status"`
	SetupEvents       []string   `json:"setup_events"`
	PayoffEvents      []string   `json:"payoff_events"`
	RelatedCharacters []string   `json:"related_characters"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewPlotThread(title, description string, setup, related []string) *PlotThread {
	if setup == nil {
		setup = []string{}
	}
	if related == nil {
		related = []string{}
	}
	now := time.Now()
	return &PlotThread{
		ID:                uuid.NewString(),
		Title:             title,
		Description:       description,
		Status:            PlotActive,
		SetupEvents:       setup,
		PayoffEvents:      []string{},
		RelatedCharacters: related,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Clone returns a deep copy.
func (p *PlotThread) Clone() *PlotThread {
	if p == nil {
		return nil
	}
	cp := *p
	cp.SetupEvents = append([]string(nil), p.SetupEvents...)
	cp.PayoffEvents = append([]string(nil), p.PayoffEvents...)
	cp.RelatedCharacters = append([]string(nil), p.RelatedCharacters...)
	return &cp
}
