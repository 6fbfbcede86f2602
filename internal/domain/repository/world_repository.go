// Package repository defines the data access interfaces.
package repository

import (
	"context"

	"plotweaver/internal/domain/entity"
)

// WorldRepository persists world settings, the timeline and plot threads.
type WorldRepository interface {
	AddSetting(ctx context.Context, s *entity.WorldSetting) error
	// ListSettings filters by type; the empty type returns everything.
	ListSettings(ctx context.Context, t entity.SettingType) ([]*entity.WorldSetting, error)

	AddEvent(ctx context.Context, e *entity.TimelineEvent) error
	// ListEvents returns events in chronological order, capped at limit
	// when limit is positive.
	ListEvents(ctx context.Context, limit int) ([]*entity.TimelineEvent, error)

	AddThread(ctx context.Context, p *entity.PlotThread) error
	// ListThreads filters by status; the empty status returns everything.
	ListThreads(ctx context.Context, status entity.PlotStatus) ([]*entity.PlotThread, error)
	ResolveThread(ctx context.Context, id string, payoffEvents []string) (*entity.PlotThread, error)

	// CheckConsistency reports world problems such as active threads
	// without payoff or events naming unknown characters.
	CheckConsistency(ctx context.Context, knownCharacters map[string]bool) ([]string, error)
}
