package plot

import (
	"context"

	"plotweaver/internal/domain/entity"
)

// SettingInput is a new world setting payload.
type SettingInput struct {
	Name        string
	Type        entity.SettingType
	Description string
	Details     map[string]string
}

// EventInput is a new timeline event payload.
type EventInput struct {
	Title             string
	Description       string
	Year              int
	Month             int
	Day               int
	Importance        int
	RelatedCharacters []string
}

// ThreadInput is a new plot thread payload.
type ThreadInput struct {
	Title             string
	Description       string
	SetupEvents       []string
	RelatedCharacters []string
}

func (s *Service) AddWorldSetting(ctx context.Context, in SettingInput) (*entity.WorldSetting, error) {
	ws := entity.NewWorldSetting(in.Type, in.Name, in.Description, in.Details)
	if err := s.world.AddSetting(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Service) ListWorldSettings(ctx context.Context, t entity.SettingType) ([]*entity.WorldSetting, error) {
	return s.world.ListSettings(ctx, t)
}

func (s *Service) AddTimelineEvent(ctx context.Context, in EventInput) (*entity.TimelineEvent, error) {
	importance := in.Importance
	if importance == 0 {
		importance = 1
	}
	ev := entity.NewTimelineEvent(in.Year, in.Month, in.Day, in.Title, in.Description, importance, in.RelatedCharacters)
	if err := s.world.AddEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) ListTimelineEvents(ctx context.Context, limit int) ([]*entity.TimelineEvent, error) {
	return s.world.ListEvents(ctx, limit)
}

func (s *Service) AddPlotThread(ctx context.Context, in ThreadInput) (*entity.PlotThread, error) {
	th := entity.NewPlotThread(in.Title, in.Description, in.SetupEvents, in.RelatedCharacters)
	if err := s.world.AddThread(ctx, th); err != nil {
		return nil, err
	}
	return th, nil
}

func (s *Service) ListPlotThreads(ctx context.Context, status entity.PlotStatus) ([]*entity.PlotThread, error) {
	return s.world.ListThreads(ctx, status)
}

func (s *Service) ResolvePlotThread(ctx context.Context, id string, payoffEvents []string) (*entity.PlotThread, error) {
	return s.world.ResolveThread(ctx, id, payoffEvents)
}

// CheckWorldConsistency reports unresolved plot threads and timeline
// events naming characters absent from the memory store.
func (s *Service) CheckWorldConsistency(ctx context.Context) ([]string, error) {
	chars, err := s.memory.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(chars))
	for _, ch := range chars {
		known[ch.Name] = true
	}
	return s.world.CheckConsistency(ctx, known)
}
