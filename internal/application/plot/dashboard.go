package plot

import (
	"context"

	"plotweaver/internal/domain/entity"
)

// Dashboard aggregates store counts for the overview endpoint.
type Dashboard struct {
	WorldStats     WorldStats
	StoryStats     StoryStats
	CharacterStats CharacterStats
}

type WorldStats struct {
	SettingsCount  int
	TimelineEvents int
	ActivePlots    int
}

type StoryStats struct {
	TotalStories  int
	TotalChapters int
	TotalWords    int
}

type CharacterStats struct {
	TotalCharacters int
}

// BuildDashboard collects the world, story and character counts.
func (s *Service) BuildDashboard(ctx context.Context) (*Dashboard, error) {
	settings, err := s.world.ListSettings(ctx, "")
	if err != nil {
		return nil, err
	}
	events, err := s.world.ListEvents(ctx, 0)
	if err != nil {
		return nil, err
	}
	active, err := s.world.ListThreads(ctx, entity.PlotActive)
	if err != nil {
		return nil, err
	}
	stories, err := s.stories.ListStories(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.memory.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	totalChapters, totalWords := 0, 0
	for _, st := range stories {
		totalChapters += len(st.Chapters)
		totalWords += st.WordCount()
	}

	return &Dashboard{
		WorldStats: WorldStats{
			SettingsCount:  len(settings),
			TimelineEvents: len(events),
			ActivePlots:    len(active),
		},
		StoryStats: StoryStats{
			TotalStories:  len(stories),
			TotalChapters: totalChapters,
			TotalWords:    totalWords,
		},
		CharacterStats: CharacterStats{
			TotalCharacters: stats.TotalCharacters,
		},
	}, nil
}
