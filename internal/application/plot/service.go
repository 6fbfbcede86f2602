// Package plot implements the generation use cases: prompt assembly
// from genre templates and stored characters, world and story state,
// engine invocation and the bookkeeping around it.
package plot

import (
	"context"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/semaphore"

	"plotweaver/internal/config"
	"plotweaver/internal/domain/entity"
	"plotweaver/internal/domain/repository"
	"plotweaver/internal/infrastructure/inference"
	"plotweaver/internal/workflow/prompt"
)

var tracer = otel.Tracer("application/plot")

// Service answers generation requests by composing the template
// registry, the stores and the inference engine. It owns the engine
// semaphore: the loaded model serves one completion at a time.
type Service struct {
	registry *prompt.Registry
	memory   repository.MemoryRepository
	world    repository.WorldRepository
	stories  repository.StoryRepository
	engine   inference.Engine
	cfg      *config.InferenceConfig

	sem *semaphore.Weighted
}

func NewService(
	registry *prompt.Registry,
	memory repository.MemoryRepository,
	world repository.WorldRepository,
	stories repository.StoryRepository,
	engine inference.Engine,
	cfg *config.InferenceConfig,
) *Service {
	return &Service{
		registry: registry,
		memory:   memory,
		world:    world,
		stories:  stories,
		engine:   engine,
		cfg:      cfg,
		sem:      semaphore.NewWeighted(1),
	}
}

// Genres returns the supported genres in canonical order together with
// their Japanese display names.
func (s *Service) Genres() ([]entity.Genre, map[string]string) {
	genres := entity.Genres()
	names := make(map[string]string, len(genres))
	for _, g := range genres {
		names[string(g)] = g.DisplayName()
	}
	return genres, names
}

// EngineReady reports whether the inference engine can serve requests.
func (s *Service) EngineReady(ctx context.Context) bool {
	return s.engine.Ready(ctx)
}

// EngineInfo returns model metadata for the health surface.
func (s *Service) EngineInfo(ctx context.Context) inference.ModelInfo {
	return s.engine.Info(ctx)
}
