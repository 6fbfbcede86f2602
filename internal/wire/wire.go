// Package wire assembles the application dependencies.
package wire

import (
	"context"
	"path/filepath"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/config"
	"plotweaver/internal/infrastructure/inference"
	"plotweaver/internal/infrastructure/persistence/file"
	"plotweaver/internal/interfaces/http/handler"
	"plotweaver/internal/interfaces/http/router"
	"plotweaver/internal/workflow/prompt"
	apperrors "plotweaver/pkg/errors"
	"plotweaver/pkg/logger"
)

// Stores bundles the three state files.
type Stores struct {
	Memory  *file.MemoryStore
	World   *file.WorldStore
	Stories *file.StoryStore
}

// InitializeApp builds the full application: stores, engine, service,
// handlers and router. The returned cleanup releases the engine.
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	stores, err := ProvideStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	engine, engineCleanup, err := ProvideEngine(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := plot.NewService(
		prompt.NewRegistry(),
		stores.Memory,
		stores.World,
		stores.Stories,
		engine,
		&cfg.Inference,
	)

	handlers := &router.Handlers{
		Health:       handler.NewHealthHandler(svc),
		Generate:     handler.NewGenerateHandler(svc),
		Character:    handler.NewCharacterHandler(svc),
		Conversation: handler.NewConversationHandler(svc),
		World:        handler.NewWorldHandler(svc),
		Story:        handler.NewStoryHandler(svc),
		Dashboard:    handler.NewDashboardHandler(svc),
	}

	r := router.New(cfg, handlers)

	cleanup := func() {
		engineCleanup()
	}

	return r, cleanup, nil
}

// ProvideStores opens the three state files. A corrupt file is logged
// and replaced with a fresh state rather than refusing to start.
func ProvideStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	memory, err := file.NewMemoryStore(statePath(cfg, cfg.Storage.MemoryFile))
	if err = tolerateCorrupt(ctx, "memory", err); err != nil {
		return nil, err
	}

	world, err := file.NewWorldStore(statePath(cfg, cfg.Storage.WorldFile))
	if err = tolerateCorrupt(ctx, "world", err); err != nil {
		return nil, err
	}

	stories, err := file.NewStoryStore(statePath(cfg, cfg.Storage.StoriesFile))
	if err = tolerateCorrupt(ctx, "stories", err); err != nil {
		return nil, err
	}

	return &Stores{Memory: memory, World: world, Stories: stories}, nil
}

func statePath(cfg *config.Config, name string) string {
	return filepath.Join(cfg.Storage.DataDir, name)
}

// tolerateCorrupt downgrades state file corruption to a warning. The
// store constructors return a usable empty store next to the error.
func tolerateCorrupt(ctx context.Context, store string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsCode(err, apperrors.CodePersistenceCorrupt) {
		logger.Warn(ctx, "state file corrupt, starting with empty state",
			"store", store,
			"error", err.Error(),
		)
		return nil
	}
	return err
}

// ProvideEngine builds the inference engine selected by configuration.
func ProvideEngine(ctx context.Context, cfg *config.Config) (inference.Engine, func(), error) {
	var (
		engine inference.Engine
		err    error
	)

	switch cfg.Inference.Backend {
	case inference.BackendServer:
		engine = inference.NewServerEngine(&cfg.Inference)
	case inference.BackendLocal:
		engine, err = inference.NewLocalEngine(&cfg.Inference)
		if err != nil {
			return nil, nil, err
		}
	case inference.BackendStub:
		engine = inference.NewStubEngine()
	default:
		return nil, nil, apperrors.Newf(apperrors.CodeInvalidParam, "unknown inference backend: %s", cfg.Inference.Backend)
	}

	info := engine.Info(ctx)
	logger.Info(ctx, "inference engine initialized",
		"backend", cfg.Inference.Backend,
		"model_path", info.Path,
		"ready", info.Ready,
	)

	cleanup := func() {
		if cerr := engine.Close(); cerr != nil {
			logger.Warn(ctx, "engine close failed", "error", cerr.Error())
		}
	}

	return engine, cleanup, nil
}
