//go:build llama

package inference

import (
	"context"
	"sync"
	"time"

	llama "github.com/tcpipuk/llama-go"

	"plotweaver/internal/config"
	apperrors "plotweaver/pkg/errors"
	"plotweaver/pkg/metrics"
)

// LocalEngine runs a GGUF model in-process through the llama.cpp
// bindings. It needs cgo and a compiled llama.cpp, so it is only built
// with the llama tag.
type LocalEngine struct {
	mu    sync.Mutex
	model *llama.Model
	cfg   *config.InferenceConfig
}

var _ Engine = (*LocalEngine)(nil)

func NewLocalEngine(cfg *config.InferenceConfig) (Engine, error) {
	model, err := llama.LoadModel(cfg.Local.ModelPath,
		llama.WithContext(cfg.ContextWindow),
		llama.WithThreads(cfg.Local.Threads),
		llama.WithGPULayers(cfg.Local.GPULayers),
		llama.WithMMap(true),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeEngineNotReady, "failed to load model").WithDetail(cfg.Local.ModelPath)
	}
	return &LocalEngine{model: model, cfg: cfg}, nil
}

func (e *LocalEngine) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	_, span := tracer.Start(ctx, "inference.LocalEngine.Generate")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInferenceFailed, "generation cancelled")
	}

	p = resolveParams(e.cfg, p)

	// The model context is single threaded.
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.model == nil {
		return "", apperrors.New(apperrors.CodeEngineNotReady, "inference engine not ready").WithDetail("model is closed")
	}

	start := time.Now()
	out, err := e.model.Generate(framePrompt(prompt),
		llama.WithMaxTokens(p.MaxTokens),
		llama.WithTemperature(float32(p.Temperature)),
		llama.WithTopP(float32(p.TopP)),
		llama.WithSeed(e.cfg.Local.Seed),
	)
	metrics.EngineCallDuration.WithLabelValues(BackendLocal).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EngineCallTotal.WithLabelValues(BackendLocal, "error").Inc()
		span.RecordError(err)
		return "", apperrors.Wrap(err, apperrors.CodeInferenceFailed, "model generation failed")
	}
	metrics.EngineCallTotal.WithLabelValues(BackendLocal, "success").Inc()

	return stripEcho(truncateAtStop(out, p.Stop)), nil
}

func (e *LocalEngine) Ready(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model != nil
}

func (e *LocalEngine) Info(ctx context.Context) ModelInfo {
	return ModelInfo{
		Path:  e.cfg.Local.ModelPath,
		Type:  "llama.cpp",
		Ready: e.Ready(ctx),
	}
}

func (e *LocalEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.model != nil {
		e.model.Close()
		e.model = nil
	}
	return nil
}
