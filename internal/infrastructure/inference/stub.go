package inference

import (
	"context"
	"crypto/sha256"
	"fmt"

	"plotweaver/pkg/metrics"
)

// StubEngine fabricates deterministic output so the API can be
// exercised without a model or a running llama server.
type StubEngine struct{}

var _ Engine = (*StubEngine)(nil)

func NewStubEngine() *StubEngine {
	return &StubEngine{}
}

func (e *StubEngine) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	metrics.EngineCallTotal.WithLabelValues(BackendStub, "success").Inc()
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("（スタブ応答 %x）リクエストに沿ったプロットの下書きです。", sum[:4]), nil
}

func (e *StubEngine) Ready(ctx context.Context) bool {
	return true
}

func (e *StubEngine) Info(ctx context.Context) ModelInfo {
	return ModelInfo{Path: "stub", Type: "stub", Ready: true}
}

func (e *StubEngine) Close() error {
	return nil
}
