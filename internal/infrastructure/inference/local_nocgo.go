//go:build !llama

package inference

import (
	"plotweaver/internal/config"
	apperrors "plotweaver/pkg/errors"
)

// NewLocalEngine is only available in binaries built with the llama
// tag, which pulls in the llama.cpp bindings.
func NewLocalEngine(cfg *config.InferenceConfig) (Engine, error) {
	return nil, apperrors.New(apperrors.CodeEngineNotReady, "local inference requires a binary built with the llama tag")
}
