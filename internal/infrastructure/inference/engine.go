// Package inference provides the text generation engines backing plot
// generation. The server backend talks to a llama.cpp server process,
// the local backend loads a GGUF model in-process and the stub backend
// fabricates deterministic output for development and tests.
package inference

import (
	"context"
	"strings"

	"plotweaver/internal/config"
)

// Backend names accepted in configuration.
const (
	BackendServer = "server"
	BackendLocal  = "local"
	BackendStub   = "stub"
)

// Params are the sampling parameters for a single generation call.
// Zero MaxTokens and nil Stop fall back to the configured defaults;
// Temperature and TopP are passed through as given.
type Params struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
	Stop        []string
}

// ModelInfo describes the model behind an engine.
type ModelInfo struct {
	Path  string `json:"path"`
	Type  string `json:"type"`
	Ready bool   `json:"ready"`
}

// Engine generates Japanese prose from a composed prompt.
type Engine interface {
	// Generate runs one completion. The prompt is wrapped in the
	// instruction frame and the returned text has the echoed prompt
	// stripped off.
	Generate(ctx context.Context, prompt string, p Params) (string, error)
	// Ready reports whether the engine can serve generation calls.
	Ready(ctx context.Context) bool
	// Info returns model metadata for health and banner endpoints.
	Info(ctx context.Context) ModelInfo
	// Close releases engine resources.
	Close() error
}

const answerMarker = "回答:"

// framePrompt wraps the composed prompt in the fixed generation
// instruction. Every backend applies the same frame so prompts behave
// identically regardless of where the model runs.
func framePrompt(prompt string) string {
	return "以下の指示に従って、日本語で創作的なプロットを生成してください。\n\n" + prompt + "\n\n" + answerMarker
}

// stripEcho removes an echoed prompt from the completion. Models that
// repeat the input keep everything up to the last answer marker; models
// that answer directly pass through untouched.
func stripEcho(text string) string {
	if idx := strings.LastIndex(text, answerMarker); idx >= 0 {
		text = text[idx+len(answerMarker):]
	}
	return strings.TrimSpace(text)
}

// truncateAtStop cuts the completion at the earliest stop sequence.
// The server applies stop sequences itself; in-process generation
// trims them after the fact.
func truncateAtStop(text string, stops []string) string {
	cut := len(text)
	for _, stop := range stops {
		if stop == "" {
			continue
		}
		if idx := strings.Index(text, stop); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return text[:cut]
}

// resolveParams fills unset sampling parameters from configuration.
func resolveParams(cfg *config.InferenceConfig, p Params) Params {
	if p.MaxTokens <= 0 {
		p.MaxTokens = cfg.MaxTokens
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = 512
	}
	if p.TopP <= 0 {
		p.TopP = cfg.TopP
	}
	if p.Stop == nil {
		p.Stop = cfg.Stop
	}
	return p
}
