package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"plotweaver/internal/config"
	apperrors "plotweaver/pkg/errors"
	"plotweaver/pkg/metrics"
)

var tracer = otel.Tracer("inference")

// ServerEngine talks to a llama.cpp server process over its HTTP
// completion API. The server owns the model; this client only composes
// requests and interprets results.
type ServerEngine struct {
	baseURL    string
	cfg        *config.InferenceConfig
	httpClient *http.Client

	mu        sync.Mutex
	modelPath string
}

var _ Engine = (*ServerEngine)(nil)

type completionRequest struct {
	Prompt      string   `json:"prompt"`
	NPredict    int      `json:"n_predict"`
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	Stop        []string `json:"stop,omitempty"`
	CachePrompt bool     `json:"cache_prompt"`
}

type completionResponse struct {
	Content         string `json:"content"`
	Stop            bool   `json:"stop"`
	TokensPredicted int    `json:"tokens_predicted"`
	TokensEvaluated int    `json:"tokens_evaluated"`
}

func NewServerEngine(cfg *config.InferenceConfig) *ServerEngine {
	timeout := cfg.Server.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &ServerEngine{
		baseURL: strings.TrimRight(cfg.Server.BaseURL, "/"),
		cfg:     cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (e *ServerEngine) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	ctx, span := tracer.Start(ctx, "inference.ServerEngine.Generate")
	defer span.End()

	start := time.Now()
	out, err := e.doCompletion(ctx, framePrompt(prompt), resolveParams(e.cfg, p))
	metrics.EngineCallDuration.WithLabelValues(BackendServer).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EngineCallTotal.WithLabelValues(BackendServer, "error").Inc()
		span.RecordError(err)
		return "", err
	}
	metrics.EngineCallTotal.WithLabelValues(BackendServer, "success").Inc()
	metrics.EngineTokens.WithLabelValues("prompt").Add(float64(out.TokensEvaluated))
	metrics.EngineTokens.WithLabelValues("completion").Add(float64(out.TokensPredicted))

	return stripEcho(out.Content), nil
}

func (e *ServerEngine) doCompletion(ctx context.Context, prompt string, p Params) (*completionResponse, error) {
	reqBody, err := json.Marshal(&completionRequest{
		Prompt:      prompt,
		NPredict:    p.MaxTokens,
		Temperature: p.Temperature,
		TopP:        p.TopP,
		Stop:        p.Stop,
		CachePrompt: true,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to marshal completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/completion", bytes.NewReader(reqBody))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to create completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInferenceFailed, "llama server request failed")
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusServiceUnavailable {
		return nil, apperrors.New(apperrors.CodeEngineNotReady, "inference engine not ready").WithDetail("llama server is still loading the model")
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, apperrors.Newf(apperrors.CodeInferenceFailed, "llama server returned status %d: %s", httpResp.StatusCode, strings.TrimSpace(string(body)))
	}

	var resp completionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInferenceFailed, "failed to decode completion response")
	}
	return &resp, nil
}

// Ready probes the server health endpoint. The server reports 503
// while the model is still loading.
func (e *ServerEngine) Ready(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer httpResp.Body.Close()
	return httpResp.StatusCode == http.StatusOK
}

func (e *ServerEngine) Info(ctx context.Context) ModelInfo {
	return ModelInfo{
		Path:  e.fetchModelPath(ctx),
		Type:  "llama.cpp",
		Ready: e.Ready(ctx),
	}
}

// fetchModelPath reads the model path from the server props endpoint
// and caches it. Servers predating the top-level field report it under
// the default generation settings.
func (e *ServerEngine) fetchModelPath(ctx context.Context) string {
	e.mu.Lock()
	cached := e.modelPath
	e.mu.Unlock()
	if cached != "" {
		return cached
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/props", nil)
	if err != nil {
		return ""
	}
	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return ""
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return ""
	}

	var props struct {
		ModelPath string `json:"model_path"`
		Defaults  struct {
			Model string `json:"model"`
		} `json:"default_generation_settings"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&props); err != nil {
		return ""
	}

	path := props.ModelPath
	if path == "" {
		path = props.Defaults.Model
	}
	if path != "" {
		e.mu.Lock()
		e.modelPath = path
		e.mu.Unlock()
	}
	return path
}

func (e *ServerEngine) Close() error {
	e.httpClient.CloseIdleConnections()
	return nil
}
