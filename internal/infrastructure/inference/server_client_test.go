package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotweaver/internal/config"
	apperrors "plotweaver/pkg/errors"
)

func testInferenceConfig(baseURL string) *config.InferenceConfig {
	return &config.InferenceConfig{
		Backend:     BackendServer,
		MaxTokens:   512,
		Temperature: 0.7,
		TopP:        0.9,
		Stop:        []string{"</s>", "<|endoftext|>", "\n\n---"},
		Server: config.ServerBackend{
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
		},
	}
}

func TestServerEngine_Generate(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/completion", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse{
			Content:         " 塔の上で目覚めた少女は、失われた王国の最後の魔法使いだった。 ",
			Stop:            true,
			TokensPredicted: 42,
			TokensEvaluated: 128,
		})
	}))
	defer srv.Close()

	e := NewServerEngine(testInferenceConfig(srv.URL))
	out, err := e.Generate(context.Background(), "勇者が魔王に挑む物語", Params{MaxTokens: 400, Temperature: 0.6})
	require.NoError(t, err)
	assert.Equal(t, "塔の上で目覚めた少女は、失われた王国の最後の魔法使いだった。", out)

	assert.True(t, strings.HasPrefix(got.Prompt, "以下の指示に従って、日本語で創作的なプロットを生成してください。"))
	assert.Contains(t, got.Prompt, "勇者が魔王に挑む物語")
	assert.True(t, strings.HasSuffix(got.Prompt, "回答:"))
	assert.Equal(t, 400, got.NPredict)
	assert.InDelta(t, 0.6, got.Temperature, 1e-9)
	assert.InDelta(t, 0.9, got.TopP, 1e-9)
	assert.Equal(t, []string{"</s>", "<|endoftext|>", "\n\n---"}, got.Stop)
	assert.True(t, got.CachePrompt)
}

func TestServerEngine_GenerateStripsEchoedPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionResponse{
			Content: "以下の指示に従って、日本語で創作的なプロットを生成してください。\n\n入力\n\n回答: 物語の本文",
		})
	}))
	defer srv.Close()

	e := NewServerEngine(testInferenceConfig(srv.URL))
	out, err := e.Generate(context.Background(), "入力", Params{})
	require.NoError(t, err)
	assert.Equal(t, "物語の本文", out)
}

func TestServerEngine_GenerateModelLoading(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Loading model"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := NewServerEngine(testInferenceConfig(srv.URL))
	_, err := e.Generate(context.Background(), "入力", Params{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeEngineNotReady))
}

func TestServerEngine_GenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewServerEngine(testInferenceConfig(srv.URL))
	_, err := e.Generate(context.Background(), "入力", Params{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInferenceFailed))
	assert.Contains(t, err.Error(), "500")
}

func TestServerEngine_GenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	e := NewServerEngine(testInferenceConfig(srv.URL))
	_, err := e.Generate(context.Background(), "入力", Params{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInferenceFailed))
}

func TestServerEngine_Ready(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer up.Close()

	loading := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer loading.Close()

	assert.True(t, NewServerEngine(testInferenceConfig(up.URL)).Ready(context.Background()))
	assert.False(t, NewServerEngine(testInferenceConfig(loading.URL)).Ready(context.Background()))
}

func TestServerEngine_InfoCachesModelPath(t *testing.T) {
	propsCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/props":
			propsCalls++
			_, _ = w.Write([]byte(`{"model_path":"/models/DeepSeek-R1-Distill-Qwen-14B-Japanese-Q4_K_M.gguf"}`))
		case "/health":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	e := NewServerEngine(testInferenceConfig(srv.URL))
	info := e.Info(context.Background())
	assert.Equal(t, "/models/DeepSeek-R1-Distill-Qwen-14B-Japanese-Q4_K_M.gguf", info.Path)
	assert.Equal(t, "llama.cpp", info.Type)
	assert.True(t, info.Ready)

	_ = e.Info(context.Background())
	assert.Equal(t, 1, propsCalls)
}

func TestStubEngine(t *testing.T) {
	e := NewStubEngine()
	ctx := context.Background()

	first, err := e.Generate(ctx, "同じ入力", Params{})
	require.NoError(t, err)
	second, err := e.Generate(ctx, "同じ入力", Params{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := e.Generate(ctx, "違う入力", Params{})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	assert.True(t, e.Ready(ctx))
	assert.True(t, e.Info(ctx).Ready)
	assert.NoError(t, e.Close())
}
