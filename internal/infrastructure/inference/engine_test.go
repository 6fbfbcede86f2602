package inference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"plotweaver/internal/config"
)

func TestFramePrompt(t *testing.T) {
	got := framePrompt("プロット本文")
	assert.True(t, strings.HasPrefix(got, "以下の指示に従って、日本語で創作的なプロットを生成してください。\n\n"))
	assert.True(t, strings.HasSuffix(got, "\n\n回答:"))
	assert.Contains(t, got, "プロット本文")
}

func TestStripEcho(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no marker", in: "  生成された物語  ", want: "生成された物語"},
		{name: "after marker", in: "指示文のおうむ返し\n\n回答: 本文", want: "本文"},
		{name: "keeps text after last marker", in: "回答: 一度目 回答: 二度目", want: "二度目"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripEcho(tt.in))
		})
	}
}

func TestTruncateAtStop(t *testing.T) {
	stops := []string{"</s>", "\n\n---"}

	assert.Equal(t, "物語の本文", truncateAtStop("物語の本文</s>おまけ", stops))
	assert.Equal(t, "本文", truncateAtStop("本文\n\n---区切り</s>", stops))
	assert.Equal(t, "そのまま", truncateAtStop("そのまま", stops))
	assert.Equal(t, "", truncateAtStop("", stops))
	assert.Equal(t, "停止なし", truncateAtStop("停止なし", nil))
}

func TestResolveParams(t *testing.T) {
	cfg := &config.InferenceConfig{MaxTokens: 256, TopP: 0.9, Stop: []string{"</s>"}}

	p := resolveParams(cfg, Params{})
	assert.Equal(t, 256, p.MaxTokens)
	assert.Equal(t, 0.9, p.TopP)
	assert.Equal(t, []string{"</s>"}, p.Stop)
	assert.Zero(t, p.Temperature, "temperature passes through untouched")

	p = resolveParams(cfg, Params{MaxTokens: 400, Temperature: 0.6, TopP: 0.95, Stop: []string{}})
	assert.Equal(t, 400, p.MaxTokens)
	assert.Equal(t, 0.6, p.Temperature)
	assert.Equal(t, 0.95, p.TopP)
	assert.Empty(t, p.Stop, "an explicit empty stop list is not replaced")

	p = resolveParams(&config.InferenceConfig{}, Params{})
	assert.Equal(t, 512, p.MaxTokens)
}
