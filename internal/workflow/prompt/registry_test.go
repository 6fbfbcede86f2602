package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotweaver/internal/domain/entity"
	apperrors "plotweaver/pkg/errors"
)

func TestRegistry_RenderSubstitutesPlaceholders(t *testing.T) {
	r := NewRegistry()

	got, err := r.Render(context.Background(), entity.GenreFantasy, "勇者が魔王に挑む物語", "【エリナ】\n説明: 見習い魔法使い")
	require.NoError(t, err)
	assert.Contains(t, got, "勇者が魔王に挑む物語")
	assert.Contains(t, got, "【エリナ】")
	assert.NotContains(t, got, "{user_input}")
	assert.NotContains(t, got, "{character_memory}")
}

func TestRegistry_AllGenresHaveTemplates(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	for _, g := range entity.Genres() {
		got, err := r.Render(ctx, g, "テスト入力", "キャラクター情報なし")
		require.NoError(t, err, string(g))
		assert.Contains(t, got, "テスト入力", string(g))
		assert.Contains(t, got, "プロットを作成してください", string(g))
	}
}

func TestRegistry_UnknownGenre(t *testing.T) {
	r := NewRegistry()

	_, err := r.Render(context.Background(), entity.Genre("western"), "入力", "キャラクター情報なし")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnknownGenre))
}

func TestRegistry_CachesTemplates(t *testing.T) {
	r := NewRegistry()

	first, err := r.ChatTemplate(entity.GenreMystery)
	require.NoError(t, err)
	second, err := r.ChatTemplate(entity.GenreMystery)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
