package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotweaver/internal/domain/entity"
	"plotweaver/internal/domain/repository"
	apperrors "plotweaver/pkg/errors"
)

func newTestMemoryStore(t *testing.T) (*MemoryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "character_memory.json")
	s, err := NewMemoryStore(path)
	require.NoError(t, err)
	return s, path
}

func TestMemoryStore_CreatesFileOnFirstRun(t *testing.T) {
	_, path := newTestMemoryStore(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"characters"`)
	assert.Contains(t, string(data), `"conversation"`)
	assert.Contains(t, string(data), `"last_updated"`)
}

func TestMemoryStore_AddAndGetCharacter(t *testing.T) {
	s, _ := newTestMemoryStore(t)
	ctx := context.Background()

	ch := entity.NewCharacter("エリナ", "勇敢な魔法使い", []string{"勇敢", "好奇心旺盛"}, "古代魔法の家系に生まれた")
	ch.Relationships["アレン"] = "幼馴染"
	require.NoError(t, s.AddCharacter(ctx, ch))

	got, err := s.GetCharacter(ctx, "エリナ")
	require.NoError(t, err)
	assert.Equal(t, "エリナ", got.Name)
	assert.Equal(t, "勇敢な魔法使い", got.Description)
	assert.Equal(t, []string{"勇敢", "好奇心旺盛"}, got.Traits)
	assert.Equal(t, "古代魔法の家系に生まれた", got.Background)
	assert.Equal(t, "幼馴染", got.Relationships["アレン"])
	assert.False(t, got.CreatedAt.IsZero())

	// Mutating the returned copy must not leak into the store.
	got.Traits[0] = "臆病"
	got.Relationships["アレン"] = "宿敵"
	again, err := s.GetCharacter(ctx, "エリナ")
	require.NoError(t, err)
	assert.Equal(t, "勇敢", again.Traits[0])
	assert.Equal(t, "幼馴染", again.Relationships["アレン"])
}

func TestMemoryStore_AddCharacterErrors(t *testing.T) {
	s, _ := newTestMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("アレン", "剣士", nil, "")))

	tests := []struct {
		name     string
		ch       *entity.Character
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "duplicate name",
			ch:       entity.NewCharacter("アレン", "別の剣士", nil, ""),
			wantCode: apperrors.CodeCharacterExists,
		},
		{
			name:     "empty name",
			ch:       entity.NewCharacter("", "名無し", nil, ""),
			wantCode: apperrors.CodeInvalidParam,
		},
		{
			name:     "blank name",
			ch:       entity.NewCharacter("   ", "空白", nil, ""),
			wantCode: apperrors.CodeInvalidParam,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddCharacter(ctx, tt.ch)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestMemoryStore_GetMissingCharacter(t *testing.T) {
	s, _ := newTestMemoryStore(t)

	_, err := s.GetCharacter(context.Background(), "存在しない")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeCharacterNotFound))
}

func TestMemoryStore_UpdatePreservesHistory(t *testing.T) {
	s, _ := newTestMemoryStore(t)
	ctx := context.Background()

	ch := entity.NewCharacter("エリナ", "見習い魔法使い", []string{"勇敢"}, "辺境の村の出身")
	require.NoError(t, s.AddCharacter(ctx, ch))
	require.NoError(t, s.AddAppearance(ctx, "エリナ", "第一章: 目覚め"))
	require.NoError(t, s.AddDevelopment(ctx, "エリナ", "火の精霊と契約した"))

	before, err := s.GetCharacter(ctx, "エリナ")
	require.NoError(t, err)

	desc := "一人前の魔法使い"
	got, err := s.UpdateCharacter(ctx, "エリナ", repository.CharacterUpdate{
		Description: &desc,
		Traits:      []string{"勇敢", "思慮深い"},
	})
	require.NoError(t, err)
	assert.Equal(t, "一人前の魔法使い", got.Description)
	assert.Equal(t, []string{"勇敢", "思慮深い"}, got.Traits)

	got, err = s.GetCharacter(ctx, "エリナ")
	require.NoError(t, err)
	assert.Equal(t, "一人前の魔法使い", got.Description)
	assert.Equal(t, []string{"勇敢", "思慮深い"}, got.Traits)
	assert.Equal(t, "辺境の村の出身", got.Background, "omitted fields keep their stored value")
	assert.Equal(t, []string{"第一章: 目覚め"}, got.StoryAppearances)
	assert.Equal(t, []string{"火の精霊と契約した"}, got.DevelopmentHistory)
	assert.True(t, got.CreatedAt.Equal(before.CreatedAt), "CreatedAt must survive updates")
	assert.False(t, got.UpdatedAt.Before(before.UpdatedAt))
}

func TestMemoryStore_UpdateMissingCharacter(t *testing.T) {
	s, _ := newTestMemoryStore(t)

	_, err := s.UpdateCharacter(context.Background(), "未登録", repository.CharacterUpdate{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeCharacterNotFound))
}

func TestMemoryStore_DeleteCharacter(t *testing.T) {
	s, _ := newTestMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("アレン", "剣士", nil, "")))
	require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("ミラ", "弓使い", nil, "")))

	require.NoError(t, s.DeleteCharacter(ctx, "アレン"))

	_, err := s.GetCharacter(ctx, "アレン")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeCharacterNotFound))

	list, err := s.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ミラ", list[0].Name)

	err = s.DeleteCharacter(ctx, "アレン")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeCharacterNotFound))
}

func TestMemoryStore_InsertionOrderAcrossReopen(t *testing.T) {
	s, path := newTestMemoryStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	names := []string{"ツバキ", "アレン", "ミラ"}
	for i, name := range names {
		ch := entity.NewCharacter(name, "", nil, "")
		ch.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.AddCharacter(ctx, ch))
	}

	list, err := s.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, name := range names {
		assert.Equal(t, name, list[i].Name)
	}

	reopened, err := NewMemoryStore(path)
	require.NoError(t, err)
	list, err = reopened.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, name := range names {
		assert.Equal(t, name, list[i].Name)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s, path := newTestMemoryStore(t)
	ctx := context.Background()

	ch := entity.NewCharacter("エリナ", "魔法使い", []string{"勇敢"}, "古代魔法の家系")
	ch.Relationships["アレン"] = "幼馴染"
	require.NoError(t, s.AddCharacter(ctx, ch))
	require.NoError(t, s.AddAppearance(ctx, "エリナ", "第一章"))
	require.NoError(t, s.AppendTurn(ctx, entity.NewConversationTurn(entity.RoleUser, "勇者の物語")))
	require.NoError(t, s.AppendTurn(ctx, entity.NewConversationTurn(entity.RoleAssistant, "ある日、エリナは...")))

	want, err := s.GetCharacter(ctx, "エリナ")
	require.NoError(t, err)

	reopened, err := NewMemoryStore(path)
	require.NoError(t, err)

	got, err := reopened.GetCharacter(ctx, "エリナ")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Traits, got.Traits)
	assert.Equal(t, want.Background, got.Background)
	assert.Equal(t, want.Relationships, got.Relationships)
	assert.Equal(t, want.StoryAppearances, got.StoryAppearances)
	assert.True(t, got.CreatedAt.Equal(want.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(want.UpdatedAt))

	turns, err := reopened.Conversation(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, entity.RoleUser, turns[0].Role)
	assert.Equal(t, "勇者の物語", turns[0].Content)
	assert.Equal(t, entity.RoleAssistant, turns[1].Role)
}

func TestMemoryStore_CorruptFileStartsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "whitespace only", content: "  \n\t"},
		{name: "truncated json", content: `{"characters": {`},
		{name: "wrong shape", content: `{"characters": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "character_memory.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			s, err := NewMemoryStore(path)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodePersistenceCorrupt), "got %v", err)
			require.NotNil(t, s, "store must stay usable after corruption")

			ctx := context.Background()
			list, lerr := s.ListCharacters(ctx)
			require.NoError(t, lerr)
			assert.Empty(t, list)

			// The broken file is left alone until the next mutation rewrites it.
			data, rerr := os.ReadFile(path)
			require.NoError(t, rerr)
			assert.Equal(t, tt.content, string(data))

			require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("エリナ", "", nil, "")))

			reopened, rerr := NewMemoryStore(path)
			require.NoError(t, rerr, "mutation must leave a readable file behind")
			got, gerr := reopened.GetCharacter(ctx, "エリナ")
			require.NoError(t, gerr)
			assert.Equal(t, "エリナ", got.Name)
		})
	}
}

func TestMemoryStore_SearchByTrait(t *testing.T) {
	s, _ := newTestMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("エリナ", "", []string{"勇敢", "好奇心旺盛"}, "")))
	require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("アレン", "", []string{"brave", "stoic"}, "")))
	require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("ミラ", "", []string{"kind"}, "")))

	got, err := s.SearchByTrait(ctx, "勇敢")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "エリナ", got[0].Name)

	// Matching ignores case but requires the whole trait.
	got, err = s.SearchByTrait(ctx, "BRAVE")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "アレン", got[0].Name)

	got, err = s.SearchByTrait(ctx, "勇")
	require.NoError(t, err)
	assert.Empty(t, got, "partial traits must not match")

	got, err = s.SearchByTrait(ctx, "存在しない特徴")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_Statistics(t *testing.T) {
	s, _ := newTestMemoryStore(t)
	ctx := context.Background()

	elina := entity.NewCharacter("エリナ", "", []string{"勇敢", "好奇心旺盛"}, "")
	elina.Relationships["アレン"] = "幼馴染"
	require.NoError(t, s.AddCharacter(ctx, elina))
	require.NoError(t, s.AddCharacter(ctx, entity.NewCharacter("アレン", "", []string{"勇敢"}, "")))
	require.NoError(t, s.AddAppearance(ctx, "エリナ", "第一章"))
	require.NoError(t, s.AddAppearance(ctx, "エリナ", "第二章"))

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCharacters)
	assert.Equal(t, 2, stats.TotalAppearances)
	assert.Equal(t, 1, stats.WithRelationships)
	assert.Equal(t, 2, stats.TraitFrequency["勇敢"])
	assert.Equal(t, 1, stats.TraitFrequency["好奇心旺盛"])
}

func TestMemoryStore_ClearConversationPersists(t *testing.T) {
	s, path := newTestMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendTurn(ctx, entity.NewConversationTurn(entity.RoleUser, "こんにちは")))
	require.NoError(t, s.ClearConversation(ctx))

	turns, err := s.Conversation(ctx)
	require.NoError(t, err)
	assert.Empty(t, turns)

	reopened, err := NewMemoryStore(path)
	require.NoError(t, err)
	turns, err = reopened.Conversation(ctx)
	require.NoError(t, err)
	assert.Empty(t, turns)
}
