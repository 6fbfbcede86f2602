package file

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotweaver/internal/domain/entity"
	apperrors "plotweaver/pkg/errors"
)

func newTestStoryStore(t *testing.T) (*StoryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stories.json")
	s, err := NewStoryStore(path)
	require.NoError(t, err)
	return s, path
}

func TestStoryStore_CreateAndGet(t *testing.T) {
	s, _ := newTestStoryStore(t)
	ctx := context.Background()

	st := entity.NewStory("星霜の旅路", entity.GenreFantasy, "滅びゆく王国を救う旅", 0)
	require.NoError(t, s.CreateStory(ctx, st))
	assert.Equal(t, entity.DefaultStoryTarget, st.TargetLength)

	got, err := s.GetStory(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "星霜の旅路", got.Title)
	assert.Equal(t, entity.GenreFantasy, got.Genre)
	assert.Equal(t, entity.DefaultStoryTarget, got.TargetLength)

	_, err = s.GetStory(ctx, "missing-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeStoryNotFound))
}

func TestStoryStore_CreateValidation(t *testing.T) {
	s, _ := newTestStoryStore(t)
	ctx := context.Background()

	err := s.CreateStory(ctx, entity.NewStory("", entity.GenreFantasy, "", 0))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidParam))

	err = s.CreateStory(ctx, entity.NewStory("無題", entity.Genre("western"), "", 0))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnknownGenre))
}

func TestStoryStore_ListNewestFirst(t *testing.T) {
	s, _ := newTestStoryStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	titles := []string{"一作目", "二作目", "三作目"}
	for i, title := range titles {
		st := entity.NewStory(title, entity.GenreMystery, "", 0)
		st.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.CreateStory(ctx, st))
	}

	list, err := s.ListStories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "三作目", list[0].Title)
	assert.Equal(t, "二作目", list[1].Title)
	assert.Equal(t, "一作目", list[2].Title)
}

func TestStoryStore_AddChapter(t *testing.T) {
	s, _ := newTestStoryStore(t)
	ctx := context.Background()

	st := entity.NewStory("星霜の旅路", entity.GenreFantasy, "", 0)
	require.NoError(t, s.CreateStory(ctx, st))

	// Out-of-order insertion keeps chapters sorted by number.
	require.NoError(t, s.AddChapter(ctx, st.ID, entity.NewChapter(2, "旅立ち", "", 0)))
	require.NoError(t, s.AddChapter(ctx, st.ID, entity.NewChapter(1, "目覚め", "", 0)))

	got, err := s.GetStory(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, got.Chapters, 2)
	assert.Equal(t, 1, got.Chapters[0].Number)
	assert.Equal(t, "目覚め", got.Chapters[0].Title)
	assert.Equal(t, 2, got.Chapters[1].Number)
	assert.Equal(t, entity.ChapterPlanned, got.Chapters[0].Status)
	assert.Equal(t, entity.DefaultChapterTarget, got.Chapters[0].TargetWords)

	// A zero number gets the next free one.
	auto := entity.NewChapter(0, "決戦", "", 0)
	require.NoError(t, s.AddChapter(ctx, st.ID, auto))
	got, err = s.GetStory(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, got.Chapters, 3)
	assert.Equal(t, 3, got.Chapters[2].Number)
	assert.Equal(t, "決戦", got.Chapters[2].Title)

	err = s.AddChapter(ctx, st.ID, entity.NewChapter(1, "重複", "", 0))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeChapterExists))

	err = s.AddChapter(ctx, "missing-id", entity.NewChapter(1, "", "", 0))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeStoryNotFound))
}

func TestStoryStore_UpdateChapterStatus(t *testing.T) {
	s, _ := newTestStoryStore(t)
	ctx := context.Background()

	st := entity.NewStory("星霜の旅路", entity.GenreFantasy, "", 0)
	require.NoError(t, s.CreateStory(ctx, st))
	require.NoError(t, s.AddChapter(ctx, st.ID, entity.NewChapter(1, "目覚め", "", 0)))

	require.NoError(t, s.UpdateChapterStatus(ctx, st.ID, 1, entity.ChapterOutline))

	got, err := s.GetStory(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ChapterOutline, got.Chapters[0].Status)

	err = s.UpdateChapterStatus(ctx, st.ID, 1, entity.ChapterStatus("published"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidParam))

	err = s.UpdateChapterStatus(ctx, st.ID, 9, entity.ChapterDraft)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeChapterNotFound))
}

func TestStoryStore_AddSceneMovesPlannedChapterToDrafting(t *testing.T) {
	s, _ := newTestStoryStore(t)
	ctx := context.Background()

	st := entity.NewStory("星霜の旅路", entity.GenreFantasy, "", 0)
	require.NoError(t, s.CreateStory(ctx, st))
	require.NoError(t, s.AddChapter(ctx, st.ID, entity.NewChapter(1, "目覚め", "", 0)))

	scene := entity.NewScene("塔の目覚め", "エリナが目覚める場面", "古い塔の最上階", []string{"エリナ"}, "物語の導入")
	added, err := s.AddScene(ctx, st.ID, 1, scene)
	require.NoError(t, err)
	assert.Equal(t, 1, added.Number)
	assert.Zero(t, added.WordCount)

	got, err := s.GetStory(ctx, st.ID)
	require.NoError(t, err)
	ch := got.Chapters[0]
	assert.Equal(t, entity.ChapterDrafting, ch.Status)
	require.Len(t, ch.Scenes, 1)
	assert.Equal(t, []string{"エリナ"}, ch.Scenes[0].Characters)

	// Scenes keep numbering themselves.
	second, err := s.AddScene(ctx, st.ID, 1, entity.NewScene("追記", "", "", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Number)

	// A chapter already past planning keeps its status.
	require.NoError(t, s.UpdateChapterStatus(ctx, st.ID, 1, entity.ChapterRevision))
	_, err = s.AddScene(ctx, st.ID, 1, entity.NewScene("再追記", "", "", nil, ""))
	require.NoError(t, err)
	got, err = s.GetStory(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ChapterRevision, got.Chapters[0].Status)

	_, err = s.AddScene(ctx, st.ID, 9, entity.NewScene("迷子", "", "", nil, ""))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeChapterNotFound))

	_, err = s.AddScene(ctx, st.ID, 1, entity.NewScene("  ", "", "", nil, ""))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidParam))
}

func TestStoryStore_UpdateSceneContent(t *testing.T) {
	s, _ := newTestStoryStore(t)
	ctx := context.Background()

	st := entity.NewStory("星霜の旅路", entity.GenreFantasy, "", 0)
	require.NoError(t, s.CreateStory(ctx, st))
	require.NoError(t, s.AddChapter(ctx, st.ID, entity.NewChapter(1, "目覚め", "", 0)))
	_, err := s.AddScene(ctx, st.ID, 1, entity.NewScene("塔の目覚め", "", "", nil, ""))
	require.NoError(t, err)

	content := "夜明け前、エリナは塔の最上階で目を覚ました。"
	updated, err := s.UpdateSceneContent(ctx, st.ID, 1, 1, content)
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, entity.CountWords(content), updated.WordCount)

	got, err := s.GetStory(ctx, st.ID)
	require.NoError(t, err)
	ch := got.Chapters[0]
	assert.Equal(t, entity.CountWords(content), ch.Scenes[0].WordCount)
	assert.Equal(t, ch.Scenes[0].WordCount, ch.WordCount())
	assert.Equal(t, ch.WordCount(), got.WordCount())
	assert.Greater(t, got.Progress(), 0.0)

	_, err = s.UpdateSceneContent(ctx, st.ID, 1, 9, content)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSceneNotFound))

	_, err = s.UpdateSceneContent(ctx, st.ID, 9, 1, content)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeChapterNotFound))
}

func TestStoryStore_RoundTrip(t *testing.T) {
	s, path := newTestStoryStore(t)
	ctx := context.Background()

	st := entity.NewStory("星霜の旅路", entity.GenreFantasy, "滅びゆく王国を救う旅", 10000)
	require.NoError(t, s.CreateStory(ctx, st))
	require.NoError(t, s.AddChapter(ctx, st.ID, entity.NewChapter(1, "目覚め", "主人公の日常と旅立ちの予感", 0)))
	_, err := s.AddScene(ctx, st.ID, 1, entity.NewScene("塔の目覚め", "導入の場面", "古い塔", []string{"エリナ"}, "主人公の紹介"))
	require.NoError(t, err)
	_, err = s.UpdateSceneContent(ctx, st.ID, 1, 1, "夜明け前、エリナは目を覚ました。")
	require.NoError(t, err)

	want, err := s.GetStory(ctx, st.ID)
	require.NoError(t, err)

	reopened, err := NewStoryStore(path)
	require.NoError(t, err)

	got, err := reopened.GetStory(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Genre, got.Genre)
	assert.Equal(t, want.TargetLength, got.TargetLength)
	require.Len(t, got.Chapters, 1)
	assert.Equal(t, entity.ChapterDrafting, got.Chapters[0].Status)
	require.Len(t, got.Chapters[0].Scenes, 1)
	sc := got.Chapters[0].Scenes[0]
	assert.Equal(t, "古い塔", sc.Location)
	assert.Equal(t, []string{"エリナ"}, sc.Characters)
	assert.Equal(t, "主人公の紹介", sc.Purpose)
	assert.Equal(t, want.WordCount(), got.WordCount())
	assert.InDelta(t, want.Progress(), got.Progress(), 0.0001)
	assert.True(t, got.CreatedAt.Equal(want.CreatedAt))
}
