package plot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotweaver/internal/domain/entity"
)

func TestBuildCharacterMemory(t *testing.T) {
	elina := entity.NewCharacter("エリナ", "見習い魔法使い", []string{"勇敢", "好奇心旺盛"}, "辺境の村の出身")
	elina.Relationships["アレン"] = "幼馴染"

	got := buildCharacterMemory([]*entity.Character{elina})
	want := strings.Join([]string{
		"【エリナ】",
		"説明: 見習い魔法使い",
		"特徴: 勇敢, 好奇心旺盛",
		"背景: 辺境の村の出身",
		"関係性: アレン: 幼馴染",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBuildCharacterMemory_OmitsEmptyFields(t *testing.T) {
	bare := entity.NewCharacter("アレン", "剣士", nil, "")

	got := buildCharacterMemory([]*entity.Character{bare})
	assert.Equal(t, "【アレン】\n説明: 剣士\n", got)
	assert.NotContains(t, got, "特徴:")
	assert.NotContains(t, got, "背景:")
	assert.NotContains(t, got, "関係性:")
}

func TestBuildCharacterMemory_SeparatesBlocks(t *testing.T) {
	a := entity.NewCharacter("エリナ", "魔法使い", nil, "")
	b := entity.NewCharacter("アレン", "剣士", nil, "")

	got := buildCharacterMemory([]*entity.Character{a, b})
	assert.Equal(t, "【エリナ】\n説明: 魔法使い\n\n【アレン】\n説明: 剣士\n", got)
}

func TestBuildCharacterMemory_Fallback(t *testing.T) {
	assert.Equal(t, noCharacterMemory, buildCharacterMemory(nil))
	assert.Equal(t, noCharacterMemory, buildCharacterMemory([]*entity.Character{}))
}

func TestBuildWorldContext(t *testing.T) {
	setting := entity.NewWorldSetting(entity.SettingGeography, "エルドラシア", "浮遊大陸の王国", map[string]string{"首都": "アルカナ"})
	major := entity.NewTimelineEvent(512, 0, 0, "大崩壊", "大陸が分裂した", 5, nil)
	minor := entity.NewTimelineEvent(600, 0, 0, "小さな祭り", "収穫を祝った", 2, nil)
	thread := entity.NewPlotThread("王家の秘密", "王位継承の謎", nil, nil)

	got := buildWorldContext(
		[]*entity.WorldSetting{setting},
		[]*entity.TimelineEvent{major, minor},
		[]*entity.PlotThread{thread},
	)

	want := strings.Join([]string{
		"=== 世界設定 ===",
		"【エルドラシア】(geography)",
		"浮遊大陸の王国",
		"  - 首都: アルカナ",
		"",
		"=== 重要な歴史 ===",
		"【512年】大崩壊",
		"大陸が分裂した",
		"",
		"=== アクティブな伏線 ===",
		"【王家の秘密】",
		"王位継承の謎",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "小さな祭り", "events below the importance threshold stay out")
}

func TestBuildWorldContext_EmptyWorldKeepsHeaders(t *testing.T) {
	got := buildWorldContext(nil, nil, nil)
	assert.Equal(t, "=== 世界設定 ===\n=== 重要な歴史 ===\n=== アクティブな伏線 ===", got)
}

func storyFixture(t *testing.T) *entity.Story {
	t.Helper()
	st := entity.NewStory("空の迷宮", entity.GenreFantasy, "空に浮かぶ迷宮の謎", 0)

	ch := entity.NewChapter(1, "出発", "旅立ち", 0)
	ch.Status = entity.ChapterDrafting
	scene := entity.NewScene("目覚め", "エリナが目覚める", "古い塔", []string{"エリナ"}, "導入")
	scene.Number = 1
	scene.SetContent("朝だ")
	ch.Scenes = append(ch.Scenes, scene)
	st.Chapters = append(st.Chapters, ch)
	return st
}

func TestBuildStoryContext(t *testing.T) {
	st := storyFixture(t)

	got := buildStoryContext(st)
	want := strings.Join([]string{
		"=== 物語: 空の迷宮 ===",
		"ジャンル: fantasy",
		"あらすじ: 空に浮かぶ迷宮の謎",
		"進捗: 2/50000文字",
		"",
		"=== 章構成 ===",
		"第1章: 出発",
		"  概要: 旅立ち",
		"  状態: drafting",
		"  進捗: 2/3000文字",
		"  シーン:",
		"    1. 目覚め (古い塔)",
		"       目的: 導入",
		"       文字数: 2",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBuildStoryContext_SceneWithoutContent(t *testing.T) {
	st := storyFixture(t)
	planned := entity.NewScene("追跡", "", "森", nil, "逃走劇")
	planned.Number = 2
	st.Chapters[0].Scenes = append(st.Chapters[0].Scenes, planned)

	got := buildStoryContext(st)
	assert.Contains(t, got, "    2. 追跡 (森)")
	lines := strings.Split(got, "\n")
	for i, line := range lines {
		if strings.Contains(line, "2. 追跡") {
			require.Greater(t, len(lines), i+1)
			assert.NotContains(t, lines[i+1], "文字数", "undrafted scenes carry no word count")
		}
	}
}

func TestBuildChapterContext(t *testing.T) {
	st := storyFixture(t)

	got := buildChapterContext(st)
	want := strings.Join([]string{
		"=== 現在の章: 第1章 出発 ===",
		"概要: 旅立ち",
		"",
		"【シーン1: 目覚め】",
		"場所: 古い塔",
		"登場人物: エリナ",
		"目的: 導入",
		"内容:",
		"朝だ",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBuildChapterContext_PicksFirstActiveChapter(t *testing.T) {
	st := entity.NewStory("三部作", entity.GenreMystery, "", 0)
	done := entity.NewChapter(1, "序章", "", 0)
	done.Status = entity.ChapterCompleted
	outline := entity.NewChapter(2, "中盤", "", 0)
	outline.Status = entity.ChapterOutline
	planned := entity.NewChapter(3, "終章", "", 0)
	st.Chapters = append(st.Chapters, done, outline, planned)

	got := buildChapterContext(st)
	assert.Contains(t, got, "=== 現在の章: 第2章 中盤 ===")
}

func TestBuildChapterContext_FallsBackToLastChapter(t *testing.T) {
	st := entity.NewStory("完結作", entity.GenreMystery, "", 0)
	for i := 1; i <= 2; i++ {
		ch := entity.NewChapter(i, "章", "", 0)
		ch.Status = entity.ChapterCompleted
		st.Chapters = append(st.Chapters, ch)
	}

	assert.Contains(t, buildChapterContext(st), "=== 現在の章: 第2章")
}

func TestBuildChapterContext_EmptyStory(t *testing.T) {
	st := entity.NewStory("白紙", entity.GenreMystery, "", 0)
	assert.Empty(t, buildChapterContext(st))
}

func TestBuildAdvancedPrompt(t *testing.T) {
	got := buildAdvancedPrompt("CTX", "続きを書いて")
	assert.Equal(t, "\nCTX\n\n=== 執筆指示 ===\n続きを書いて\n\n上記の世界観、物語設定、キャラクター情報を踏まえて、一貫性のある内容を生成してください。\n", got)
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestCountTokens(t *testing.T) {
	assert.Zero(t, countTokens(""))
	assert.Positive(t, countTokens("こんにちは、世界。"))
	assert.Equal(t, countTokens("同じ文章"), countTokens("同じ文章"))
}
