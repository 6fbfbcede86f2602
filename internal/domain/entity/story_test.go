package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "spaces only", text: " \n\t", want: 0},
		{name: "japanese prose", text: "雨が降る。", want: 5},
		{name: "mixed whitespace", text: "雨が 降る", want: 4},
		{name: "latin counts runes", text: "go run", want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}

func drafted(number int, content string) Scene {
	sc := NewScene("場面", "", "", nil, "")
	sc.Number = number
	sc.SetContent(content)
	return sc
}

func TestStoryProgress(t *testing.T) {
	st := NewStory("試作", GenreFantasy, "", 100)
	assert.Equal(t, 0.0, st.Progress())

	ch := NewChapter(1, "序章", "", 0)
	ch.Scenes = append(ch.Scenes, drafted(1, "あいうえおかきくけこ")) // 10 runes
	st.Chapters = append(st.Chapters, ch)
	assert.InDelta(t, 10.0, st.Progress(), 0.0001)

	// Progress never reports past 100%.
	for i := 0; i < 15; i++ {
		ch.Scenes = append(ch.Scenes, drafted(i+2, "あいうえおかきくけこ"))
	}
	assert.Equal(t, 100.0, st.Progress())
}

func TestSceneSetContent(t *testing.T) {
	sc := NewScene("塔の目覚め", "導入の場面", "古い塔", []string{"エリナ"}, "主人公の紹介")
	assert.Zero(t, sc.WordCount)

	sc.SetContent("夜明け前、エリナは目を覚ました。")
	assert.Equal(t, CountWords("夜明け前、エリナは目を覚ました。"), sc.WordCount)

	sc.SetContent("")
	assert.Zero(t, sc.WordCount)
}

func TestStoryClone(t *testing.T) {
	st := NewStory("原本", GenreHorror, "", 0)
	st.Chapters = append(st.Chapters, NewChapter(1, "第一章", "", 0))
	sc := NewScene("見出し", "", "", []string{"エリナ"}, "")
	sc.Number = 1
	sc.SetContent("本文")
	st.Chapters[0].Scenes = append(st.Chapters[0].Scenes, sc)

	cp := st.Clone()
	cp.Chapters[0].Title = "改変"
	cp.Chapters[0].Scenes[0].Content = "改変された本文"
	cp.Chapters[0].Scenes[0].Characters[0] = "別人"

	assert.Equal(t, "第一章", st.Chapters[0].Title)
	assert.Equal(t, "本文", st.Chapters[0].Scenes[0].Content)
	assert.Equal(t, "エリナ", st.Chapters[0].Scenes[0].Characters[0])
}

func TestChapterStatusValid(t *testing.T) {
	for _, s := range []ChapterStatus{ChapterPlanned, ChapterOutline, ChapterDrafting, ChapterDraft, ChapterRevision, ChapterCompleted} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ChapterStatus("published").Valid())
	assert.False(t, ChapterStatus("").Valid())
}

func TestStoryChapterLookup(t *testing.T) {
	st := NewStory("試作", GenreSciFi, "", 0)
	st.Chapters = append(st.Chapters, NewChapter(3, "第三章", "", 0))

	ch, ok := st.Chapter(3)
	require.True(t, ok)
	assert.Equal(t, "第三章", ch.Title)

	_, ok = st.Chapter(1)
	assert.False(t, ok)

	ch.Scenes = append(ch.Scenes, drafted(2, "本文"))
	sc, ok := ch.Scene(2)
	require.True(t, ok)
	assert.Equal(t, "本文", sc.Content)

	_, ok = ch.Scene(5)
	assert.False(t, ok)
}
