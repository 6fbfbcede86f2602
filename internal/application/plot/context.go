package plot

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"plotweaver/internal/domain/entity"
)

// noCharacterMemory is the fallback block when no character information
// applies to a request.
const noCharacterMemory = "キャラクター情報なし"

// Events at or above this importance enter the world context.
const importantEventThreshold = 3

// buildCharacterMemory renders the character blocks injected into
// prompts. Name and description are always present; traits, background
// and relationships appear only when set.
func buildCharacterMemory(chars []*entity.Character) string {
	if len(chars) == 0 {
		return noCharacterMemory
	}

	parts := make([]string, 0, len(chars))
	for _, ch := range chars {
		var b strings.Builder
		fmt.Fprintf(&b, "【%s】\n", ch.Name)
		fmt.Fprintf(&b, "説明: %s\n", ch.Description)
		if len(ch.Traits) > 0 {
			fmt.Fprintf(&b, "特徴: %s\n", strings.Join(ch.Traits, ", "))
		}
		if ch.Background != "" {
			fmt.Fprintf(&b, "背景: %s\n", ch.Background)
		}
		if len(ch.Relationships) > 0 {
			rels := make([]string, 0, len(ch.Relationships))
			for _, name := range sortedKeys(ch.Relationships) {
				rels = append(rels, fmt.Sprintf("%s: %s", name, ch.Relationships[name]))
			}
			fmt.Fprintf(&b, "関係性: %s\n", strings.Join(rels, ", "))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

// buildWorldContext renders the world bible block. All three section
// headers are emitted even when a section is empty so the model always
// sees the same structure. Events must arrive in chronological order.
func buildWorldContext(settings []*entity.WorldSetting, events []*entity.TimelineEvent, threads []*entity.PlotThread) string {
	parts := []string{"=== 世界設定 ==="}
	for _, ws := range settings {
		parts = append(parts, fmt.Sprintf("【%s】(%s)", ws.Name, ws.Type))
		parts = append(parts, ws.Description)
		for _, key := range sortedKeys(ws.Details) {
			parts = append(parts, fmt.Sprintf("  - %s: %s", key, ws.Details[key]))
		}
		parts = append(parts, "")
	}

	parts = append(parts, "=== 重要な歴史 ===")
	for _, ev := range events {
		if ev.Importance < importantEventThreshold {
			continue
		}
		parts = append(parts, fmt.Sprintf("【%d年】%s", ev.Year, ev.Title))
		parts = append(parts, ev.Description)
		parts = append(parts, "")
	}

	parts = append(parts, "=== アクティブな伏線 ===")
	for _, th := range threads {
		parts = append(parts, fmt.Sprintf("【%s】", th.Title))
		parts = append(parts, th.Description)
		parts = append(parts, "")
	}

	return strings.Join(parts, "\n")
}

// buildStoryContext renders the story outline block with per-chapter
// progress and scene listings.
func buildStoryContext(st *entity.Story) string {
	parts := []string{
		fmt.Sprintf("=== 物語: %s ===", st.Title),
		fmt.Sprintf("ジャンル: %s", st.Genre),
		fmt.Sprintf("あらすじ: %s", st.Synopsis),
		fmt.Sprintf("進捗: %d/%d文字", st.WordCount(), st.TargetLength),
		"",
		"=== 章構成 ===",
	}
	for _, ch := range st.Chapters {
		parts = append(parts, fmt.Sprintf("第%d章: %s", ch.Number, ch.Title))
		parts = append(parts, fmt.Sprintf("  概要: %s", ch.Summary))
		parts = append(parts, fmt.Sprintf("  状態: %s", ch.Status))
		parts = append(parts, fmt.Sprintf("  進捗: %d/%d文字", ch.WordCount(), ch.TargetWords))
		if len(ch.Scenes) > 0 {
			parts = append(parts, "  シーン:")
			for i, sc := range ch.Scenes {
				parts = append(parts, fmt.Sprintf("    %d. %s (%s)", i+1, sc.Name, sc.Location))
				parts = append(parts, fmt.Sprintf("       目的: %s", sc.Purpose))
				if sc.Content != "" {
					parts = append(parts, fmt.Sprintf("       文字数: %d", sc.WordCount))
				}
			}
		}
		parts = append(parts, "")
	}
	return strings.Join(parts, "\n")
}

// buildChapterContext renders the chapter currently being written with
// its scene plan and any drafted prose. Empty when the story has no
// chapters.
func buildChapterContext(st *entity.Story) string {
	current := currentChapter(st)
	if current == nil {
		return ""
	}

	parts := []string{
		fmt.Sprintf("=== 現在の章: 第%d章 %s ===", current.Number, current.Title),
		fmt.Sprintf("概要: %s", current.Summary),
		"",
	}
	for i, sc := range current.Scenes {
		parts = append(parts, fmt.Sprintf("【シーン%d: %s】", i+1, sc.Name))
		parts = append(parts, fmt.Sprintf("場所: %s", sc.Location))
		parts = append(parts, fmt.Sprintf("登場人物: %s", strings.Join(sc.Characters, ", ")))
		parts = append(parts, fmt.Sprintf("目的: %s", sc.Purpose))
		if sc.Content != "" {
			parts = append(parts, "内容:")
			parts = append(parts, sc.Content)
		}
		parts = append(parts, "")
	}
	return strings.Join(parts, "\n")
}

// currentChapter is the first chapter in drafting or outline state,
// falling back to the last chapter.
func currentChapter(st *entity.Story) *entity.Chapter {
	for _, ch := range st.Chapters {
		if ch.Status == entity.ChapterDrafting || ch.Status == entity.ChapterOutline {
			return ch
		}
	}
	if len(st.Chapters) == 0 {
		return nil
	}
	return st.Chapters[len(st.Chapters)-1]
}

// buildAdvancedPrompt joins the assembled context with the writing
// instruction.
func buildAdvancedPrompt(fullContext, instruction string) string {
	return "\n" + fullContext + "\n\n=== 執筆指示 ===\n" + instruction +
		"\n\n上記の世界観、物語設定、キャラクター情報を踏まえて、一貫性のある内容を生成してください。\n"
}

// sortedKeys keeps map-driven prompt lines deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
	tkErr  error
)

func tokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// countTokens estimates the token cost of a prompt for window
// budgeting. When the encoding is unavailable the rune count stands in;
// CJK text runs close to one token per rune.
func countTokens(text string) int {
	enc, err := tokenizer()
	if err != nil {
		return utf8.RuneCountInString(text)
	}
	return len(enc.Encode(text, nil, nil))
}
