package plot

import (
	"context"
	"fmt"

	"plotweaver/internal/domain/entity"
)

// Progress bands for writing suggestions, as fractions of the target
// length.
const (
	progressOpening = 0.1
	progressMiddle  = 0.5
	progressClimax  = 0.8
)

// StoryInput is a new story payload.
type StoryInput struct {
	Title        string
	Genre        entity.Genre
	Synopsis     string
	TargetLength int
}

// ChapterInput is a new chapter payload. Zero Number gets the next free
// number.
type ChapterInput struct {
	Number      int
	Title       string
	Summary     string
	TargetWords int
}

// SceneInput is a new scene outline payload.
type SceneInput struct {
	Name        string
	Description string
	Location    string
	Characters  []string
	Purpose     string
}

func (s *Service) CreateStory(ctx context.Context, in StoryInput) (*entity.Story, error) {
	genre, err := resolveGenre(in.Genre)
	if err != nil {
		return nil, err
	}
	st := entity.NewStory(in.Title, genre, in.Synopsis, in.TargetLength)
	if err := s.stories.CreateStory(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) GetStory(ctx context.Context, id string) (*entity.Story, error) {
	return s.stories.GetStory(ctx, id)
}

func (s *Service) ListStories(ctx context.Context) ([]*entity.Story, error) {
	return s.stories.ListStories(ctx)
}

func (s *Service) AddChapter(ctx context.Context, storyID string, in ChapterInput) (*entity.Chapter, error) {
	ch := entity.NewChapter(in.Number, in.Title, in.Summary, in.TargetWords)
	if err := s.stories.AddChapter(ctx, storyID, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *Service) UpdateChapterStatus(ctx context.Context, storyID string, number int, status entity.ChapterStatus) error {
	return s.stories.UpdateChapterStatus(ctx, storyID, number, status)
}

func (s *Service) AddScene(ctx context.Context, storyID string, chapterNumber int, in SceneInput) (*entity.Scene, error) {
	scene := entity.NewScene(in.Name, in.Description, in.Location, in.Characters, in.Purpose)
	return s.stories.AddScene(ctx, storyID, chapterNumber, scene)
}

func (s *Service) UpdateSceneContent(ctx context.Context, storyID string, chapterNumber, sceneNumber int, content string) (*entity.Scene, error) {
	return s.stories.UpdateSceneContent(ctx, storyID, chapterNumber, sceneNumber, content)
}

// SuggestionsResult pairs writing suggestions with world consistency
// warnings for one story.
type SuggestionsResult struct {
	WritingSuggestions []string
	ConsistencyIssues  []string
}

// Suggestions derives next-step advice from story progress and chapter
// states, alongside the current world consistency warnings.
func (s *Service) Suggestions(ctx context.Context, storyID string) (*SuggestionsResult, error) {
	st, err := s.stories.GetStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	issues, err := s.CheckWorldConsistency(ctx)
	if err != nil {
		return nil, err
	}

	return &SuggestionsResult{
		WritingSuggestions: writingSuggestions(st),
		ConsistencyIssues:  issues,
	}, nil
}

func writingSuggestions(st *entity.Story) []string {
	words := float64(st.WordCount())
	target := float64(st.TargetLength)

	var suggestions []string
	switch {
	case words < target*progressOpening:
		suggestions = append(suggestions, "物語の導入部分をもっと詳しく描写しましょう")
	case words < target*progressMiddle:
		suggestions = append(suggestions, "キャラクターの関係性を深く掘り下げましょう")
	case words < target*progressClimax:
		suggestions = append(suggestions, "クライマックスに向けて緊張感を高めましょう")
	default:
		suggestions = append(suggestions, "結末に向けて伏線を回収していきましょう")
	}

	for _, ch := range st.Chapters {
		switch ch.Status {
		case entity.ChapterPlanned:
			suggestions = append(suggestions, fmt.Sprintf("第%d章のアウトラインを作成しましょう", ch.Number))
		case entity.ChapterOutline:
			suggestions = append(suggestions, fmt.Sprintf("第%d章の執筆を開始しましょう", ch.Number))
		}
	}
	return suggestions
}
