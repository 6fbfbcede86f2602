package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"plotweaver/internal/domain/entity"
	"plotweaver/internal/domain/repository"
	apperrors "plotweaver/pkg/errors"
)

// storiesState is the on-disk layout of the stories file.
type storiesState struct {
	Stories     []*entity.Story `json:"stories"`
	LastUpdated time.Time       `json:"last_updated"`
}

// StoryStore persists stories with their chapters and scenes in one JSON file.
type StoryStore struct {
	mu      sync.RWMutex
	path    string
	stories []*entity.Story
	byID    map[string]*entity.Story
}

var _ repository.StoryRepository = (*StoryStore)(nil)

// NewStoryStore opens the store at path, creating the file when missing.
// A corrupt file yields an empty store plus a corruption error.
func NewStoryStore(path string) (*StoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodePersistenceFailed, "failed to create data directory").WithDetail(path)
	}

	s := &StoryStore{
		path:    path,
		stories: []*entity.Story{},
		byID:    map[string]*entity.Story{},
	}

	var st storiesState
	err := readState(path, &st)
	switch {
	case err == nil:
		if st.Stories != nil {
			s.stories = st.Stories
		}
		s.rebuildIndex()
		return s, nil
	case os.IsNotExist(err):
		if werr := s.persist(); werr != nil {
			return s, werr
		}
		return s, nil
	default:
		return s, err
	}
}

func (s *StoryStore) rebuildIndex() {
	s.byID = make(map[string]*entity.Story, len(s.stories))
	for _, st := range s.stories {
		s.byID[st.ID] = st
	}
}

func nextChapterNumber(st *entity.Story) int {
	max := 0
	for _, ch := range st.Chapters {
		if ch.Number > max {
			max = ch.Number
		}
	}
	return max + 1
}

// persist rewrites the state file. The caller must hold the write lock.
func (s *StoryStore) persist() error {
	st := storiesState{
		Stories:     s.stories,
		LastUpdated: time.Now(),
	}
	return writeState("stories", s.path, &st)
}

func (s *StoryStore) CreateStory(ctx context.Context, st *entity.Story) error {
	_, span := tracer.Start(ctx, "file.StoryStore.CreateStory")
	defer span.End()

	if st == nil || strings.TrimSpace(st.Title) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "story title is required")
	}
	if !st.Genre.Valid() {
		return apperrors.New(apperrors.CodeUnknownGenre, "unknown genre").WithDetail(string(st.Genre))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[st.ID]; ok {
		return apperrors.New(apperrors.CodeConflict, "story already exists").WithDetail(st.ID)
	}

	cp := st.Clone()
	s.stories = append(s.stories, cp)
	s.byID[cp.ID] = cp

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *StoryStore) GetStory(ctx context.Context, id string) (*entity.Story, error) {
	_, span := tracer.Start(ctx, "file.StoryStore.GetStory")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.byID[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeStoryNotFound, "story not found").WithDetail(id)
	}
	return st.Clone(), nil
}

func (s *StoryStore) ListStories(ctx context.Context) ([]*entity.Story, error) {
	_, span := tracer.Start(ctx, "file.StoryStore.ListStories")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Story, 0, len(s.stories))
	for _, st := range s.stories {
		out = append(out, st.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *StoryStore) AddChapter(ctx context.Context, storyID string, ch *entity.Chapter) error {
	_, span := tracer.Start(ctx, "file.StoryStore.AddChapter")
	defer span.End()

	if ch == nil || strings.TrimSpace(ch.Title) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "chapter title is required")
	}
	if !ch.Status.Valid() {
		return apperrors.New(apperrors.CodeInvalidParam, "unknown chapter status").WithDetail(string(ch.Status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[storyID]
	if !ok {
		return apperrors.New(apperrors.CodeStoryNotFound, "story not found").WithDetail(storyID)
	}
	if ch.Number <= 0 {
		ch.Number = nextChapterNumber(st)
	} else if _, ok := st.Chapter(ch.Number); ok {
		return apperrors.New(apperrors.CodeChapterExists, fmt.Sprintf("chapter %d already exists", ch.Number))
	}

	st.Chapters = append(st.Chapters, ch.Clone())
	sort.SliceStable(st.Chapters, func(i, j int) bool {
		return st.Chapters[i].Number < st.Chapters[j].Number
	})
	st.UpdatedAt = time.Now()

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *StoryStore) UpdateChapterStatus(ctx context.Context, storyID string, number int, status entity.ChapterStatus) error {
	_, span := tracer.Start(ctx, "file.StoryStore.UpdateChapterStatus")
	defer span.End()

	if !status.Valid() {
		return apperrors.New(apperrors.CodeInvalidParam, "unknown chapter status").WithDetail(string(status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[storyID]
	if !ok {
		return apperrors.New(apperrors.CodeStoryNotFound, "story not found").WithDetail(storyID)
	}
	ch, ok := st.Chapter(number)
	if !ok {
		return apperrors.New(apperrors.CodeChapterNotFound, fmt.Sprintf("chapter %d not found", number))
	}

	now := time.Now()
	ch.Status = status
	ch.UpdatedAt = now
	st.UpdatedAt = now

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *StoryStore) AddScene(ctx context.Context, storyID string, chapterNumber int, scene entity.Scene) (*entity.Scene, error) {
	_, span := tracer.Start(ctx, "file.StoryStore.AddScene")
	defer span.End()

	if strings.TrimSpace(scene.Name) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "scene name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[storyID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeStoryNotFound, "story not found").WithDetail(storyID)
	}
	ch, ok := st.Chapter(chapterNumber)
	if !ok {
		return nil, apperrors.New(apperrors.CodeChapterNotFound, fmt.Sprintf("chapter %d not found", chapterNumber))
	}

	if scene.Number <= 0 {
		scene.Number = len(ch.Scenes) + 1
	} else if _, ok := ch.Scene(scene.Number); ok {
		return nil, apperrors.New(apperrors.CodeConflict, fmt.Sprintf("scene %d already exists", scene.Number))
	}

	ch.Scenes = append(ch.Scenes, scene)
	// Writing a scene moves a chapter that is still being planned into drafting.
	if ch.Status == entity.ChapterPlanned || ch.Status == entity.ChapterOutline {
		ch.Status = entity.ChapterDrafting
	}
	now := time.Now()
	ch.UpdatedAt = now
	st.UpdatedAt = now

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := scene.Clone()
	return &out, nil
}

func (s *StoryStore) UpdateSceneContent(ctx context.Context, storyID string, chapterNumber, sceneNumber int, content string) (*entity.Scene, error) {
	_, span := tracer.Start(ctx, "file.StoryStore.UpdateSceneContent")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[storyID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeStoryNotFound, "story not found").WithDetail(storyID)
	}
	ch, ok := st.Chapter(chapterNumber)
	if !ok {
		return nil, apperrors.New(apperrors.CodeChapterNotFound, fmt.Sprintf("chapter %d not found", chapterNumber))
	}
	sc, ok := ch.Scene(sceneNumber)
	if !ok {
		return nil, apperrors.New(apperrors.CodeSceneNotFound, fmt.Sprintf("scene %d not found", sceneNumber))
	}

	sc.SetContent(content)
	if ch.Status == entity.ChapterPlanned || ch.Status == entity.ChapterOutline {
		ch.Status = entity.ChapterDrafting
	}
	now := time.Now()
	ch.UpdatedAt = now
	st.UpdatedAt = now

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := sc.Clone()
	return &out, nil
}
