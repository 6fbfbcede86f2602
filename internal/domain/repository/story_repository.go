// Package repository defines the data access interfaces.
package repository

import (
	"context"

	"plotweaver/internal/domain/entity"
)

// StoryRepository persists stories with their chapters and scenes.
type StoryRepository interface {
	CreateStory(ctx context.Context, st *entity.Story) error
	GetStory(ctx context.Context, id string) (*entity.Story, error)
	// ListStories returns all stories, newest first.
	ListStories(ctx context.Context) ([]*entity.Story, error)

	// AddChapter appends a chapter. A zero Number gets the next free
	// number assigned; an explicit duplicate fails.
	AddChapter(ctx context.Context, storyID string, ch *entity.Chapter) error
	UpdateChapterStatus(ctx context.Context, storyID string, number int, status entity.ChapterStatus) error
	// AddScene appends a scene to a chapter, numbering it when the
	// Number is zero.
	AddScene(ctx context.Context, storyID string, chapterNumber int, scene entity.Scene) (*entity.Scene, error)
	// UpdateSceneContent replaces the prose of a scene and recomputes
	// the word counts.
	UpdateSceneContent(ctx context.Context, storyID string, chapterNumber, sceneNumber int, content string) (*entity.Scene, error)
}
