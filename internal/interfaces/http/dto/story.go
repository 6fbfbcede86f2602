package dto

import (
	"plotweaver/internal/domain/entity"
)

// StoryRequest creates a story.
type StoryRequest struct {
	Title           string `json:"title" binding:"required"`
	Genre           string `json:"genre" binding:"required"`
	Summary         string `json:"summary"`
	TargetWordCount int    `json:"target_word_count"`
}

// ChapterRequest adds a chapter. A zero number takes the next free one.
type ChapterRequest struct {
	Number          int    `json:"number"`
	Title           string `json:"title" binding:"required"`
	Summary         string `json:"summary"`
	TargetWordCount int    `json:"target_word_count"`
}

// ChapterStatusRequest moves a chapter through its workflow.
type ChapterStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SceneRequest adds a scene to a chapter.
type SceneRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Characters  []string `json:"characters"`
	Purpose     string   `json:"purpose"`
}

// SceneContentRequest sets the prose of a scene.
type SceneContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// StoryMessageResponse pairs a result message with the stored story.
type StoryMessageResponse struct {
	Message string        `json:"message"`
	Story   *entity.Story `json:"story"`
}

// ChapterMessageResponse pairs a result message with the stored
// chapter.
type ChapterMessageResponse struct {
	Message string          `json:"message"`
	Chapter *entity.Chapter `json:"chapter"`
}

// SceneMessageResponse pairs a result message with the stored scene.
type SceneMessageResponse struct {
	Message string        `json:"message"`
	Scene   *entity.Scene `json:"scene"`
}

// StoryResponse is a single story with its progress.
type StoryResponse struct {
	Story     *entity.Story `json:"story"`
	WordCount int           `json:"word_count"`
	Progress  float64       `json:"progress"`
}

// StoryListResponse lists stories.
type StoryListResponse struct {
	Stories    []*entity.Story `json:"stories"`
	TotalCount int             `json:"total_count"`
}

// SuggestionsResponse carries writing suggestions and consistency
// warnings for one story.
type SuggestionsResponse struct {
	WritingSuggestions []string `json:"writing_suggestions"`
	ConsistencyIssues  []string `json:"consistency_issues"`
	StoryID            string   `json:"story_id"`
}
