package dto

import (
	"plotweaver/internal/domain/entity"
	"plotweaver/internal/domain/repository"
)

// CharacterRequest is a new character payload.
type CharacterRequest struct {
	Name          string            `json:"name" binding:"required"`
	Description   string            `json:"description" binding:"required"`
	Traits        []string          `json:"traits"`
	Background    string            `json:"background"`
	Relationships map[string]string `json:"relationships"`
}

// CharacterUpdateRequest is a partial character update. Absent fields
// keep their stored values.
type CharacterUpdateRequest struct {
	Description   *string           `json:"description"`
	Traits        []string          `json:"traits"`
	Background    *string           `json:"background"`
	Relationships map[string]string `json:"relationships"`
}

// ToUpdate converts the request into the repository update.
func (r *CharacterUpdateRequest) ToUpdate() repository.CharacterUpdate {
	return repository.CharacterUpdate{
		Description:   r.Description,
		Traits:        r.Traits,
		Background:    r.Background,
		Relationships: r.Relationships,
	}
}

// DevelopmentRequest appends a growth note to a character.
type DevelopmentRequest struct {
	Development string `json:"development" binding:"required"`
}

// AppearanceRequest records a character appearing in a story.
type AppearanceRequest struct {
	StoryTitle string `json:"story_title" binding:"required"`
}

// CharacterResponse is a single character lookup result.
type CharacterResponse struct {
	Name      string            `json:"name"`
	Character *entity.Character `json:"character"`
}

// CharacterMessageResponse pairs a result message with the character it
// affected.
type CharacterMessageResponse struct {
	Message   string            `json:"message"`
	Character *entity.Character `json:"character,omitempty"`
}

// CharacterListResponse lists all characters in insertion order.
type CharacterListResponse struct {
	Characters []*entity.Character `json:"characters"`
	TotalCount int                 `json:"total_count"`
}
