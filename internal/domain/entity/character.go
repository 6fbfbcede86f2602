// Package entity defines the domain entities.
package entity

import (
	"time"
)

// Character is a persistent character profile keyed by its unique name.
type Character struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Traits             []string          `json:"traits"`
	Background         string            `json:"background"`
	Relationships      map[string]string `json:"relationships"`
	StoryAppearances   []string          `json:"story_appearances"`
	DevelopmentHistory []string          `json:"development_history"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func NewCharacter(name, description string, traits []string, background string) *Character {
	now := time.Now()
	return &Character{
		Name:               name,
		Description:        description,
		Traits:             traits,
		Background:         background,
		Relationships:      map[string]string{},
		StoryAppearances:   []string{},
		DevelopmentHistory: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Clone returns a deep copy so stored state cannot be mutated through
// returned references.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Traits = append([]string(nil), c.Traits...)
	cp.StoryAppearances = append([]string(nil), c.StoryAppearances...)
	cp.DevelopmentHistory = append([]string(nil), c.DevelopmentHistory...)
	cp.Relationships = make(map[string]string, len(c.Relationships))
	for k, v := range c.Relationships {
		cp.Relationships[k] = v
	}
	return &cp
}
