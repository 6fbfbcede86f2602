// Package repository defines the data access interfaces.
package repository

import (
	"context"

	"plotweaver/internal/domain/entity"
)

// CharacterStatistics aggregates character store counts.
type CharacterStatistics struct {
	TotalCharacters   int            `json:"total_characters"`
	TotalAppearances  int            `json:"total_appearances"`
	TraitFrequency    map[string]int `json:"trait_frequency"`
	WithRelationships int            `json:"with_relationships"`
}

// CharacterUpdate carries the fields of a partial character update.
// Nil fields keep the stored value.
type CharacterUpdate struct {
	Description   *string
	Traits        []string
	Background    *string
	Relationships map[string]string
}

// MemoryRepository persists characters and the conversation history.
type MemoryRepository interface {
	AddCharacter(ctx context.Context, ch *entity.Character) error
	GetCharacter(ctx context.Context, name string) (*entity.Character, error)
	// UpdateCharacter merges the provided fields into the stored
	// character and returns the result.
	UpdateCharacter(ctx context.Context, name string, upd CharacterUpdate) (*entity.Character, error)
	DeleteCharacter(ctx context.Context, name string) error
	// ListCharacters returns all characters in insertion order.
	ListCharacters(ctx context.Context) ([]*entity.Character, error)
	AddAppearance(ctx context.Context, name, appearance string) error
	AddDevelopment(ctx context.Context, name, note string) error
	// SearchByTrait matches traits case-insensitively, whole trait only.
	SearchByTrait(ctx context.Context, trait string) ([]*entity.Character, error)
	Statistics(ctx context.Context) (*CharacterStatistics, error)

	AppendTurn(ctx context.Context, turn entity.ConversationTurn) error
	Conversation(ctx context.Context) ([]entity.ConversationTurn, error)
	ClearConversation(ctx context.Context) error
}
