package plot

import (
	"context"
	"strings"

	"plotweaver/internal/domain/entity"
	"plotweaver/internal/domain/repository"
)

const recentConversationWindow = 10

// CharacterInput is a new character payload.
type CharacterInput struct {
	Name          string
	Description   string
	Traits        []string
	Background    string
	Relationships map[string]string
}

// AddCharacter stores a new character profile.
func (s *Service) AddCharacter(ctx context.Context, in CharacterInput) (*entity.Character, error) {
	ch := entity.NewCharacter(in.Name, in.Description, in.Traits, in.Background)
	for name, relation := range in.Relationships {
		ch.Relationships[name] = relation
	}
	if err := s.memory.AddCharacter(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *Service) GetCharacter(ctx context.Context, name string) (*entity.Character, error) {
	return s.memory.GetCharacter(ctx, name)
}

func (s *Service) UpdateCharacter(ctx context.Context, name string, upd repository.CharacterUpdate) (*entity.Character, error) {
	return s.memory.UpdateCharacter(ctx, name, upd)
}

func (s *Service) DeleteCharacter(ctx context.Context, name string) error {
	return s.memory.DeleteCharacter(ctx, name)
}

func (s *Service) ListCharacters(ctx context.Context) ([]*entity.Character, error) {
	return s.memory.ListCharacters(ctx)
}

func (s *Service) SearchCharactersByTrait(ctx context.Context, trait string) ([]*entity.Character, error) {
	return s.memory.SearchByTrait(ctx, trait)
}

func (s *Service) CharacterStatistics(ctx context.Context) (*repository.CharacterStatistics, error) {
	return s.memory.Statistics(ctx)
}

// AddAppearance records a story appearance and returns the updated
// character.
func (s *Service) AddAppearance(ctx context.Context, name, appearance string) (*entity.Character, error) {
	if err := s.memory.AddAppearance(ctx, name, appearance); err != nil {
		return nil, err
	}
	return s.memory.GetCharacter(ctx, name)
}

// AddDevelopment records a development note and returns the updated
// character.
func (s *Service) AddDevelopment(ctx context.Context, name, note string) (*entity.Character, error) {
	if err := s.memory.AddDevelopment(ctx, name, note); err != nil {
		return nil, err
	}
	return s.memory.GetCharacter(ctx, name)
}

// ConversationSnapshot is the conversation view: the structured turns
// plus the rendered recent window.
type ConversationSnapshot struct {
	Turns              []entity.ConversationTurn
	TotalMessages      int
	RecentConversation string
}

func (s *Service) Conversation(ctx context.Context) (*ConversationSnapshot, error) {
	turns, err := s.memory.Conversation(ctx)
	if err != nil {
		return nil, err
	}
	return &ConversationSnapshot{
		Turns:              turns,
		TotalMessages:      len(turns),
		RecentConversation: renderRecentConversation(turns, recentConversationWindow),
	}, nil
}

func (s *Service) ClearConversation(ctx context.Context) error {
	return s.memory.ClearConversation(ctx)
}

// renderRecentConversation renders the last n turns the way the UI
// displays them.
func renderRecentConversation(turns []entity.ConversationTurn, n int) string {
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case entity.RoleUser:
			lines = append(lines, "ユーザー: "+t.Content)
		case entity.RoleAssistant:
			lines = append(lines, "AI: "+t.Content)
		}
	}
	return strings.Join(lines, "\n")
}
