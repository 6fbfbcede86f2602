package file

import (
	"context"
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

// memoryState is the on-disk layout of the character memory file.
type memoryState struct {
	Characters   map[string]*entity.Character `json:"characters"`
	Conversation []entity.ConversationTurn    `json:"conversation"`
	LastUpdated  time.Time                    `json:"last_updated"`
}

// MemoryStore persists characters and conversation history in one JSON file.
type MemoryStore struct {
	mu    sync.RWMutex
	path  string
	chars map[string]*entity.Character
	order []string
	turns []entity.ConversationTurn
}

var _ repository.MemoryRepository = (*MemoryStore)(nil)

// NewMemoryStore opens the store at path, creating the file when missing.
// When the existing file is corrupt the store starts empty and a
// persistence corruption error is returned next to the usable store.
func NewMemoryStore(path string) (*MemoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodePersistenceFailed, "failed to create data directory").WithDetail(path)
	}

	s := &MemoryStore{
		path:  path,
		chars: map[string]*entity.Character{},
		turns: []entity.ConversationTurn{},
	}

	var st memoryState
	err := readState(path, &st)
	switch {
	case err == nil:
		if st.Characters != nil {
			s.chars = st.Characters
		}
		if st.Conversation != nil {
			s.turns = st.Conversation
		}
		s.rebuildOrder()
		return s, nil
	case os.IsNotExist(err):
		// First run: write the initial empty state.
		if werr := s.persist(); werr != nil {
			return s, werr
		}
		return s, nil
	default:
		// Corrupt content: start empty, report the recovery.
		return s, err
	}
}

// rebuildOrder restores insertion order from creation timestamps.
func (s *MemoryStore) rebuildOrder() {
	s.order = s.order[:0]
	for name := range s.chars {
		s.order = append(s.order, name)
	}
	sort.SliceStable(s.order, func(i, j int) bool {
		a, b := s.chars[s.order[i]], s.chars[s.order[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	})
}

// persist rewrites the state file. The caller must hold the write lock.
func (s *MemoryStore) persist() error {
	st := memoryState{
		Characters:   s.chars,
		Conversation: s.turns,
		LastUpdated:  time.Now(),
	}
	return writeState("memory", s.path, &st)
}

func (s *MemoryStore) AddCharacter(ctx context.Context, ch *entity.Character) error {
	_, span := tracer.Start(ctx, "file.MemoryStore.AddCharacter")
	defer span.End()

	if ch == nil || strings.TrimSpace(ch.Name) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "character name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chars[ch.Name]; ok {
		return apperrors.New(apperrors.CodeCharacterExists, "character already exists").WithDetail(ch.Name)
	}

	cp := ch.Clone()
	now := time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now

	s.chars[cp.Name] = cp
	s.order = append(s.order, cp.Name)

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *MemoryStore) GetCharacter(ctx context.Context, name string) (*entity.Character, error) {
	_, span := tracer.Start(ctx, "file.MemoryStore.GetCharacter")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, ok := s.chars[name]
	if !ok {
		return nil, apperrors.New(apperrors.CodeCharacterNotFound, "character not found").WithDetail(name)
	}
	return ch.Clone(), nil
}

func (s *MemoryStore) UpdateCharacter(ctx context.Context, name string, upd repository.CharacterUpdate) (*entity.Character, error) {
	_, span := tracer.Start(ctx, "file.MemoryStore.UpdateCharacter")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.chars[name]
	if !ok {
		return nil, apperrors.New(apperrors.CodeCharacterNotFound, "character not found").WithDetail(name)
	}

	if upd.Description != nil {
		ch.Description = *upd.Description
	}
	if upd.Traits != nil {
		ch.Traits = append([]string(nil), upd.Traits...)
	}
	if upd.Background != nil {
		ch.Background = *upd.Background
	}
	if upd.Relationships != nil {
		ch.Relationships = make(map[string]string, len(upd.Relationships))
		for k, v := range upd.Relationships {
			ch.Relationships[k] = v
		}
	}
	ch.UpdatedAt = time.Now()

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return ch.Clone(), nil
}

func (s *MemoryStore) DeleteCharacter(ctx context.Context, name string) error {
	_, span := tracer.Start(ctx, "file.MemoryStore.DeleteCharacter")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chars[name]; !ok {
		return apperrors.New(apperrors.CodeCharacterNotFound, "character not found").WithDetail(name)
	}

	delete(s.chars, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *MemoryStore) ListCharacters(ctx context.Context) ([]*entity.Character, error) {
	_, span := tracer.Start(ctx, "file.MemoryStore.ListCharacters")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Character, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.chars[name].Clone())
	}
	return out, nil
}

func (s *MemoryStore) AddAppearance(ctx context.Context, name, appearance string) error {
	_, span := tracer.Start(ctx, "file.MemoryStore.AddAppearance")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.chars[name]
	if !ok {
		return apperrors.New(apperrors.CodeCharacterNotFound, "character not found").WithDetail(name)
	}
	ch.StoryAppearances = append(ch.StoryAppearances, appearance)
	ch.UpdatedAt = time.Now()

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *MemoryStore) AddDevelopment(ctx context.Context, name, note string) error {
	_, span := tracer.Start(ctx, "file.MemoryStore.AddDevelopment")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.chars[name]
	if !ok {
		return apperrors.New(apperrors.CodeCharacterNotFound, "character not found").WithDetail(name)
	}
	ch.DevelopmentHistory = append(ch.DevelopmentHistory, note)
	ch.UpdatedAt = time.Now()

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *MemoryStore) SearchByTrait(ctx context.Context, trait string) ([]*entity.Character, error) {
	_, span := tracer.Start(ctx, "file.MemoryStore.SearchByTrait")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.TrimSpace(trait)
	var out []*entity.Character
	for _, name := range s.order {
		ch := s.chars[name]
		for _, t := range ch.Traits {
			if strings.EqualFold(t, needle) {
				out = append(out, ch.Clone())
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) Statistics(ctx context.Context) (*repository.CharacterStatistics, error) {
	_, span := tracer.Start(ctx, "file.MemoryStore.Statistics")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &repository.CharacterStatistics{
		TotalCharacters: len(s.chars),
		TraitFrequency:  map[string]int{},
	}
	for _, ch := range s.chars {
		stats.TotalAppearances += len(ch.StoryAppearances)
		if len(ch.Relationships) > 0 {
			stats.WithRelationships++
		}
		for _, t := range ch.Traits {
			stats.TraitFrequency[t]++
		}
	}
	return stats, nil
}

func (s *MemoryStore) AppendTurn(ctx context.Context, turn entity.ConversationTurn) error {
	_, span := tracer.Start(ctx, "file.MemoryStore.AppendTurn")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (s *MemoryStore) Conversation(ctx context.Context) ([]entity.ConversationTurn, error) {
	_, span := tracer.Start(ctx, "file.MemoryStore.Conversation")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

func (s *MemoryStore) ClearConversation(ctx context.Context) error {
	_, span := tracer.Start(ctx, "file.MemoryStore.ClearConversation")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = []entity.ConversationTurn{}

	if err := s.persist(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
