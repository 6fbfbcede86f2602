// Package prompt holds the embedded genre templates and their registry.
package prompt

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"plotweaver/internal/domain/entity"
	apperrors "plotweaver/pkg/errors"
)

//go:embed templates/*.txt
var templatesFS embed.FS

// Registry resolves the prompt template for a genre. Templates are
// embedded at build time, parsed on first use and cached after that.
type Registry struct {
	mu    sync.RWMutex
	cache map[entity.Genre]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[entity.Genre]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(genre entity.Genre) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[genre]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[genre]; ok {
		return tpl, nil
	}

	path, err := resolveTemplateFile(genre)
	if err != nil {
		return nil, err
	}
	text, err := readEmbeddedText(path)
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(schema.FString, schema.UserMessage(text))
	r.cache[genre] = tpl
	return tpl, nil
}

// Render fills the genre template with the request text and the
// character memory block and returns the composed prompt.
func (r *Registry) Render(ctx context.Context, genre entity.Genre, userInput, characterMemory string) (string, error) {
	tpl, err := r.ChatTemplate(genre)
	if err != nil {
		return "", err
	}

	msgs, err := tpl.Format(ctx, map[string]any{
		"user_input":       userInput,
		"character_memory": characterMemory,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternalError, "failed to render genre template")
	}
	if len(msgs) == 0 {
		return "", apperrors.New(apperrors.CodeInternalError, "genre template rendered no messages")
	}
	return msgs[0].Content, nil
}

func resolveTemplateFile(genre entity.Genre) (string, error) {
	switch genre {
	case entity.GenreFantasy:
		return "templates/fantasy.txt", nil
	case entity.GenreRomance:
		return "templates/romance.txt", nil
	case entity.GenreMystery:
		return "templates/mystery.txt", nil
	case entity.GenreSciFi:
		return "templates/sci_fi.txt", nil
	case entity.GenreHorror:
		return "templates/horror.txt", nil
	case entity.GenreSliceOfLife:
		return "templates/slice_of_life.txt", nil
	case entity.GenreAdventure:
		return "templates/adventure.txt", nil
	default:
		return "", apperrors.New(apperrors.CodeUnknownGenre, "unknown genre").WithDetail(string(genre))
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
