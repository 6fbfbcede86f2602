package plot

import (
	"context"
	"strings"

	"plotweaver/internal/domain/entity"
	"plotweaver/internal/infrastructure/inference"
	apperrors "plotweaver/pkg/errors"
	"plotweaver/pkg/logger"
)

const advancedDefaultMaxTokens = 1000

// Context block kinds in prompt order. World drops first under token
// pressure, then story; the chapter plan and character memory are never
// dropped.
const (
	contextWorld   = "world"
	contextStory   = "story"
	contextChapter = "chapter"
	contextMemory  = "character_memory"
)

// AdvancedInput is a context-integrated generation request. The
// assembled world, story and character state stands in for a genre
// template.
type AdvancedInput struct {
	Prompt        string
	StoryID       string
	ChapterNumber int
	// SceneIndex is accepted for wire compatibility and unused.
	SceneIndex         int
	UseWorldContext    bool
	UseCharacterMemory bool
	MaxTokens          int
	Temperature        *float64
}

// ContextUsed reports which blocks made it into the prompt after
// assembly and window budgeting, not which were requested.
type ContextUsed struct {
	World           bool
	Story           bool
	Chapter         bool
	CharacterMemory bool
}

// AdvancedResult carries the generated text and its context report.
type AdvancedResult struct {
	Text        string
	ContextUsed ContextUsed
	ModelPath   string
}

type contextBlock struct {
	kind string
	text string
}

// GenerateAdvanced assembles world, story, chapter and character
// context around the writing instruction and runs one completion.
// Nothing is appended to the conversation history.
func (s *Service) GenerateAdvanced(ctx context.Context, in AdvancedInput) (*AdvancedResult, error) {
	ctx, span := tracer.Start(ctx, "plot.GenerateAdvanced")
	defer span.End()

	if strings.TrimSpace(in.Prompt) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "prompt must not be empty")
	}
	if !s.engine.Ready(ctx) {
		return nil, apperrors.New(apperrors.CodeEngineNotReady, "inference engine not ready")
	}

	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = advancedDefaultMaxTokens
	}

	blocks, err := s.assembleContext(ctx, in)
	if err != nil {
		return nil, err
	}

	prompt, used := composeAdvancedPrompt(blocks, in.Prompt)
	if window := s.cfg.ContextWindow; window > 0 {
		for _, kind := range []string{contextWorld, contextStory} {
			if countTokens(prompt)+maxTokens <= window {
				break
			}
			var dropped bool
			if blocks, dropped = dropBlock(blocks, kind); dropped {
				logger.Warn(ctx, "context block dropped to fit the model window", "block", kind)
				prompt, used = composeAdvancedPrompt(blocks, in.Prompt)
			}
		}
	}

	text, err := s.complete(ctx, "advanced", prompt, inference.Params{
		MaxTokens:   maxTokens,
		Temperature: s.temperature(in.Temperature),
	})
	if err != nil {
		return nil, err
	}

	return &AdvancedResult{
		Text:        text,
		ContextUsed: used,
		ModelPath:   s.engine.Info(ctx).Path,
	}, nil
}

// assembleContext gathers the requested context blocks in prompt order:
// world, story, current chapter, character memory. A story id naming a
// missing story fails rather than silently omitting the block.
func (s *Service) assembleContext(ctx context.Context, in AdvancedInput) ([]contextBlock, error) {
	var blocks []contextBlock

	if in.UseWorldContext {
		settings, err := s.world.ListSettings(ctx, "")
		if err != nil {
			return nil, err
		}
		events, err := s.world.ListEvents(ctx, 0)
		if err != nil {
			return nil, err
		}
		threads, err := s.world.ListThreads(ctx, entity.PlotActive)
		if err != nil {
			return nil, err
		}
		if text := buildWorldContext(settings, events, threads); text != "" {
			blocks = append(blocks, contextBlock{kind: contextWorld, text: text})
		}
	}

	if in.StoryID != "" {
		st, err := s.stories.GetStory(ctx, in.StoryID)
		if err != nil {
			return nil, err
		}
		if text := buildStoryContext(st); text != "" {
			blocks = append(blocks, contextBlock{kind: contextStory, text: text})
		}
		// The chapter number only toggles the block; the chapter
		// rendered is always the one currently being written.
		if in.ChapterNumber != 0 {
			if text := buildChapterContext(st); text != "" {
				blocks = append(blocks, contextBlock{kind: contextChapter, text: text})
			}
		}
	}

	if in.UseCharacterMemory {
		chars, err := s.memory.ListCharacters(ctx)
		if err != nil {
			return nil, err
		}
		if text := buildCharacterMemory(chars); text != noCharacterMemory {
			blocks = append(blocks, contextBlock{kind: contextMemory, text: "=== キャラクター情報 ===\n" + text})
		}
	}

	return blocks, nil
}

func composeAdvancedPrompt(blocks []contextBlock, instruction string) (string, ContextUsed) {
	parts := make([]string, 0, len(blocks))
	var used ContextUsed
	for _, b := range blocks {
		parts = append(parts, b.text)
		switch b.kind {
		case contextWorld:
			used.World = true
		case contextStory:
			used.Story = true
		case contextChapter:
			used.Chapter = true
		case contextMemory:
			used.CharacterMemory = true
		}
	}
	return buildAdvancedPrompt(strings.Join(parts, "\n\n"), instruction), used
}

func dropBlock(blocks []contextBlock, kind string) ([]contextBlock, bool) {
	for i, b := range blocks {
		if b.kind == kind {
			return append(blocks[:i:i], blocks[i+1:]...), true
		}
	}
	return blocks, false
}
