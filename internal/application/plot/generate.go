package plot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plotweaver/internal/domain/entity"
	"plotweaver/internal/infrastructure/inference"
	apperrors "plotweaver/pkg/errors"
	"plotweaver/pkg/logger"
	"plotweaver/pkg/metrics"
)

// Sampling ladder for multi-variant generation.
const (
	defaultVariantCount = 3
	maxVariantCount     = 5
	variantMaxTokens    = 400
	variantBaseTemp     = 0.6
	variantTempStep     = 0.1
)

// GenerateInput is a single plot generation request.
type GenerateInput struct {
	Prompt         string
	Genre          entity.Genre
	CharacterNames []string
	MaxTokens      int
	Temperature    *float64
}

// GenerateResult carries the generated text with its provenance.
type GenerateResult struct {
	Text       string
	Genre      entity.Genre
	MemoryUsed bool
	ModelPath  string
}

// GeneratePlot renders the genre template with the requested character
// memory and runs one completion. The exchange is appended to the
// conversation history before returning.
func (s *Service) GeneratePlot(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	ctx, span := tracer.Start(ctx, "plot.GeneratePlot")
	defer span.End()

	genre, err := resolveGenre(in.Genre)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "prompt must not be empty")
	}
	if !s.engine.Ready(ctx) {
		return nil, apperrors.New(apperrors.CodeEngineNotReady, "inference engine not ready")
	}

	chars, err := s.resolveCharacters(ctx, in.CharacterNames)
	if err != nil {
		return nil, err
	}
	memory := buildCharacterMemory(chars)

	rendered, err := s.registry.Render(ctx, genre, in.Prompt, memory)
	if err != nil {
		return nil, err
	}

	text, err := s.complete(ctx, string(genre), rendered, inference.Params{
		MaxTokens:   in.MaxTokens,
		Temperature: s.temperature(in.Temperature),
	})
	if err != nil {
		return nil, err
	}

	if err := s.recordExchange(ctx, in.Prompt, text); err != nil {
		return nil, err
	}

	return &GenerateResult{
		Text:       text,
		Genre:      genre,
		MemoryUsed: memory != noCharacterMemory,
		ModelPath:  s.engine.Info(ctx).Path,
	}, nil
}

// Variant is one sample of a multi-variant generation.
type Variant struct {
	Variation   int
	Response    string
	Temperature float64
}

// VariantsInput is a multi-variant generation request.
type VariantsInput struct {
	Prompt         string
	Genre          entity.Genre
	CharacterNames []string
	Count          int
}

// VariantsResult carries the variants that generated successfully.
type VariantsResult struct {
	Variants []Variant
	Genre    entity.Genre
}

// GenerateVariants samples Count independent completions of the same
// request, stepping the temperature up per variant for diversity. A
// failed variant is skipped; the call fails only when every variant
// fails. One exchange (the request plus the first successful variant)
// lands in the conversation history.
func (s *Service) GenerateVariants(ctx context.Context, in VariantsInput) (*VariantsResult, error) {
	ctx, span := tracer.Start(ctx, "plot.GenerateVariants")
	defer span.End()

	genre, err := resolveGenre(in.Genre)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "prompt must not be empty")
	}
	count := in.Count
	if count == 0 {
		count = defaultVariantCount
	}
	if count < 1 || count > maxVariantCount {
		return nil, apperrors.Newf(apperrors.CodeInvalidParam, "num_variations must be between 1 and %d", maxVariantCount)
	}
	if !s.engine.Ready(ctx) {
		return nil, apperrors.New(apperrors.CodeEngineNotReady, "inference engine not ready")
	}

	chars, err := s.resolveCharacters(ctx, in.CharacterNames)
	if err != nil {
		return nil, err
	}
	memory := buildCharacterMemory(chars)

	variants := make([]Variant, 0, count)
	var lastErr error
	for i := 0; i < count; i++ {
		temp := variantBaseTemp + variantTempStep*float64(i)
		input := fmt.Sprintf("%s (バリエーション%d)", in.Prompt, i+1)

		rendered, err := s.registry.Render(ctx, genre, input, memory)
		if err != nil {
			return nil, err
		}

		text, err := s.complete(ctx, string(genre), rendered, inference.Params{
			MaxTokens:   variantMaxTokens,
			Temperature: temp,
		})
		if err != nil {
			logger.Warn(ctx, "variant generation failed",
				"variation", i+1,
				"error", err.Error(),
			)
			lastErr = err
			continue
		}

		variants = append(variants, Variant{
			Variation:   i + 1,
			Response:    text,
			Temperature: temp,
		})
	}

	if len(variants) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, apperrors.New(apperrors.CodeInferenceFailed, "all variants failed")
	}

	if err := s.recordExchange(ctx, in.Prompt, variants[0].Response); err != nil {
		return nil, err
	}

	return &VariantsResult{Variants: variants, Genre: genre}, nil
}

// complete runs one completion under the engine semaphore, retrying
// once on inference failure when configured. The semaphore keeps a
// single call in flight; the model context is not reentrant.
func (s *Service) complete(ctx context.Context, label, prompt string, p inference.Params) (string, error) {
	queued := time.Now()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInferenceFailed, "request cancelled while queued")
	}
	defer s.sem.Release(1)
	metrics.GenerationQueueWait.Observe(time.Since(queued).Seconds())

	logger.Debug(ctx, "running completion",
		"label", label,
		"prompt_tokens_estimate", countTokens(prompt),
		"max_tokens", p.MaxTokens,
	)

	start := time.Now()
	text, err := s.engine.Generate(ctx, prompt, p)
	if err != nil && s.cfg.RetryOnce && apperrors.IsCode(err, apperrors.CodeInferenceFailed) {
		logger.Warn(ctx, "completion failed, retrying once", "label", label, "error", err.Error())
		text, err = s.engine.Generate(ctx, prompt, p)
	}
	metrics.GenerationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(label, "error").Inc()
		return "", err
	}
	metrics.GenerationTotal.WithLabelValues(label, "success").Inc()
	return text, nil
}

// resolveGenre applies the fantasy default and validates the key.
func resolveGenre(g entity.Genre) (entity.Genre, error) {
	if g == "" {
		return entity.GenreFantasy, nil
	}
	if !g.Valid() {
		return "", apperrors.Newf(apperrors.CodeUnknownGenre, "unknown genre %q", g)
	}
	return g, nil
}

// resolveCharacters loads every requested character. A missing name
// fails the whole request.
func (s *Service) resolveCharacters(ctx context.Context, names []string) ([]*entity.Character, error) {
	if len(names) == 0 {
		return nil, nil
	}
	chars := make([]*entity.Character, 0, len(names))
	for _, name := range names {
		ch, err := s.memory.GetCharacter(ctx, name)
		if err != nil {
			return nil, err
		}
		chars = append(chars, ch)
	}
	return chars, nil
}

// temperature resolves an optional request temperature against the
// configured default. Zero is a valid explicit choice.
func (s *Service) temperature(t *float64) float64 {
	if t == nil {
		return s.cfg.Temperature
	}
	return *t
}

// recordExchange appends the user and assistant turns write-through.
func (s *Service) recordExchange(ctx context.Context, userInput, response string) error {
	if err := s.memory.AppendTurn(ctx, entity.NewConversationTurn(entity.RoleUser, userInput)); err != nil {
		return err
	}
	return s.memory.AppendTurn(ctx, entity.NewConversationTurn(entity.RoleAssistant, response))
}
