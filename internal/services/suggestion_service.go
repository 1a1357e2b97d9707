package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/generation"
)

const descriptionPromptTemplate = `Based on the task title "%s", generate a helpful and structured task description template.
The user wants to post a hyperlocal delivery task.
The description should be a template that the user can easily fill out.
Include prompts for essential details like:
- Item Details (e.g., dimensions, weight, fragility)
- Pickup Location (e.g., specific address, contact person)
- Drop-off Location (e.g., specific address, contact person)
- Deadline or Time Window
Keep it concise and formatted as plain text with clear sections.`

func DescriptionPrompt(title string) string {
	return fmt.Sprintf(descriptionPromptTemplate, title)
}

type suggestionServiceImpl struct {
	logger    zerolog.Logger
	generator generation.Generator
}

func NewSuggestionService(
	logger zerolog.Logger,
	generator generation.Generator,
) SuggestionService {
	return &suggestionServiceImpl{
		logger:    logger,
		generator: generator,
	}
}

func (s *suggestionServiceImpl) SuggestDescription(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", newValidationError("Task title is required.")
	}

	suggestion, err := s.generator.Generate(ctx, DescriptionPrompt(title))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("title", title).
			Msg("failed to get suggestion")
		return "", fmt.Errorf("%w: %w", ErrSuggestionFailed, err)
	}

	s.logger.Debug().
		Int("length", len(suggestion)).
		Msg("got suggestion")
	return suggestion, nil
}
