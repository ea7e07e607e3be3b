package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-chat/relay/internal/models"
	"github.com/portfolio-chat/relay/internal/prompt"
)

// DefaultLanguage applies when a request carries no language hint.
const DefaultLanguage = "en"

// RelayService rebuilds the system prompt for each request and forwards the
// conversation to the completion provider. It keeps no state between calls.
type RelayService struct {
	completer Completer
	logger    zerolog.Logger
}

func NewRelayService(completer Completer, logger zerolog.Logger) *RelayService {
	return &RelayService{
		completer: completer,
		logger:    logger,
	}
}

// Chat answers one chat request.
func (s *RelayService) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrMissingMessage
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = DefaultLanguage
	}

	system := prompt.BuildSystemPrompt(req.Context, language)
	messages := prompt.Assemble(system, req.History, req.Message)

	logger := s.loggerFor(ctx)
	start := time.Now()

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		event := logger.Error().Err(err)
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			event = event.Int("upstream_status", upstream.StatusCode)
		}
		event.Dur("duration", time.Since(start)).Msg("Completion call failed")
		return "", err
	}

	logger.Info().
		Str("language", language).
		Int("history_turns", len(messages)-2).
		Int("reply_chars", len(reply)).
		Dur("duration", time.Since(start)).
		Msg("Completion call succeeded")

	return reply, nil
}

// loggerFor prefers the request-scoped logger installed by the HTTP middleware.
func (s *RelayService) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
