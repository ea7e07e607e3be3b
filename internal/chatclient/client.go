// Package chatclient is the conversation side of the portfolio chat: it keeps
// the session history, builds relay requests from the site profile and shows
// replies in a transcript.
package chatclient

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/portfolio-chat/relay/internal/models"
	"github.com/portfolio-chat/relay/internal/prompt"
	"github.com/portfolio-chat/relay/internal/site"
)

const (
	FallbackMessage = "Sorry, I couldn't connect to the AI. Please check the setup. ⚠️"
	NoResponse      = "No response."
)

type relaySender interface {
	Send(ctx context.Context, req models.ChatRequest) (string, error)
}

// Client runs one conversation session against the relay.
type Client struct {
	mu         sync.Mutex
	site       *site.Site
	relay      relaySender
	transcript Transcript
	history    History
	logger     zerolog.Logger
}

func NewClient(s *site.Site, relay relaySender, transcript Transcript, logger zerolog.Logger) *Client {
	return &Client{
		site:       s,
		relay:      relay,
		transcript: transcript,
		logger:     logger,
	}
}

// SendMessage submits one user message. Blank input is ignored. On failure the
// user turn stays in history, the transcript shows FallbackMessage and the
// error is returned. Calls are serialized.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.history.Append(models.RoleUser, text)
	window := c.history.Last(prompt.MaxHistoryTurns)
	c.transcript.AppendUser(text)
	c.transcript.ShowTyping()

	req := models.ChatRequest{
		Message:  text,
		History:  window,
		Context:  c.site.BuildContext(),
		Language: LanguageHint(c.site.Chatbot.Language, c.site.Chatbot.Bilingual, text),
	}

	reply, err := c.relay.Send(ctx, req)
	c.transcript.RemoveTyping()
	if err != nil {
		c.logger.Error().Err(err).Int("history_turns", len(window)).Msg("Chat request failed")
		c.transcript.AppendAssistant(FallbackMessage)
		return err
	}

	if strings.TrimSpace(reply) == "" {
		reply = NoResponse
	}
	c.history.Append(models.RoleAssistant, reply)
	c.transcript.AppendAssistant(reply)
	return nil
}

// History returns a copy of the session's turns.
func (c *Client) History() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Turns()
}
