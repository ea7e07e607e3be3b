package prompt

import "github.com/portfolio-chat/relay/internal/models"

// MaxHistoryTurns is the conversation window forwarded upstream.
const MaxHistoryTurns = 10

// TrimHistory returns a copy of the last n turns, oldest first.
func TrimHistory(history []models.ChatMessage, n int) []models.ChatMessage {
	if n <= 0 || len(history) == 0 {
		return []models.ChatMessage{}
	}
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	out := make([]models.ChatMessage, len(history)-start)
	copy(out, history[start:])
	return out
}

// Assemble builds the final message list: system + history window + user.
func Assemble(system string, history []models.ChatMessage, message string) []models.ChatMessage {
	window := TrimHistory(history, MaxHistoryTurns)

	messages := make([]models.ChatMessage, 0, 1+len(window)+1)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: system})
	for _, turn := range window {
		messages = append(messages, models.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: message})
	return messages
}
