package chatclient

import "github.com/portfolio-chat/relay/internal/models"

// History is the ordered list of turns for one client session. It lives only
// as long as the session.
type History struct {
	turns []models.ChatMessage
}

func (h *History) Append(role, content string) {
	h.turns = append(h.turns, models.ChatMessage{Role: role, Content: content})
}

// Last returns a copy of the most recent n turns, oldest first.
func (h *History) Last(n int) []models.ChatMessage {
	if n <= 0 {
		return []models.ChatMessage{}
	}
	start := 0
	if len(h.turns) > n {
		start = len(h.turns) - n
	}
	out := make([]models.ChatMessage, len(h.turns)-start)
	copy(out, h.turns[start:])
	return out
}

// Turns returns a copy of every turn.
func (h *History) Turns() []models.ChatMessage {
	out := make([]models.ChatMessage, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h *History) Len() int {
	return len(h.turns)
}
