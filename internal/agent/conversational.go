package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/siteflow/orderbot/internal/domain"
)

// ConversationalAgent generates the user-facing reply. It never touches
// structured data.
type ConversationalAgent struct {
	client *Client
}

func NewConversationalAgent(client *Client) *ConversationalAgent {
	return &ConversationalAgent{client: client}
}

// recentContextTurns bounds how much history the conversational prompt carries.
const recentContextTurns = 10

func buildConversationContext(userText string, history []domain.Turn) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Conversation history:\n")
		recent := history
		if len(recent) > recentContextTurns {
			recent = recent[len(recent)-recentContextTurns:]
		}
		for _, turn := range recent {
			role := "User"
			if turn.Role == domain.RoleAssistant {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, turn.Content)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Current user message: %s", userText)
	return b.String()
}

func (a *ConversationalAgent) Respond(ctx context.Context, userText string, history []domain.Turn) (*domain.ConversationalResult, error) {
	start := time.Now()

	input := buildConversationContext(userText, history)
	slog.Info("generating conversational response",
		"context_len", len(input),
		"history_len", len(history),
	)

	message, err := a.client.Complete(ctx, ConversationalSystemPrompt, input)
	if err != nil {
		return nil, fmt.Errorf("conversational agent: %w", err)
	}
	message = strings.TrimSpace(message)

	return &domain.ConversationalResult{
		Message:          message,
		Confidence:       responseConfidence(message),
		ProcessingTime:   time.Since(start).Milliseconds(),
		RequiresFollowUp: requiresFollowUp(message),
	}, nil
}

// responseConfidence scores the generated reply from simple surface signals.
func responseConfidence(message string) float64 {
	confidence := 0.7
	lower := strings.ToLower(message)

	if strings.Contains(lower, "summary") {
		confidence += 0.1
	}
	if strings.Contains(lower, "ok") && strings.Contains(lower, "confirm") {
		confidence += 0.15
	}
	if strings.ContainsAny(message, "\U0001F60A\U0001F3D7\U0001F4E6⏰✅") {
		confidence += 0.05
	}
	if len(message) > 500 {
		confidence -= 0.1
	}
	if strings.Contains(lower, "i can't") || strings.Contains(lower, "sorry") {
		confidence -= 0.2
	}

	if confidence > 1.0 {
		return 1.0
	}
	if confidence < 0.1 {
		return 0.1
	}
	return confidence
}

func requiresFollowUp(message string) bool {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "just reply 'ok'") || strings.Contains(lower, `just reply "ok"`) {
		return true
	}
	if strings.Contains(message, "?") {
		return true
	}
	return false
}
