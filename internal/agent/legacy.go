package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/siteflow/orderbot/internal/domain"
)

// LegacyAgent is the single-call responder kept as the fallback when the
// dual-agent dispatch fails.
type LegacyAgent struct {
	client *Client
}

func NewLegacyAgent(client *Client) *LegacyAgent {
	return &LegacyAgent{client: client}
}

func (a *LegacyAgent) Ask(ctx context.Context, userText, systemPrompt string, history []domain.Turn) (string, error) {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Conversation history:\n")
		for _, turn := range history {
			role := "User"
			if turn.Role == domain.RoleAssistant {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, turn.Content)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Current user message: %s", userText)

	reply, err := a.client.Complete(ctx, systemPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("legacy agent: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
