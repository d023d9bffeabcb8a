package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/siteflow/orderbot/internal/domain"
)

// ExtractionAgent silently derives structured order fields from the
// conversation. It never talks to the user.
type ExtractionAgent struct {
	client *Client
}

func NewExtractionAgent(client *Client) *ExtractionAgent {
	return &ExtractionAgent{client: client}
}

func buildAnalysisContext(userText string, history []domain.Turn) string {
	var b strings.Builder
	b.WriteString("CONVERSATION TO ANALYZE:\n\n")
	for _, turn := range history {
		role := "USER"
		if turn.Role == domain.RoleAssistant {
			role = "ASSISTANT"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, turn.Content)
	}
	fmt.Fprintf(&b, "USER: %s\n\nEXTRACT THE DATA AS JSON ONLY:", userText)
	return b.String()
}

// stripFences removes a markdown code fence the model sometimes wraps its
// JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// Analyze runs the extraction prompt over the conversation and validates the
// returned payload. A provider failure returns a non-nil error; a payload
// that merely fails to parse or validate degrades to an invalid zero result.
func (a *ExtractionAgent) Analyze(ctx context.Context, userText string, history []domain.Turn) (*domain.ExtractionResponse, error) {
	start := time.Now()

	input := buildAnalysisContext(userText, history)
	slog.Info("analyzing conversation for extraction",
		"context_len", len(input),
		"history_len", len(history),
	)

	reply, err := a.client.Complete(ctx, ExtractionSystemPrompt, input)
	if err != nil {
		return nil, fmt.Errorf("extraction agent: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(stripFences(reply)), &payload); err != nil {
		slog.Error("extraction reply is not valid JSON",
			"error", err,
			"reply_preview", preview(reply, 200),
		)
		return &domain.ExtractionResponse{
			Errors:         []string{"extraction reply was not valid JSON"},
			Valid:          false,
			ProcessingTime: time.Since(start).Milliseconds(),
		}, nil
	}

	data, errs := ValidateExtraction(payload)

	slog.Info("extraction completed",
		"completeness", data.Completeness,
		"materials", len(data.Materials),
		"validation_errors", len(errs),
	)

	return &domain.ExtractionResponse{
		Data:           data,
		Errors:         errs,
		Valid:          len(errs) == 0,
		ProcessingTime: time.Since(start).Milliseconds(),
	}, nil
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
