package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/siteflow/orderbot/internal/agent"
	"github.com/siteflow/orderbot/internal/config"
	"github.com/siteflow/orderbot/internal/domain"
	"github.com/siteflow/orderbot/internal/session"
	"github.com/siteflow/orderbot/internal/whatsapp"
)

// Responder produces the user-facing reply for one inbound message.
type Responder interface {
	Respond(ctx context.Context, userText string, history []domain.Turn) (*domain.ConversationalResult, error)
}

// Extractor derives structured order fields from the same inbound message.
type Extractor interface {
	Analyze(ctx context.Context, userText string, history []domain.Turn) (*domain.ExtractionResponse, error)
}

// LegacyResponder is the single-call degraded mode used when the dual
// dispatch fails.
type LegacyResponder interface {
	Ask(ctx context.Context, userText, systemPrompt string, history []domain.Turn) (string, error)
}

// OrderStore persists shaped orders.
type OrderStore interface {
	SaveOrder(ctx context.Context, order *domain.Order) error
	OrdersBySite(ctx context.Context, site string) ([]domain.Order, error)
}

const (
	// ApologyMessage is the fixed user-facing reply when both the dual
	// dispatch and the legacy fallback fail.
	ApologyMessage = "❌ Sorry, I'm temporarily unable to process your request. Please try again in a few moments."

	helpMessage = `🤖 *Site Materials Assistant*

*Commands:*
• Just send your message to place or continue an order
• /reset - clears the conversation history
• /help - shows this help

*What I do:*
• Take material orders for your construction site
• Remember the conversation for up to 2 hours
• Ask for anything that's missing, then confirm with you

Tell me what you need!`

	resetMessage = "✅ Conversation history cleared. Starting fresh!"
)

// Orchestrator runs the dual-agent pipeline for every inbound message.
type Orchestrator struct {
	sessions  *session.Store
	responder Responder
	extractor Extractor
	legacy    LegacyResponder
	orders    OrderStore
	timeout   time.Duration
}

// Deps contains everything an Orchestrator needs.
type Deps struct {
	Sessions  *session.Store
	Responder Responder
	Extractor Extractor
	Legacy    LegacyResponder
	Orders    OrderStore
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{
		sessions:  deps.Sessions,
		responder: deps.Responder,
		extractor: deps.Extractor,
		legacy:    deps.Legacy,
		orders:    deps.Orders,
		timeout:   config.AgentTimeout,
	}
}

// Sessions exposes the session store for transport-level commands.
func (o *Orchestrator) Sessions() *session.Store { return o.sessions }

type convOutcome struct {
	res *domain.ConversationalResult
	err error
}

type extOutcome struct {
	res *domain.ExtractionResponse
	err error
}

// HandleMessage is the single entry point for the routing layer: it runs the
// orchestration for one inbound message and returns the ordered reply
// segments. Sender must already be resolved by the transport layer.
func (o *Orchestrator) HandleMessage(ctx context.Context, sender, text string) ([]string, error) {
	sender = strings.TrimSpace(sender)
	text = strings.TrimSpace(text)
	if sender == "" {
		return nil, domain.ErrMissingSender
	}
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	// Special commands short-circuit the whole orchestration.
	if strings.HasPrefix(text, "/") {
		if reply := o.handleCommand(sender, text); reply != "" {
			slog.Info("special command processed", "sender", sender, "command", text)
			return whatsapp.Chunk(reply, config.MaxChunkLen), nil
		}
	}

	history := o.sessions.History(sender)
	slog.Info("handling inbound message",
		"sender", sender,
		"message_len", len(text),
		"history_len", len(history),
	)

	conv, ext, fallbackUsed, shouldStore := o.dispatch(ctx, sender, text, history)

	// Both turns are appended exactly once per message, regardless of path.
	o.sessions.Append(sender, domain.Turn{Role: domain.RoleUser, Content: text})
	o.sessions.Append(sender, domain.Turn{Role: domain.RoleAssistant, Content: conv.Message})

	if shouldStore && ext.Valid {
		o.storeOrder(ctx, ext.Data, sender)
	} else if ext.Data.Completeness >= config.PendingCompleteness {
		if ext.Data.Confirmed {
			slog.Info("order complete but not confirmed",
				"sender", sender,
				"site", ext.Data.Site,
				"completeness", ext.Data.Completeness,
			)
		} else {
			slog.Info("order incomplete or not ready",
				"sender", sender,
				"site", ext.Data.Site,
				"completeness", ext.Data.Completeness,
			)
		}
	}

	segments := whatsapp.Chunk(conv.Message, config.MaxChunkLen)
	slog.Info("sending reply",
		"sender", sender,
		"reply_len", len(conv.Message),
		"chunks", len(segments),
		"active_sessions", o.sessions.ActiveCount(),
		"fallback_used", fallbackUsed,
		"confidence", conv.Confidence,
		"completeness", ext.Data.Completeness,
	)
	return segments, nil
}

func (o *Orchestrator) handleCommand(sender, text string) string {
	switch strings.ToLower(strings.Fields(text)[0]) {
	case "/help":
		return helpMessage
	case "/reset":
		o.sessions.Reset(sender)
		return resetMessage
	default:
		return ""
	}
}

// dispatch runs the responder and the extractor concurrently, each raced
// against the agent timeout, and falls back to the legacy path when either
// side fails. It always returns usable results.
func (o *Orchestrator) dispatch(ctx context.Context, sender, text string, history []domain.Turn) (*domain.ConversationalResult, *domain.ExtractionResponse, bool, bool) {
	start := time.Now()

	// Buffered so the abandoned loser of the timeout race can still
	// complete and be discarded; its call is not cancelled out-of-band and
	// still consumes provider quota.
	convCh := make(chan convOutcome, 1)
	extCh := make(chan extOutcome, 1)

	go func() {
		res, err := o.responder.Respond(ctx, text, history)
		convCh <- convOutcome{res: res, err: err}
	}()
	go func() {
		res, err := o.extractor.Analyze(ctx, text, history)
		extCh <- extOutcome{res: res, err: err}
	}()

	timeout := time.NewTimer(o.timeout)
	defer timeout.Stop()

	var (
		conv              *domain.ConversationalResult
		ext               *domain.ExtractionResponse
		convErr, extErr   error
		convDone, extDone bool
	)
	for !convDone || !extDone {
		select {
		case oc := <-convCh:
			conv, convErr, convDone = oc.res, oc.err, true
		case oe := <-extCh:
			ext, extErr, extDone = oe.res, oe.err, true
		case <-timeout.C:
			if !convDone {
				convErr, convDone = domain.ErrAgentTimeout, true
			}
			if !extDone {
				extErr, extDone = domain.ErrAgentTimeout, true
			}
		}
	}

	if convErr == nil && extErr == nil {
		shouldStore := ext.Data.Completeness >= config.StoreCompleteness &&
			ext.Data.Confirmed && ext.Valid
		slog.Info("dual agent processing completed",
			"sender", sender,
			"confidence", conv.Confidence,
			"completeness", ext.Data.Completeness,
			"extraction_errors", len(ext.Errors),
			"should_store", shouldStore,
			"duration", time.Since(start),
		)
		return conv, ext, false, shouldStore
	}

	slog.Error("dual agent processing failed, falling back to legacy",
		"sender", sender,
		"responder_error", convErr,
		"extractor_error", extErr,
	)
	conv, ext, shouldStore := o.runFallback(ctx, sender, text, history, start)
	return conv, ext, true, shouldStore
}

// runFallback invokes the legacy single-call responder once and approximates
// the structured fields with the regex parser. A legacy failure degrades to
// the fixed apology; it is reported, never retried.
func (o *Orchestrator) runFallback(ctx context.Context, sender, text string, history []domain.Turn, start time.Time) (*domain.ConversationalResult, *domain.ExtractionResponse, bool) {
	reply, err := o.legacy.Ask(ctx, text, agent.LegacySystemPrompt, history)
	if err != nil {
		slog.Error("legacy fallback also failed", "sender", sender, "error", err)
		conv := &domain.ConversationalResult{
			Message:        ApologyMessage,
			Confidence:     0.1,
			ProcessingTime: time.Since(start).Milliseconds(),
		}
		ext := &domain.ExtractionResponse{
			Errors:         []string{"service temporarily unavailable"},
			Valid:          false,
			ProcessingTime: time.Since(start).Milliseconds(),
		}
		return conv, ext, false
	}

	parsed := ParseOrderFromReply(reply, text)
	slog.Info("legacy fallback processing completed",
		"sender", sender,
		"parsed_complete", parsed.Complete,
		"parsed_confirmed", parsed.Confirmed,
		"duration", time.Since(start),
	)

	conv := &domain.ConversationalResult{
		Message:          reply,
		Confidence:       0.5,
		ProcessingTime:   time.Since(start).Milliseconds(),
		RequiresFollowUp: true,
	}

	data := domain.Extraction{
		Site:      parsed.Site,
		Delivery:  domain.Delivery{Date: parsed.Date, Time: parsed.Time},
		Confirmed: parsed.Confirmed,
	}
	if parsed.Material != "" {
		data.Materials = []domain.Material{{
			Name:     parsed.Material,
			Quantity: parsed.Quantity,
			Unit:     parsed.Unit,
		}}
	}
	if parsed.Complete {
		data.Completeness = config.FallbackCompleteOrder
	} else {
		data.Completeness = config.FallbackPartialOrder
	}

	ext := &domain.ExtractionResponse{
		Data:           data,
		Valid:          true,
		ProcessingTime: time.Since(start).Milliseconds(),
	}
	return conv, ext, parsed.Complete && parsed.Confirmed
}

// storeOrder persists the shaped order. Failures are logged and never affect
// the reply already computed for the user.
func (o *Orchestrator) storeOrder(ctx context.Context, data domain.Extraction, sender string) {
	order := ShapeOrder(data, sender)
	if order == nil {
		slog.Warn("extraction passed the gate but could not be shaped into an order",
			"sender", sender,
			"site", data.Site,
		)
		return
	}

	if err := o.orders.SaveOrder(ctx, order); err != nil {
		slog.Error("failed to store order",
			"error", err,
			"sender", sender,
			"site", order.Site,
		)
		return
	}
	slog.Info("order stored",
		"sender", sender,
		"site", order.Site,
		"materials", len(order.Materials),
		"status", order.Status,
		"completeness", order.Completeness,
	)
}
