package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/siteflow/orderbot/internal/config"
	"github.com/siteflow/orderbot/internal/domain"
	"github.com/siteflow/orderbot/internal/whatsapp"
)

const (
	emptyMessageReply = "Sorry, I didn't receive a message. Can you try again?"
	unexpectedReply   = "❌ An unexpected error occurred. Please try again."
)

// HandleWebhook receives inbound WhatsApp messages from the messaging
// platform. Signature validation happens upstream; this handler only
// extracts the sender and text and replies as TwiML.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("malformed webhook form", "error", err)
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	from := r.PostFormValue("From")
	if from == "" {
		slog.Warn("missing required parameter From")
		http.Error(w, "Missing required parameter From", http.StatusBadRequest)
		return
	}
	sender := whatsapp.NormalizeSender(from)

	segments, err := h.orchestrator.HandleMessage(r.Context(), sender, r.PostFormValue("Body"))
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		segments = whatsapp.Chunk(emptyMessageReply, config.MaxChunkLen)
	case err != nil:
		slog.Error("error in webhook handler", "error", err, "sender", sender)
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(http.StatusInternalServerError)
		_ = whatsapp.WriteTwiML(w, []string{unexpectedReply})
		return
	}

	if err := whatsapp.WriteTwiML(w, segments); err != nil {
		slog.Error("failed to write twiml response", "error", err, "sender", sender)
	}
}
