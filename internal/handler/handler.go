// Package handler wires the webhook and the read-side API onto an HTTP mux.
// The transport concerns stop here: the orchestrator only ever sees a
// resolved sender and message text.
package handler

import (
	"context"
	"net/http"

	"github.com/siteflow/orderbot/internal/domain"
)

// Orchestrator is the message-handling entry point consumed by the webhook.
type Orchestrator interface {
	HandleMessage(ctx context.Context, sender, text string) ([]string, error)
}

// OrderDirectory is the read side of the order store.
type OrderDirectory interface {
	OrdersBySite(ctx context.Context, site string) ([]domain.Order, error)
	ListSites(ctx context.Context) ([]string, error)
}

// Pinger reports datastore liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds all dependencies needed by the HTTP handlers.
type Handler struct {
	orchestrator Orchestrator
	orders       OrderDirectory
	db           Pinger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Orchestrator Orchestrator
	Orders       OrderDirectory
	DB           Pinger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		orchestrator: deps.Orchestrator,
		orders:       deps.Orders,
		db:           deps.DB,
	}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhook", h.HandleWebhook)
	mux.HandleFunc("POST /webhook/whatsapp", h.HandleWebhook)
	mux.HandleFunc("GET /orders/{site}", h.HandleOrdersBySite)
	mux.HandleFunc("GET /sites", h.HandleListSites)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}
