package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

// HandleOrdersBySite returns the stored orders destined for one site.
func (h *Handler) HandleOrdersBySite(w http.ResponseWriter, r *http.Request) {
	site := strings.TrimSpace(r.PathValue("site"))
	if site == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "site name required",
		})
		return
	}

	orders, err := h.orders.OrdersBySite(r.Context(), site)
	if err != nil {
		slog.Error("error retrieving orders", "error", err, "site", site)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "failed to retrieve orders",
		})
		return
	}

	slog.Info("orders retrieved", "site", site, "count", len(orders))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"site":    site,
		"orders":  orders,
		"count":   len(orders),
	})
}

// HandleListSites returns every site that has at least one stored order.
func (h *Handler) HandleListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.orders.ListSites(r.Context())
	if err != nil {
		slog.Error("error listing sites", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "failed to list sites",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"sites":   sites,
		"count":   len(sites),
	})
}

// HandleHealth reports process and datastore liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  "database unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
