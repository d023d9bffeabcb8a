package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siteflow/orderbot/internal/domain"
)

func TestOrdersBySite(t *testing.T) {
	dir := &mockDirectory{orders: []domain.Order{{
		ID:           "a2e7d6c1-0000-0000-0000-000000000000",
		Sender:       "+33612345678",
		Site:         "Riverside Tower",
		Materials:    []domain.Material{{Name: "concrete", Quantity: "10", Unit: "m3"}},
		DeliveryDate: "15/01/2025",
		DeliveryTime: "14:00",
		Status:       domain.StatusConfirmed,
	}}}
	srv := newTestServer(&mockOrchestrator{}, dir, &mockPinger{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/Riverside%20Tower")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool           `json:"success"`
		Site    string         `json:"site"`
		Orders  []domain.Order `json:"orders"`
		Count   int            `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, "Riverside Tower", payload.Site)
	require.Equal(t, 1, payload.Count)
	require.Equal(t, "concrete", payload.Orders[0].Materials[0].Name)
}

func TestOrdersBySiteStorageError(t *testing.T) {
	srv := newTestServer(&mockOrchestrator{}, &mockDirectory{err: errors.New("down")}, &mockPinger{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/somewhere")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestListSites(t *testing.T) {
	srv := newTestServer(&mockOrchestrator{}, &mockDirectory{sites: []string{"Depot", "Riverside Tower"}}, &mockPinger{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sites")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool     `json:"success"`
		Sites   []string `json:"sites"`
		Count   int      `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.True(t, payload.Success)
	require.Equal(t, []string{"Depot", "Riverside Tower"}, payload.Sites)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&mockOrchestrator{}, &mockDirectory{}, &mockPinger{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthDegraded(t *testing.T) {
	srv := newTestServer(&mockOrchestrator{}, &mockDirectory{}, &mockPinger{err: errors.New("no route to host")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
