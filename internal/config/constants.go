package config

import "time"

const (
	// Session lifetime
	SessionTTL      = 2 * time.Hour
	SessionMaxTurns = 15

	// Per-agent timeout for the dual dispatch
	AgentTimeout = 30 * time.Second

	// WhatsApp message limits
	MaxChunkLen         = 3500
	ChunkBoundaryWindow = 500

	// Storage decision thresholds
	StoreCompleteness   = 0.8
	PendingCompleteness = 0.5

	// Fallback parser completeness scores
	FallbackCompleteOrder = 0.9
	FallbackPartialOrder  = 0.5

	// Delivery date range accepted from the extractor
	MinDeliveryYear = 2024
	MaxDeliveryYear = 2030

	// HTTP server timeouts
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 60 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// ValidUnits is the closed list of canonical material units.
var ValidUnits = []string{"m3", "kg", "m2", "tons", "bags", "pallets", "m", "cm", "l"}

// UnitSynonyms maps common spellings to their canonical unit.
var UnitSynonyms = map[string]string{
	"m³":      "m3",
	"m²":      "m2",
	"ton":     "tons",
	"tonne":   "tons",
	"tonnes":  "tons",
	"bag":     "bags",
	"pallet":  "pallets",
	"palette": "pallets",
	"litre":   "l",
	"litres":  "l",
	"liter":   "l",
	"liters":  "l",
}

// Affirmations are the user replies accepted as an order confirmation
// by the legacy fallback parser.
var Affirmations = []string{
	"yes", "ok", "okay", "confirm", "confirmed", "correct",
	"exactly", "sure", "right", "yep", "yeah", "perfect",
}
