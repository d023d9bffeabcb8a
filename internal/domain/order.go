package domain

import "time"

type OrderStatus string

const (
	StatusConfirmed OrderStatus = "confirmed"
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
)

// Material is one line of an order. Quantity and Unit may be empty when the
// user named a material but has not given the details yet.
type Material struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Delivery holds the requested delivery slot. Empty strings mean "not given".
type Delivery struct {
	Date string // DD/MM/YYYY
	Time string // HH:MM
}

// Extraction is the validated projection of the extraction agent's output.
type Extraction struct {
	Site         string
	Materials    []Material
	Delivery     Delivery
	Completeness float64
	Confirmed    bool
}

// ExtractionResponse wraps an Extraction with the validation outcome.
// Valid is true only when zero field-validation errors were recorded.
type ExtractionResponse struct {
	Data           Extraction
	Errors         []string
	Valid          bool
	ProcessingTime int64 // milliseconds
}

// Order is the persisted record of a confirmed or pending materials order.
type Order struct {
	ID           string      `json:"id"`
	Sender       string      `json:"phone_number"`
	Site         string      `json:"site"`
	Materials    []Material  `json:"materials"`
	DeliveryDate string      `json:"delivery_date"`
	DeliveryTime string      `json:"delivery_time"`
	Status       OrderStatus `json:"status"`
	Completeness float64     `json:"completeness"`
	CreatedAt    time.Time   `json:"created_at"`
}
