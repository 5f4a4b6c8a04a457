package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/davidbz/chargeflow/internal/charge"
)

// Charge is a stored, validated pricing configuration.
type Charge struct {
	ID         string            `json:"id"`
	Model      charge.Model      `json:"charge_model"`
	Properties charge.Properties `json:"properties"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// LineRequest is one line of an invoice preview. Either ChargeID references a
// stored charge, or Model and Properties describe one inline.
type LineRequest struct {
	ChargeID   string
	Model      charge.Model
	Properties charge.Properties
	Usage      charge.Usage
}

// LineResult is the computed amount of one invoice line.
type LineResult struct {
	Index    int            `json:"index"`
	ChargeID string         `json:"charge_id,omitempty"`
	Result   *charge.Result `json:"result"`
}

// BatchResult is a computed invoice preview. Lines keep request order.
type BatchResult struct {
	Lines       []LineResult    `json:"lines"`
	TotalCents  int64           `json:"total_cents"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
