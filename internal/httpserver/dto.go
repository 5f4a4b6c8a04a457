package httpserver

import (
	"github.com/shopspring/decimal"

	"github.com/davidbz/chargeflow/internal/charge"
	"github.com/davidbz/chargeflow/internal/domain"
)

// usageRequest is the usage of one billing period. Decimals accept JSON
// strings or numbers.
type usageRequest struct {
	Value      *decimal.Decimal `json:"value"       validate:"required"`
	EventCount int64            `json:"event_count" validate:"gte=0"`
	UnitRate   *decimal.Decimal `json:"unit_rate,omitempty"`
}

func (u usageRequest) toUsage() charge.Usage {
	usage := charge.Usage{EventCount: u.EventCount, UnitRate: u.UnitRate}
	if u.Value != nil {
		usage.Value = *u.Value
	}
	return usage
}

type chargeRequest struct {
	ChargeModel string         `json:"charge_model" validate:"required"`
	Properties  map[string]any `json:"properties"`
}

type computeRequest struct {
	ChargeModel string         `json:"charge_model" validate:"required"`
	Properties  map[string]any `json:"properties"`
	Usage       usageRequest   `json:"usage"`
}

type updateChargeRequest struct {
	Properties map[string]any `json:"properties" validate:"required"`
}

type computeChargeRequest struct {
	Usage usageRequest `json:"usage"`
}

type previewLineRequest struct {
	ChargeID    string         `json:"charge_id,omitempty"    validate:"required_without=ChargeModel"`
	ChargeModel string         `json:"charge_model,omitempty" validate:"required_without=ChargeID"`
	Properties  map[string]any `json:"properties,omitempty"`
	Usage       usageRequest   `json:"usage"`
}

type previewRequest struct {
	Lines []previewLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type validateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors charge.ValidationErrors `json:"errors"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Line   *int                    `json:"line,omitempty"`
	Errors charge.ValidationErrors `json:"errors,omitempty"`
}

type listChargesResponse struct {
	Charges []*domain.Charge `json:"charges"`
}
