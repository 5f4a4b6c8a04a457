package httpserver

import (
	"errors"
	"net/http"

	"github.com/davidbz/chargeflow/internal/charge"
	"github.com/davidbz/chargeflow/internal/domain"
)

// statusFor maps service errors onto HTTP status codes. Rejected
// configurations and usage preconditions are the caller's to fix (422);
// violated engine invariants are ours (500).
func statusFor(err error) int {
	var invalid *domain.InvalidConfigError
	switch {
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrChargeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyChargeID),
		errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrBatchTooLarge),
		errors.Is(err, charge.ErrUnknownModel):
		return http.StatusBadRequest
	case errors.Is(err, charge.ErrNegativeUsage),
		errors.Is(err, charge.ErrNegativeEventCount),
		errors.Is(err, charge.ErrMissingUnitRate),
		errors.Is(err, charge.ErrNegativeUnitRate),
		errors.Is(err, charge.ErrUsageOutOfRange),
		errors.Is(err, charge.ErrAmountOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) errorResponse {
	body := errorResponse{Error: err.Error()}

	var invalid *domain.InvalidConfigError
	if errors.As(err, &invalid) {
		body.Error = invalidConfigMessage
		body.Errors = invalid.Errors
	}

	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		index := lineErr.Index
		body.Line = &index
	}

	return body
}
