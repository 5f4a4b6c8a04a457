package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/davidbz/chargeflow/internal/charge"
	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/observability"
)

const (
	maxBodyBytes         = 1 << 20
	invalidConfigMessage = "invalid charge configuration"
)

// Handler handles HTTP requests.
type Handler struct {
	billing  *domain.BillingService
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(billing *domain.BillingService) *Handler {
	return &Handler{
		billing:  billing,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// HandleValidate reports every finding about a configuration.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if !h.decode(w, r, &req) {
		return
	}

	model, ok := parseModel(w, r, req.ChargeModel)
	if !ok {
		return
	}

	errs, err := h.billing.Validate(r.Context(), model, req.Properties)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if errs == nil {
		errs = charge.ValidationErrors{}
	}
	writeJSON(w, r, http.StatusOK, validateResponse{Valid: len(errs) == 0, Errors: errs})
}

// HandleCompute validates an inline configuration and prices usage.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !h.decode(w, r, &req) {
		return
	}

	model, ok := parseModel(w, r, req.ChargeModel)
	if !ok {
		return
	}

	result, err := h.billing.Compute(r.Context(), model, req.Properties, req.Usage.toUsage())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// HandleCreateCharge stores a validated configuration.
func (h *Handler) HandleCreateCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if !h.decode(w, r, &req) {
		return
	}

	model, ok := parseModel(w, r, req.ChargeModel)
	if !ok {
		return
	}

	created, errs, err := h.billing.CreateCharge(r.Context(), model, req.Properties)
	if err == nil && len(errs) > 0 {
		err = &domain.InvalidConfigError{Model: model, Errors: errs}
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/charges/"+created.ID)
	writeJSON(w, r, http.StatusCreated, created)
}

// HandleListCharges lists stored charges.
func (h *Handler) HandleListCharges(w http.ResponseWriter, r *http.Request) {
	charges, err := h.billing.ListCharges(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listChargesResponse{Charges: charges})
}

// HandleGetCharge returns one stored charge.
func (h *Handler) HandleGetCharge(w http.ResponseWriter, r *http.Request) {
	c, err := h.billing.GetCharge(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, c)
}

// HandleUpdateCharge replaces the properties of a stored charge.
func (h *Handler) HandleUpdateCharge(w http.ResponseWriter, r *http.Request) {
	var req updateChargeRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, errs, err := h.billing.UpdateCharge(r.Context(), r.PathValue("id"), req.Properties)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(errs) > 0 {
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  invalidConfigMessage,
			Errors: errs,
		})
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

// HandleDeleteCharge removes a stored charge.
func (h *Handler) HandleDeleteCharge(w http.ResponseWriter, r *http.Request) {
	if err := h.billing.DeleteCharge(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleComputeCharge prices usage against a stored charge.
func (h *Handler) HandleComputeCharge(w http.ResponseWriter, r *http.Request) {
	var req computeChargeRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.billing.ComputeCharge(r.Context(), r.PathValue("id"), req.Usage.toUsage())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

// HandlePreviewInvoice prices a batch of lines and sums them.
func (h *Handler) HandlePreviewInvoice(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !h.decode(w, r, &req) {
		return
	}

	lines := make([]domain.LineRequest, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = domain.LineRequest{
			ChargeID:   line.ChargeID,
			Properties: line.Properties,
			Usage:      line.Usage.toUsage(),
		}
		if line.ChargeID != "" {
			continue
		}

		model, err := charge.ParseModel(line.ChargeModel)
		if err != nil {
			h.fail(w, r, &domain.LineError{Index: i, Err: err})
			return
		}
		lines[i].Model = model
	}

	batch, err := h.billing.ComputeBatch(r.Context(), lines)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, batch)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// decode reads a JSON body into dst and validates it. Numbers inside
// properties are kept as json.Number so amounts stay exact.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			err = fmt.Errorf("invalid request: %s failed on %s", fieldErrs[0].Namespace(), fieldErrs[0].Tag())
		}
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}

	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logger := observability.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", observability.Error(err))
	} else {
		logger.Info("request rejected",
			observability.Int("status", status),
			observability.Error(err))
	}

	writeJSON(w, r, status, errorBody(err))
}

func parseModel(w http.ResponseWriter, r *http.Request, tag string) (charge.Model, bool) {
	model, err := charge.ParseModel(tag)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return "", false
	}
	return model, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}
