package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/davidbz/chargeflow/internal/charge"
	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/observability"
)

// Event types published by the billing service.
const (
	EventChargeCreated    = "charge.created"
	EventChargeUpdated    = "charge.updated"
	EventChargeDeleted    = "charge.deleted"
	EventChargeComputed   = "charge.computed"
	EventInvoicePreviewed = "invoice.previewed"
)

// BillingService validates, stores and prices charges.
type BillingService struct {
	store   ChargeStore
	events  EventPublisher
	metrics MetricsRecorder

	batchConcurrency int
	maxBatchSize     int

	// configs caches the parsed configuration of stored charges by id.
	configs sync.Map
}

// parsedCharge is a validated configuration tied to one stored revision.
type parsedCharge struct {
	model     charge.Model
	updatedAt time.Time
	cfg       charge.Config
}

// NewBillingService creates a new billing service (DI constructor).
func NewBillingService(
	store ChargeStore,
	events EventPublisher,
	metrics MetricsRecorder,
	cfg *config.BillingConfig,
) *BillingService {
	s := &BillingService{
		store:            store,
		events:           events,
		metrics:          metrics,
		batchConcurrency: 1,
		maxBatchSize:     0,
	}
	if cfg != nil {
		s.batchConcurrency = max(cfg.BatchConcurrency, 1)
		s.maxBatchSize = cfg.MaxBatchSize
	}
	return s
}

// Validate checks a configuration without storing it.
func (s *BillingService) Validate(
	ctx context.Context,
	model charge.Model,
	props charge.Properties,
) (charge.ValidationErrors, error) {
	_, errs, err := s.validate(ctx, model, props)
	return errs, err
}

// CreateCharge validates and stores a new charge. An invalid configuration is
// never stored; its findings are returned instead.
func (s *BillingService) CreateCharge(
	ctx context.Context,
	model charge.Model,
	props charge.Properties,
) (*Charge, charge.ValidationErrors, error) {
	cfg, errs, err := s.validate(ctx, model, props)
	if err != nil || len(errs) > 0 {
		return nil, errs, err
	}

	now := time.Now().UTC()
	c := &Charge{
		ID:         uuid.NewString(),
		Model:      model,
		Properties: props,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, nil, fmt.Errorf("failed to save charge: %w", err)
	}
	s.remember(c, cfg)

	ctx = observability.WithChargeID(ctx, c.ID)
	observability.FromContext(ctx).Info("charge created")
	s.publish(ctx, EventChargeCreated, map[string]interface{}{
		"charge_id":    c.ID,
		"charge_model": c.Model.String(),
	})

	return c, nil, nil
}

// UpdateCharge replaces the properties of a stored charge. The model of a
// charge cannot change.
func (s *BillingService) UpdateCharge(
	ctx context.Context,
	id string,
	props charge.Properties,
) (*Charge, charge.ValidationErrors, error) {
	existing, err := s.GetCharge(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	cfg, errs, err := s.validate(ctx, existing.Model, props)
	if err != nil || len(errs) > 0 {
		return nil, errs, err
	}

	updated := *existing
	updated.Properties = props
	updated.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, &updated); err != nil {
		return nil, nil, fmt.Errorf("failed to save charge: %w", err)
	}
	s.remember(&updated, cfg)

	ctx = observability.WithChargeID(ctx, id)
	observability.FromContext(ctx).Info("charge updated")
	s.publish(ctx, EventChargeUpdated, map[string]interface{}{
		"charge_id":    id,
		"charge_model": updated.Model.String(),
	})

	return &updated, nil, nil
}

// GetCharge retrieves a stored charge.
func (s *BillingService) GetCharge(ctx context.Context, id string) (*Charge, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyChargeID
	}

	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get charge %s: %w", id, err)
	}
	return c, nil
}

// ListCharges returns every stored charge.
func (s *BillingService) ListCharges(ctx context.Context) ([]*Charge, error) {
	charges, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}
	return charges, nil
}

// DeleteCharge removes a stored charge.
func (s *BillingService) DeleteCharge(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyChargeID
	}

	s.configs.Delete(id)
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete charge %s: %w", id, err)
	}

	ctx = observability.WithChargeID(ctx, id)
	observability.FromContext(ctx).Info("charge deleted")
	s.publish(ctx, EventChargeDeleted, map[string]interface{}{
		"charge_id": id,
	})
	return nil
}

// Compute validates an inline configuration and prices usage against it.
// A rejected configuration is reported as *InvalidConfigError.
func (s *BillingService) Compute(
	ctx context.Context,
	model charge.Model,
	props charge.Properties,
	usage charge.Usage,
) (*charge.Result, error) {
	cfg, errs, err := s.validate(ctx, model, props)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, &InvalidConfigError{Model: model, Errors: errs}
	}

	return s.compute(ctx, cfg, usage)
}

// ComputeCharge prices usage against a stored charge. Properties are parsed
// once per stored revision; later computations reuse the parsed configuration.
func (s *BillingService) ComputeCharge(
	ctx context.Context,
	id string,
	usage charge.Usage,
) (*charge.Result, error) {
	c, err := s.GetCharge(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx = observability.WithChargeID(ctx, c.ID)

	cfg, ok := s.parsed(c)
	if !ok {
		var errs charge.ValidationErrors
		cfg, errs, err = s.validate(ctx, c.Model, c.Properties)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, &InvalidConfigError{Model: c.Model, Errors: errs}
		}
		s.remember(c, cfg)
	}

	return s.compute(ctx, cfg, usage)
}

// parsed returns the cached configuration of c when it matches the stored
// revision. Charges written by another process are re-parsed.
func (s *BillingService) parsed(c *Charge) (charge.Config, bool) {
	v, ok := s.configs.Load(c.ID)
	if !ok {
		return nil, false
	}
	p := v.(parsedCharge)
	if p.model != c.Model || !p.updatedAt.Equal(c.UpdatedAt) {
		return nil, false
	}
	return p.cfg, true
}

func (s *BillingService) remember(c *Charge, cfg charge.Config) {
	s.configs.Store(c.ID, parsedCharge{model: c.Model, updatedAt: c.UpdatedAt, cfg: cfg})
}

// ComputeBatch prices every line of an invoice preview concurrently. The
// first failing line cancels the rest and is reported as *LineError.
func (s *BillingService) ComputeBatch(ctx context.Context, lines []LineRequest) (*BatchResult, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyBatch
	}
	if s.maxBatchSize > 0 && len(lines) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d lines, limit %d", ErrBatchTooLarge, len(lines), s.maxBatchSize)
	}

	results := make([]LineResult, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var (
				result *charge.Result
				err    error
			)
			if line.ChargeID != "" {
				result, err = s.ComputeCharge(gctx, line.ChargeID, line.Usage)
			} else {
				result, err = s.Compute(gctx, line.Model, line.Properties, line.Usage)
			}
			if err != nil {
				return &LineError{Index: i, Err: err}
			}

			results[i] = LineResult{Index: i, ChargeID: line.ChargeID, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int64
	for _, line := range results {
		var err error
		if total, err = charge.AddCents(total, line.Result.AmountCents); err != nil {
			return nil, fmt.Errorf("invoice total: %w", err)
		}
	}

	batch := &BatchResult{
		Lines:       results,
		TotalCents:  total,
		TotalAmount: decimal.New(total, -2),
	}

	observability.FromContext(ctx).Info("invoice previewed",
		observability.Int("lines", len(results)),
		observability.Int64("total_cents", total))
	s.publish(ctx, EventInvoicePreviewed, map[string]interface{}{
		"lines":       len(results),
		"total_cents": total,
	})

	return batch, nil
}

func (s *BillingService) validate(
	ctx context.Context,
	model charge.Model,
	props charge.Properties,
) (charge.Config, charge.ValidationErrors, error) {
	cfg, errs, err := charge.Validate(model, props)
	if err != nil {
		return nil, nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordValidation(model.String(), len(errs) == 0)
	}
	if len(errs) > 0 {
		observability.FromContext(observability.WithChargeModel(ctx, model.String())).Info(
			"charge configuration rejected",
			observability.Strings("error_codes", errs.Codes()))
	}

	return cfg, errs, nil
}

func (s *BillingService) compute(ctx context.Context, cfg charge.Config, usage charge.Usage) (*charge.Result, error) {
	model := cfg.Model().String()
	ctx = observability.WithChargeModel(ctx, model)
	logger := observability.FromContext(ctx)

	start := time.Now()
	result, err := charge.Compute(cfg, usage)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordComputation(model, err, elapsed)
	}

	if err != nil {
		if errors.Is(err, charge.ErrInvalidConfig) || errors.Is(err, charge.ErrNoMatchingTier) {
			logger.Error("charge computation failed", observability.Error(err))
		} else {
			logger.Info("charge usage rejected", observability.Error(err))
		}
		return nil, err
	}

	logger.Debug("charge computed",
		observability.String("usage", usage.Value.String()),
		observability.Int64("amount_cents", result.AmountCents),
		observability.Duration("elapsed", elapsed))

	s.publish(ctx, EventChargeComputed, map[string]interface{}{
		"charge_id":    observability.GetChargeID(ctx),
		"charge_model": model,
		"amount_cents": result.AmountCents,
	})

	return result, nil
}

func (s *BillingService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, data)
}
