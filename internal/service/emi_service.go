package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/config"
	"github.com/segyhp/fintrack/internal/domain"
	"github.com/segyhp/fintrack/internal/metrics"
	"github.com/segyhp/fintrack/internal/repository"
	customError "github.com/segyhp/fintrack/pkg/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/segyhp/fintrack/internal/service"

type EMIService struct {
	EMIRepo repository.EMIRepository
	cache   repository.ResultCache
	config  *config.Config
	tracer  trace.Tracer
	now     func() time.Time
}

func NewEMIService(
	emiRepo repository.EMIRepository,
	cache repository.ResultCache,
	config *config.Config,
) *EMIService {
	return &EMIService{
		EMIRepo: emiRepo,
		cache:   cache,
		config:  config,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

// Calculate computes the EMI for the requested terms, stores the summary in
// the user's history and caches the full schedule
func (s *EMIService) Calculate(ctx context.Context, userID string, request *domain.CalculateEMIRequest) (*domain.EMICalculation, *domain.EMIResult, error) {
	ctx, span := s.tracer.Start(ctx, "EMIService.Calculate")
	defer span.End()

	// 1. Check the boundary limits before computing anything
	terms, err := s.termsFromRequest(request)
	if err != nil {
		s.recordInvalid(span, err)
		return nil, nil, err
	}
	span.SetAttributes(
		attribute.Float64("emi.principal", terms.Principal),
		attribute.Float64("emi.rate", terms.AnnualRatePercent),
		attribute.Int("emi.tenure", terms.TenureMonths),
	)

	// 2. Compute installment and schedule
	result, err := ComputeEMI(terms)
	if err != nil {
		s.recordInvalid(span, err)
		return nil, nil, err
	}

	// 3. Persist the summary
	calculation := domain.NewEMICalculation(userID, terms, result, s.now().UTC())
	if err := s.EMIRepo.Create(ctx, calculation); err != nil {
		metrics.Calculations.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist calculation")
		return nil, nil, customError.WrapDatabaseError(err)
	}

	// 4. Cache the schedule; history lookups fall back to recomputation
	if err := s.cache.Set(ctx, calculation.ID, result); err != nil {
		log.Printf("Failed to cache EMI result %s: %v", calculation.ID, customError.WrapCacheError(err))
	}

	metrics.Calculations.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.String("emi.calculation_id", calculation.ID.String()))

	return calculation, result, nil
}

// GetHistory returns the user's calculations, newest first
func (s *EMIService) GetHistory(ctx context.Context, userID string, limit int) ([]*domain.EMICalculation, error) {
	ctx, span := s.tracer.Start(ctx, "EMIService.GetHistory")
	defer span.End()

	if limit == 0 {
		limit = s.config.Business.DefaultHistorySize
	}
	if limit < 0 || limit > s.config.Business.MaxHistorySize {
		return nil, customError.WrapInvalidHistoryLimit(limit, s.config.Business.MaxHistorySize)
	}

	calculations, err := s.EMIRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		span.RecordError(err)
		return nil, customError.WrapDatabaseError(err)
	}

	return calculations, nil
}

// GetCalculation returns one of the user's calculations with its schedule
func (s *EMIService) GetCalculation(ctx context.Context, userID string, id uuid.UUID) (*domain.EMICalculation, *domain.EMIResult, error) {
	ctx, span := s.tracer.Start(ctx, "EMIService.GetCalculation",
		trace.WithAttributes(attribute.String("emi.calculation_id", id.String())))
	defer span.End()

	calculation, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.cache.Get(ctx, id)
	if err != nil {
		log.Printf("Failed to read cached EMI result %s: %v", id, customError.WrapCacheError(err))
	}
	if result != nil {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return calculation, result, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	// Deterministic, so recomputing from stored terms reproduces the schedule
	result, err = ComputeEMI(calculation.Terms())
	if err != nil {
		return nil, nil, err
	}

	if err := s.cache.Set(ctx, id, result); err != nil {
		log.Printf("Failed to cache EMI result %s: %v", id, customError.WrapCacheError(err))
	}

	return calculation, result, nil
}

// DeleteCalculation removes one of the user's calculations
func (s *EMIService) DeleteCalculation(ctx context.Context, userID string, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "EMIService.DeleteCalculation",
		trace.WithAttributes(attribute.String("emi.calculation_id", id.String())))
	defer span.End()

	removed, err := s.EMIRepo.Delete(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return customError.WrapDatabaseError(err)
	}
	if !removed {
		return customError.WrapCalculationNotFound(id.String())
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("Failed to evict cached EMI result %s: %v", id, customError.WrapCacheError(err))
	}

	return nil
}

// PurgeHistory deletes calculations older than the configured retention
func (s *EMIService) PurgeHistory(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "EMIService.PurgeHistory")
	defer span.End()

	retention := s.config.GetRetention()
	if retention <= 0 {
		return 0, nil
	}

	cutoff := s.now().UTC().Add(-retention)
	removed, err := s.EMIRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		span.RecordError(err)
		return 0, customError.WrapDatabaseError(err)
	}

	metrics.HistoryPurged.Add(float64(removed))
	return removed, nil
}

func (s *EMIService) findOwned(ctx context.Context, userID string, id uuid.UUID) (*domain.EMICalculation, error) {
	calculation, err := s.EMIRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapCalculationNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	// Another user's record is reported the same way as a missing one
	if calculation.UserID != userID {
		return nil, customError.WrapCalculationNotFound(id.String())
	}

	return calculation, nil
}

// termsFromRequest checks presence and the configured upper limits. The
// lower bounds are left to ComputeEMI.
func (s *EMIService) termsFromRequest(request *domain.CalculateEMIRequest) (domain.LoanTerms, error) {
	if request == nil || request.Principal == nil {
		return domain.LoanTerms{}, customError.NewInvalidTermsError("principal", "is required")
	}
	if request.Rate == nil {
		return domain.LoanTerms{}, customError.NewInvalidTermsError("rate", "is required")
	}
	if request.Tenure == nil {
		return domain.LoanTerms{}, customError.NewInvalidTermsError("tenure", "is required")
	}

	terms := domain.LoanTerms{
		Principal:         *request.Principal,
		AnnualRatePercent: *request.Rate,
		TenureMonths:      *request.Tenure,
	}

	limits := s.config.Business
	if terms.Principal > limits.MaxPrincipal {
		return terms, customError.NewInvalidTermsError("principal", "exceeds the maximum allowed amount")
	}
	if terms.AnnualRatePercent > limits.MaxRate {
		return terms, customError.NewInvalidTermsError("rate", "exceeds the maximum allowed rate")
	}
	if terms.TenureMonths > limits.MaxTenureMonths {
		return terms, customError.NewInvalidTermsError("tenure", "exceeds the maximum allowed number of months")
	}

	return terms, nil
}

func (s *EMIService) recordInvalid(span trace.Span, err error) {
	var termsErr *customError.InvalidTermsError
	if errors.As(err, &termsErr) {
		metrics.InvalidTerms.WithLabelValues(termsErr.Field).Inc()
	}
	metrics.Calculations.WithLabelValues("invalid").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "invalid terms")
}
