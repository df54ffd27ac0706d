package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/domain"
)

// EMIRepository defines the interface for EMI calculation history
type EMIRepository interface {
	// Create stores a calculation summary
	Create(ctx context.Context, calculation *domain.EMICalculation) error

	// GetByID retrieves a calculation by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EMICalculation, error)

	// ListByUser retrieves a user's calculations, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.EMICalculation, error)

	// Delete removes a calculation owned by userID, reporting whether a row was removed
	Delete(ctx context.Context, userID string, id uuid.UUID) (bool, error)

	// DeleteOlderThan removes calculations created before cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ResultCache keeps full EMI results, schedule included, by calculation ID.
// A miss is reported as a nil result with a nil error.
type ResultCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.EMIResult, error)
	Set(ctx context.Context, id uuid.UUID, result *domain.EMIResult) error
	Delete(ctx context.Context, id uuid.UUID) error
}
