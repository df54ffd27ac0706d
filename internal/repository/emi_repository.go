package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/fintrack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type emiRepository struct {
	db *sqlx.DB
}

func NewEMIRepository(db *sqlx.DB) EMIRepository {
	return &emiRepository{db: db}
}

func (r *emiRepository) Create(ctx context.Context, calculation *domain.EMICalculation) error {
	query := `
		INSERT INTO emi_calculations (id, user_id, principal, rate, tenure, emi, total_payment, total_interest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		calculation.ID,
		calculation.UserID,
		calculation.Principal,
		calculation.Rate,
		calculation.Tenure,
		calculation.MonthlyInstallment,
		calculation.TotalPayment,
		calculation.TotalInterest,
		calculation.CreatedAt,
	)

	return err
}

func (r *emiRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EMICalculation, error) {
	query := `
		SELECT id, user_id, principal, rate, tenure, emi, total_payment, total_interest, created_at
		FROM emi_calculations
		WHERE id = $1
	`

	var calculation domain.EMICalculation
	err := r.db.GetContext(ctx, &calculation, query, id)
	if err != nil {
		return nil, err
	}

	return &calculation, nil
}

func (r *emiRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.EMICalculation, error) {
	query := `
		SELECT id, user_id, principal, rate, tenure, emi, total_payment, total_interest, created_at
		FROM emi_calculations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	calculations := []*domain.EMICalculation{}
	err := r.db.SelectContext(ctx, &calculations, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return calculations, nil
}

func (r *emiRepository) Delete(ctx context.Context, userID string, id uuid.UUID) (bool, error) {
	query := `
		DELETE FROM emi_calculations
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *emiRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM emi_calculations
		WHERE created_at < $1
	`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
