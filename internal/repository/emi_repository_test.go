package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/fintrack/internal/domain"
)

var calculationColumns = []string{
	"id", "user_id", "principal", "rate", "tenure", "emi", "total_payment", "total_interest", "created_at",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func sampleCalculation() *domain.EMICalculation {
	return &domain.EMICalculation{
		ID:                 uuid.MustParse("7a0f4c1e-2b8d-4a57-9a53-4a7e2f9f1c10"),
		UserID:             "user-1",
		Principal:          decimal.NewFromInt(100000),
		Rate:               decimal.NewFromInt(12),
		Tenure:             12,
		MonthlyInstallment: decimal.RequireFromString("8884.88"),
		TotalPayment:       decimal.RequireFromString("106618.56"),
		TotalInterest:      decimal.RequireFromString("6618.56"),
		CreatedAt:          time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestEMIRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEMIRepository(db)
	calculation := sampleCalculation()

	mock.ExpectExec("INSERT INTO emi_calculations").
		WithArgs(
			calculation.ID,
			calculation.UserID,
			calculation.Principal,
			calculation.Rate,
			calculation.Tenure,
			calculation.MonthlyInstallment,
			calculation.TotalPayment,
			calculation.TotalInterest,
			calculation.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), calculation)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEMIRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEMIRepository(db)
	expected := sampleCalculation()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(calculationColumns).AddRow(
			expected.ID.String(), "user-1", "100000", "12", 12, "8884.88", "106618.56", "6618.56", expected.CreatedAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM emi_calculations WHERE id").
			WithArgs(expected.ID).
			WillReturnRows(rows)

		calculation, err := repo.GetByID(context.Background(), expected.ID)

		require.NoError(t, err)
		assert.Equal(t, expected.ID, calculation.ID)
		assert.Equal(t, "user-1", calculation.UserID)
		assert.Equal(t, 12, calculation.Tenure)
		assert.True(t, calculation.MonthlyInstallment.Equal(expected.MonthlyInstallment))
		assert.True(t, calculation.TotalInterest.Equal(expected.TotalInterest))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM emi_calculations WHERE id").
			WithArgs(expected.ID).
			WillReturnRows(sqlmock.NewRows(calculationColumns))

		calculation, err := repo.GetByID(context.Background(), expected.ID)

		assert.Nil(t, calculation)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEMIRepository_ListByUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEMIRepository(db)
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(calculationColumns).
		AddRow(uuid.NewString(), "user-1", "5000", "0", 10, "500", "5000", "0", newer).
		AddRow(uuid.NewString(), "user-1", "100000", "12", 12, "8884.88", "106618.56", "6618.56", older)
	mock.ExpectQuery("SELECT (.+) FROM emi_calculations WHERE user_id = \\$1 ORDER BY created_at DESC LIMIT \\$2").
		WithArgs("user-1", 20).
		WillReturnRows(rows)

	calculations, err := repo.ListByUser(context.Background(), "user-1", 20)

	require.NoError(t, err)
	require.Len(t, calculations, 2)
	assert.Equal(t, newer, calculations[0].CreatedAt)
	assert.Equal(t, older, calculations[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEMIRepository_ListByUser_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEMIRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM emi_calculations").
		WithArgs("nobody", 5).
		WillReturnRows(sqlmock.NewRows(calculationColumns))

	calculations, err := repo.ListByUser(context.Background(), "nobody", 5)

	require.NoError(t, err)
	assert.NotNil(t, calculations)
	assert.Empty(t, calculations)
}

func TestEMIRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		expected bool
		wantErr  bool
	}{
		{name: "owned row removed", affected: 1, expected: true},
		{name: "no matching row", affected: 0, expected: false},
		{name: "database error", execErr: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewEMIRepository(db)
			id := uuid.New()

			exp := mock.ExpectExec("DELETE FROM emi_calculations WHERE id = \\$1 AND user_id = \\$2").
				WithArgs(id, "user-1")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			removed, err := repo.Delete(context.Background(), "user-1", id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, removed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEMIRepository_DeleteOlderThan(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewEMIRepository(db)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM emi_calculations WHERE created_at < \\$1").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.DeleteOlderThan(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
