package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EMICalculation is the persisted summary of one calculation. The
// schedule is not stored; it is reproducible from the terms.
type EMICalculation struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	UserID             string          `json:"user_id" db:"user_id"`
	Principal          decimal.Decimal `json:"principal" db:"principal"`
	Rate               decimal.Decimal `json:"rate" db:"rate"`
	Tenure             int             `json:"tenure" db:"tenure"`
	MonthlyInstallment decimal.Decimal `json:"emi" db:"emi"`
	TotalPayment       decimal.Decimal `json:"total_payment" db:"total_payment"`
	TotalInterest      decimal.Decimal `json:"total_interest" db:"total_interest"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// Terms rebuilds the loan terms the calculation was made with
func (c *EMICalculation) Terms() LoanTerms {
	return LoanTerms{
		Principal:         c.Principal.InexactFloat64(),
		AnnualRatePercent: c.Rate.InexactFloat64(),
		TenureMonths:      c.Tenure,
	}
}

// NewEMICalculation builds the summary record for terms and result
func NewEMICalculation(userID string, terms LoanTerms, result *EMIResult, createdAt time.Time) *EMICalculation {
	return &EMICalculation{
		ID:                 uuid.New(),
		UserID:             userID,
		Principal:          decimal.NewFromFloat(terms.Principal),
		Rate:               decimal.NewFromFloat(terms.AnnualRatePercent),
		Tenure:             terms.TenureMonths,
		MonthlyInstallment: result.MonthlyInstallment,
		TotalPayment:       result.TotalPayment,
		TotalInterest:      result.TotalInterest,
		CreatedAt:          createdAt,
	}
}
