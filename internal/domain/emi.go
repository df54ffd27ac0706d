package domain

import (
	"github.com/shopspring/decimal"
)

// LoanTerms are the inputs of a single EMI calculation
type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"rate"`
	TenureMonths      int     `json:"tenure"`
}

// EMIResult is the derived installment summary and amortization schedule.
// Money fields are rounded to 2 decimal places.
type EMIResult struct {
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TotalPayment       decimal.Decimal `json:"total_payment"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	Schedule           []ScheduleRow   `json:"schedule"`
}

// ScheduleRow is one month of the amortization schedule
type ScheduleRow struct {
	Month              int             `json:"month"`
	Installment        decimal.Decimal `json:"installment"`
	PrincipalComponent decimal.Decimal `json:"principal_component"`
	InterestComponent  decimal.Decimal `json:"interest_component"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
}

// DTOs for requests and responses

// CalculateEMIRequest uses pointers so a missing field can be told apart
// from an explicit zero.
type CalculateEMIRequest struct {
	Principal *float64 `json:"principal" validate:"required"`
	Rate      *float64 `json:"rate" validate:"required"`
	Tenure    *int     `json:"tenure" validate:"required"`
}

type CalculateEMIResponse struct {
	Calculation *EMICalculation `json:"calculation"`
	Result      *EMIResult      `json:"result"`
}

type CalculationDetailResponse struct {
	Calculation *EMICalculation `json:"calculation"`
	Schedule    []ScheduleRow   `json:"schedule"`
}

type HistoryResponse struct {
	Calculations []*EMICalculation `json:"calculations"`
	Count        int               `json:"count"`
}
