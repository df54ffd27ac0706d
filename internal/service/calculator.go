package service

import (
	"github.com/segyhp/fintrack/internal/domain"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/segyhp/fintrack/pkg/utils"

	"github.com/shopspring/decimal"
)

// ComputeEMI calculates the fixed monthly installment for terms and the
// month-by-month amortization schedule.
//
// Every money field is rounded independently to 2 places (half away from
// zero) while the running balance stays unrounded. No balancing payment is
// made in the last month, so the final remaining balance can be a few cents
// away from zero.
func ComputeEMI(terms domain.LoanTerms) (*domain.EMIResult, error) {
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}

	principal := terms.Principal
	months := terms.TenureMonths
	monthlyRate := utils.MonthlyRate(terms.AnnualRatePercent)

	installment := utils.CalculateMonthlyInstallment(principal, terms.AnnualRatePercent, months)
	if !utils.IsFinite(installment) {
		return nil, customError.NewInvalidTermsError("principal", "is too large to calculate an installment")
	}

	monthlyInstallment := utils.RoundCurrency(installment)
	totalPayment := monthlyInstallment.Mul(decimal.NewFromInt(int64(months))).Round(2)
	totalInterest := totalPayment.Sub(decimal.NewFromFloat(principal)).Round(2)

	schedule := make([]domain.ScheduleRow, 0, months)
	remaining := principal

	for month := 1; month <= months; month++ {
		interestPayment := remaining * monthlyRate
		principalPayment := installment - interestPayment
		remaining -= principalPayment

		schedule = append(schedule, domain.ScheduleRow{
			Month:              month,
			Installment:        monthlyInstallment,
			PrincipalComponent: utils.RoundCurrency(principalPayment),
			InterestComponent:  utils.RoundCurrency(interestPayment),
			RemainingBalance:   utils.RoundCurrency(remaining),
		})
	}

	return &domain.EMIResult{
		MonthlyInstallment: monthlyInstallment,
		TotalPayment:       totalPayment,
		TotalInterest:      totalInterest,
		Schedule:           schedule,
	}, nil
}

// ValidateTerms checks that principal is positive, the rate is not negative
// and the tenure is at least one month.
func ValidateTerms(terms domain.LoanTerms) error {
	if !utils.IsFinite(terms.Principal) || terms.Principal <= 0 {
		return customError.NewInvalidTermsError("principal", "must be a positive amount")
	}

	if !utils.IsFinite(terms.AnnualRatePercent) || terms.AnnualRatePercent < 0 {
		return customError.NewInvalidTermsError("rate", "must be zero or a positive annual percentage")
	}

	if terms.TenureMonths <= 0 {
		return customError.NewInvalidTermsError("tenure", "must be a positive number of months")
	}

	return nil
}
