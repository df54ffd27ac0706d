package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyRate converts an annual percentage rate into a monthly fraction
// e.g. 12 (percent per year) becomes 0.01
func MonthlyRate(annualRatePercent float64) float64 {
	return (annualRatePercent / 12) / 100
}

// CalculateMonthlyInstallment calculates the fixed monthly installment
// Formula: P * r * (1+r)^n / ((1+r)^n - 1), or P / n when the rate is zero
func CalculateMonthlyInstallment(principal float64, annualRatePercent float64, months int) float64 {
	r := MonthlyRate(annualRatePercent)
	n := float64(months)
	if r == 0 {
		return principal / n
	}

	// Same annuity formula divided through by (1+r)^n, which keeps
	// long tenures from overflowing.
	denominator := 1 - math.Pow(1+r, -n)
	if denominator == 0 {
		return principal / n
	}

	return principal * r / denominator
}

// RoundCurrency rounds to 2 decimal places, half away from zero
func RoundCurrency(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(2)
}

// IsFinite reports whether value is neither NaN nor an infinity
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

