package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyRate(t *testing.T) {
	assert.InDelta(t, 0.01, MonthlyRate(12), 1e-15)
	assert.InDelta(t, 0.00625, MonthlyRate(7.5), 1e-15)
	assert.Equal(t, 0.0, MonthlyRate(0))
}

func TestCalculateMonthlyInstallment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		expected  decimal.Decimal
	}{
		{
			name:      "standard loan calculation",
			principal: 100000,
			rate:      12,
			months:    12,
			expected:  decimal.RequireFromString("8884.88"),
		},
		{
			name:      "twenty year mortgage",
			principal: 250000,
			rate:      8.5,
			months:    240,
			expected:  decimal.RequireFromString("2169.56"),
		},
		{
			name:      "zero interest rate",
			principal: 120000,
			rate:      0,
			months:    24,
			expected:  decimal.NewFromInt(5000), // 120,000 / 24 = 5,000
		},
		{
			name:      "single installment",
			principal: 1000,
			rate:      12,
			months:    1,
			expected:  decimal.NewFromInt(1010), // one month of 1% interest
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundCurrency(CalculateMonthlyInstallment(tt.principal, tt.rate, tt.months))
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestCalculateMonthlyInstallment_VanishingRate(t *testing.T) {
	// the rate is too small to move 1+r away from 1 in float64
	result := CalculateMonthlyInstallment(1200, 1e-20, 12)
	assert.Equal(t, 100.0, result)
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{2.345, "2.35"},
		{-2.345, "-2.35"},
		{2.344, "2.34"},
		{0.005, "0.01"},
		{6.730260793119669e-11, "0"},
		{-3.028617356903851e-10, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RoundCurrency(tt.value).String(), "value %v", tt.value)
	}
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}
