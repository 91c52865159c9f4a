package service

import (
	"testing"

	"pocket_wallet/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestTotalNetworth(t *testing.T) {
	calc := NewNetworthCalculator()

	tests := []struct {
		name     string
		tokens   []entity.TokenBalance
		expected float64
	}{
		{"empty", nil, 0},
		{
			"sums values",
			[]entity.TokenBalance{
				{USDValue: ptr(100.5)},
				{USDValue: ptr(49.75)},
			},
			150.25,
		},
		{
			"nil price counts as zero",
			[]entity.TokenBalance{
				{USDValue: ptr(10)},
				{USDValue: nil},
			},
			10,
		},
		{
			"rounds to two places",
			[]entity.TokenBalance{
				{USDValue: ptr(0.005)},
				{USDValue: ptr(0.001)},
			},
			0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.TotalNetworth(tt.tokens))
		})
	}
}

func TestNetWorth24hrUSDChange(t *testing.T) {
	calc := NewNetworthCalculator()

	tokens := []entity.TokenBalance{
		{USDValue24hrChange: ptr(5.5)},
		{USDValue24hrChange: ptr(-2.25)},
		{USDValue24hrChange: nil},
	}
	assert.Equal(t, 3.25, calc.NetWorth24hrUSDChange(tokens))
}

func TestNetWorth24hrPctChange(t *testing.T) {
	calc := NewNetworthCalculator()

	tests := []struct {
		name     string
		total    float64
		change   float64
		expected float64
	}{
		{"gain", 110, 10, 10},
		{"loss", 90, -10, -10},
		{"zero previous value", 10, 10, 0},
		{"no change", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.NetWorth24hrPctChange(tt.total, tt.change))
		})
	}
}

func TestPortfolioPercentage(t *testing.T) {
	calc := NewNetworthCalculator()

	tokens := []entity.TokenBalance{
		{Symbol: "ETH", USDValue: ptr(75)},
		{Symbol: "USDC", USDValue: ptr(25)},
		{Symbol: "SPAM", USDValue: nil},
	}
	out := calc.PortfolioPercentage(tokens)

	assert.Equal(t, 75.0, out[0].PortfolioPercentage)
	assert.Equal(t, 25.0, out[1].PortfolioPercentage)
	assert.Equal(t, 0.0, out[2].PortfolioPercentage)

	// Input stays untouched.
	assert.Equal(t, 0.0, tokens[0].PortfolioPercentage)
}

func TestPortfolioPercentageZeroTotal(t *testing.T) {
	calc := NewNetworthCalculator()

	out := calc.PortfolioPercentage([]entity.TokenBalance{{USDValue: ptr(0)}})
	assert.Equal(t, 0.0, out[0].PortfolioPercentage)
}

func TestSummarize(t *testing.T) {
	calc := NewNetworthCalculator()

	tokens := []entity.TokenBalance{
		{USDValue: ptr(100), USDValue24hrChange: ptr(10)},
		{USDValue: ptr(10), USDValue24hrChange: ptr(-5)},
	}
	summary := calc.Summarize(tokens)

	assert.Equal(t, 110.0, summary.TotalUSD)
	assert.Equal(t, 5.0, summary.Change24hrUSD)
	assert.Equal(t, 4.76, summary.Change24hrPct)
}
