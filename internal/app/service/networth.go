package service

import (
	"math"

	"pocket_wallet/internal/domain/entity"
)

// NetworthCalculator derives aggregate USD metrics from a wallet's token
// list. All functions are pure; tokens without price data count as zero.
type NetworthCalculator struct{}

func NewNetworthCalculator() *NetworthCalculator {
	return &NetworthCalculator{}
}

// Summarize computes the full net-worth summary for one token list.
func (c *NetworthCalculator) Summarize(tokens []entity.TokenBalance) entity.NetworthSummary {
	total := c.TotalNetworth(tokens)
	change := c.NetWorth24hrUSDChange(tokens)
	return entity.NetworthSummary{
		TotalUSD:      total,
		Change24hrUSD: change,
		Change24hrPct: c.NetWorth24hrPctChange(total, change),
	}
}

// TotalNetworth sums the USD value of every token, rounded to 2 places.
func (c *NetworthCalculator) TotalNetworth(tokens []entity.TokenBalance) float64 {
	var total float64
	for _, token := range tokens {
		if token.USDValue != nil {
			total += *token.USDValue
		}
	}
	return round2(total)
}

// NetWorth24hrUSDChange sums the 24-hour USD change across every token,
// rounded to 2 places.
func (c *NetworthCalculator) NetWorth24hrUSDChange(tokens []entity.TokenBalance) float64 {
	var change float64
	for _, token := range tokens {
		if token.USDValue24hrChange != nil {
			change += *token.USDValue24hrChange
		}
	}
	return round2(change)
}

// NetWorth24hrPctChange derives the relative 24-hour change from the current
// total and the absolute change. A zero previous value yields 0 rather than
// a division error.
func (c *NetworthCalculator) NetWorth24hrPctChange(totalUSD, changeUSD float64) float64 {
	previous := totalUSD - changeUSD
	if previous == 0 {
		return 0
	}
	return round2(changeUSD / previous * 100)
}

// PortfolioPercentage fills in each token's share of the wallet total. With
// a zero total every share is 0.
func (c *NetworthCalculator) PortfolioPercentage(tokens []entity.TokenBalance) []entity.TokenBalance {
	total := c.TotalNetworth(tokens)
	out := make([]entity.TokenBalance, len(tokens))
	for i, token := range tokens {
		out[i] = token
		if total == 0 || token.USDValue == nil {
			out[i].PortfolioPercentage = 0
			continue
		}
		out[i].PortfolioPercentage = round2(*token.USDValue / total * 100)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
