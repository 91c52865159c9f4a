package entity

// ZeroAddress represents the Ethereum zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TokenBalance is one token position of a wallet as reported by the upstream
// data provider. Price-related fields are pointers: the provider returns null
// when it has no price data, and that must stay distinguishable from zero
// until aggregation time.
type TokenBalance struct {
	TokenAddress          string   `json:"token_address"`
	Name                  string   `json:"name"`
	Symbol                string   `json:"symbol"`
	Decimals              uint8    `json:"decimals"`
	Balance               string   `json:"balance"` // raw integer amount in token base units
	BalanceFormatted      string   `json:"balance_formatted"`
	USDPrice              *float64 `json:"usd_price"`
	USDPrice24hrPctChange *float64 `json:"usd_price_24hr_percent_change"`
	USDValue24hrChange    *float64 `json:"usd_value_24hr_usd_change"`
	USDValue              *float64 `json:"usd_value"`
	PortfolioPercentage   float64  `json:"portfolio_percentage"`
	NativeToken           bool     `json:"native_token"`
	PossibleSpam          bool     `json:"possible_spam"`
	VerifiedContract      bool     `json:"verified_contract"`
}
