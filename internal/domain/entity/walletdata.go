package entity

// WalletData is the raw result of one fetch cycle against the upstream data
// provider: token balances with prices, NFT inventory, and the two transfer
// feeds. It is produced fresh on every fetch and fully replaced, never
// patched.
type WalletData struct {
	Tokens         []TokenBalance
	Nfts           []NftItem
	TokenTransfers []HistoryRecord
	NftTransfers   []HistoryRecord
}

// PortfolioSnapshot is the derived, display-ready state of a wallet on one
// chain: the raw data plus the merged history feed and the net-worth summary.
// Snapshots are immutable once published; a refetch swaps the whole snapshot.
type PortfolioSnapshot struct {
	Address     string          `json:"address"`
	ChainKey    string          `json:"chainKey"`
	Tokens      []TokenBalance  `json:"tokens"`
	Nfts        []NftItem       `json:"nfts"`
	History     []HistoryRecord `json:"historys"`
	HistoryDays []HistoryDay    `json:"historyDays"`
	Networth    NetworthSummary `json:"networth"`
}

// NetworthSummary holds the aggregate USD metrics derived from a token list.
type NetworthSummary struct {
	TotalUSD      float64 `json:"totalUsd"`
	Change24hrUSD float64 `json:"change24hrUsd"`
	Change24hrPct float64 `json:"change24hrPct"`
}
