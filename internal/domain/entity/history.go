package entity

import "time"

// HistoryRecord is a single wallet activity entry, normalized to a common
// superset of the token-transfer and NFT-transfer shapes the upstream data
// provider returns. ValueDecimal is set for token transfers, Amount and
// ContractType for NFT transfers. Image is attached during history merging
// for NFT records whose collection is still in the wallet's inventory.
type HistoryRecord struct {
	BlockTimestamp  time.Time   `json:"blockTimestamp"`
	TransactionHash string      `json:"transactionHash"`
	FromAddress     string      `json:"fromAddress"`
	ToAddress       string      `json:"toAddress"`
	TokenAddress    string      `json:"tokenAddress"`
	TokenSymbol     string      `json:"tokenSymbol"`
	TokenDecimals   uint8       `json:"tokenDecimals,omitempty"`
	ValueDecimal    string      `json:"valueDecimal,omitempty"`
	Amount          string      `json:"amount,omitempty"`
	TokenID         string      `json:"tokenId,omitempty"`
	ContractType    NftStandard `json:"contractType,omitempty"`
	Image           string      `json:"image,omitempty"`
}

// IsNftTransfer reports whether the record came from the NFT transfer feed.
func (r HistoryRecord) IsNftTransfer() bool {
	return r.ContractType != ""
}

// HistoryDay is one calendar-day bucket of the merged history feed. Records
// keep their timestamp-descending order within the bucket.
type HistoryDay struct {
	Label   string          `json:"label"` // e.g. "Monday, January 2, 2006"
	Records []HistoryRecord `json:"records"`
}
