package entity

// TransferRequest describes one outgoing transfer to build, sign and submit.
// Amount is a decimal string in asset units for native and ERC-20 transfers
// and an integer count for ERC-1155; it is ignored for ERC-721/721A, which
// always move exactly one token.
type TransferRequest struct {
	SeedPhrase string          `json:"seedPhrase"`
	Recipient  string          `json:"recipient"`
	Asset      AssetDescriptor `json:"asset"`
	Amount     string          `json:"amount"`
}

// OutgoingTransfer is a transfer as collected from the send form: everything
// a TransferRequest needs except the seed phrase, which the wallet session
// supplies from its own state.
type OutgoingTransfer struct {
	Recipient string          `json:"recipient"`
	Asset     AssetDescriptor `json:"asset"`
	Amount    string          `json:"amount"`
}

// TransferStatus is the on-chain inclusion outcome of a submitted transfer.
type TransferStatus string

const (
	StatusSuccess TransferStatus = "success"
	StatusFailed  TransferStatus = "failed"
	// StatusPending means the transaction was broadcast but inclusion was not
	// observed before the confirmation timeout. The transfer may still land;
	// callers should present it as "status unknown, check explorer".
	StatusPending TransferStatus = "pending"
)

// TransferReceipt is the normalized result of a confirmed (or timed-out)
// transfer submission. To and Amount are taken from the parsed Transfer event
// when one was decodable, else fall back to the request's recipient/amount.
type TransferReceipt struct {
	ChainKey        string         `json:"chainKey"`
	TransactionHash string         `json:"transactionHash"`
	FromAddress     string         `json:"fromAddress"`
	ToAddress       string         `json:"toAddress"`
	FeePaid         string         `json:"feePaid"` // native currency, decimal string
	Amount          string         `json:"amount"`  // asset units, decimal string
	Status          TransferStatus `json:"status"`
	ExplorerURL     string         `json:"explorerUrl,omitempty"`
}
