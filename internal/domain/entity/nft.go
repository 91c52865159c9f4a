package entity

// NftMetadata is the normalized metadata object of an NFT item. Image may use
// an ipfs:// URI and must be rewritten to an HTTP gateway URL before display.
type NftMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// NftItem is one NFT position of a wallet as reported by the upstream data
// provider.
type NftItem struct {
	TokenAddress string      `json:"token_address"`
	TokenID      string      `json:"token_id"`
	ContractType NftStandard `json:"contract_type"`
	Amount       string      `json:"amount"` // owned count, relevant for ERC-1155
	Name         string      `json:"name"`
	Symbol       string      `json:"symbol"`
	Metadata     NftMetadata `json:"normalized_metadata"`
}
