package port

import (
	"context"

	"pocket_wallet/internal/domain/entity"
)

// WalletDataClient is the boundary to the external blockchain-data provider:
// token balances with prices, NFT inventory and the two transfer-history
// feeds for one address on one chain. A failed call fails the whole fetch;
// the core never merges partial results across retries.
type WalletDataClient interface {
	FetchWalletData(ctx context.Context, address, chainKey string) (entity.WalletData, error)
}

// LogoProvider serves token-logo images by symbol.
type LogoProvider interface {
	// Logo returns the PNG bytes for a symbol, or an error when no image
	// exists. Lookup failure is isolated per symbol and never fatal; callers
	// substitute Placeholder.
	Logo(symbol string) ([]byte, error)

	// Placeholder returns the generic image used when a logo is missing.
	Placeholder() []byte
}
