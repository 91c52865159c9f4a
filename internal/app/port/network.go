package port

import (
	"context"

	"pocket_wallet/internal/domain/entity"
)

// BlockchainClient defines the interface for interacting with one EVM chain:
// fee estimation and transfer submission against the chain's RPC endpoint.
type BlockchainClient interface {
	// EstimateFee returns the current cost of gasLimit units of gas as a
	// native-currency decimal string with 5 fractional places. On any network
	// or parsing failure it returns "0": fee display is advisory and callers
	// must not block a transfer on estimation failure.
	EstimateFee(ctx context.Context, gasLimit uint64) string

	// Send builds, signs, submits and confirms one transfer, returning the
	// normalized receipt. Validation errors surface as ErrInvalidRecipient /
	// ErrInvalidAmount before any network call; everything thrown during
	// signing, broadcast or the confirmation wait is wrapped into
	// ErrSubmissionFailed (or ErrReceiptTimeout for an unconfirmed broadcast).
	Send(ctx context.Context, req entity.TransferRequest) (entity.TransferReceipt, error)

	// Descriptor returns the chain descriptor this client talks to.
	Descriptor() entity.ChainDescriptor
}

// BlockchainClientProvider hands out (cached) clients per chain descriptor.
type BlockchainClientProvider interface {
	GetClient(desc entity.ChainDescriptor) (BlockchainClient, error)
}
