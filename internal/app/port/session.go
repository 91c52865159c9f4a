package port

import (
	"context"

	"pocket_wallet/internal/domain/entity"
)

// WalletSession holds the active wallet (address, seed phrase, selected
// chain) and coordinates fetching, aggregation and transfer submission.
// There is at most one open session; all methods are safe for concurrent use.
type WalletSession interface {
	// Open validates the seed phrase, derives the account address, persists
	// the phrase to the vault and activates the session.
	Open(seedPhrase string) (address string, err error)

	// Resume reopens a session from the phrase stored in the vault, if any.
	Resume() (address string, ok bool)

	// Close clears the vault and drops all in-memory session state.
	Close()

	// Address returns the active account address.
	Address() (string, bool)

	// SelectChain switches the session to another chain and invalidates the
	// current snapshot. Fails with entity.ErrUnsupportedChain.
	SelectChain(chainKey string) error

	// Refresh fetches wallet data from the upstream provider, derives the
	// merged history and net-worth summary and atomically replaces the
	// snapshot. On failure the previous snapshot stays and
	// entity.ErrFetchFailed is returned.
	Refresh(ctx context.Context) error

	// Snapshot returns the last published portfolio snapshot, if any.
	Snapshot() (*entity.PortfolioSnapshot, bool)

	// Send submits one transfer on the selected chain using the session's
	// seed phrase. Submissions are serialized; after a confirmed send a
	// delayed refresh is scheduled to let the data provider index.
	Send(ctx context.Context, out entity.OutgoingTransfer) (entity.TransferReceipt, error)

	// EstimateFee returns the advisory fee estimate for the selected chain.
	EstimateFee(ctx context.Context, gasLimit uint64) string
}
