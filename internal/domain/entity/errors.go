package entity

import "errors"

// Sentinel errors of the wallet core. Callers match with errors.Is; the
// concrete cause is carried by wrapping.
var (
	// ErrUnsupportedChain means the requested chain key is absent from the
	// registry. Fatal for the requested operation, never retried.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrInvalidRecipient means the recipient failed address-format
	// validation. Checked at the builder boundary even though the UI also
	// prevents it.
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// ErrInvalidAmount means a required amount was missing or non-positive
	// (ERC-1155 sends have no implicit default).
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidSeedPhrase means the mnemonic failed BIP-39 validation.
	ErrInvalidSeedPhrase = errors.New("invalid seed phrase")

	// ErrSubmissionFailed means signing, broadcast or the confirmation wait
	// threw. Never retried automatically; no partial state may be assumed.
	ErrSubmissionFailed = errors.New("transaction submission failed")

	// ErrReceiptTimeout means the transaction was broadcast but not confirmed
	// within the configured window. The transfer may still land later.
	ErrReceiptTimeout = errors.New("timed out waiting for transaction confirmation")

	// ErrFetchFailed means the balances/NFTs/history fetch from the upstream
	// data provider failed as a whole. Non-fatal; the previous snapshot stays.
	ErrFetchFailed = errors.New("wallet data fetch failed")

	// ErrNoSession means an operation requiring an open wallet session was
	// called without one.
	ErrNoSession = errors.New("no wallet session open")
)
