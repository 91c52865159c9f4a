package port

import "pocket_wallet/internal/domain/entity"

// ChainRegistry resolves hex chain-id keys to chain descriptors. The table
// behind it is fixed at process start; no mutation is exposed.
type ChainRegistry interface {
	// Resolve returns the descriptor for the given chain key, or
	// entity.ErrUnsupportedChain when the key is unknown.
	Resolve(chainKey string) (entity.ChainDescriptor, error)

	// All returns every supported chain descriptor.
	All() []entity.ChainDescriptor
}
