package chainregistry

import (
	"fmt"

	"pocket_wallet/internal/app/port"
	"pocket_wallet/internal/domain/entity"
)

// Registry is the static table of supported chains, keyed by hex chain id.
// The table is fixed at construction; adding a chain is a registry update and
// nothing else in the codebase changes.
type Registry struct {
	logger port.Logger
	byKey  map[string]entity.ChainDescriptor
	order  []string
}

// chainSpec is one row of the table before the RPC key is bound. The RPC
// endpoint becomes https://<infuraHost>.infura.io/v3/<key>.
type chainSpec struct {
	key            string
	chainID        uint64
	name           string
	nativeSymbol   string
	infuraHost     string
	explorerTxURL  string
	nativeDecimals uint8
}

var supportedChains = []chainSpec{
	{"0x1", 1, "Ethereum Mainnet", "ETH", "mainnet", "https://etherscan.io/tx/", 18},
	{"0xaa36a7", 11155111, "Sepolia Testnet", "ETH", "sepolia", "https://sepolia.etherscan.io/tx/", 18},
	{"0x89", 137, "Polygon Mainnet", "MATIC", "polygon-mainnet", "https://polygonscan.com/tx/", 18},
	{"0x13882", 80002, "Amoy Testnet", "MATIC", "polygon-amoy", "https://amoy.polygonscan.com/tx/", 18},
	{"0xa86a", 43114, "Avalanche Mainnet", "AVAX", "avalanche-mainnet", "https://cchain.explorer.avax.network/tx/", 18},
	{"0xa4b1", 42161, "Arbitrum Mainnet", "ETH", "arbitrum-mainnet", "https://arbiscan.io/tx/", 18},
	{"0xa", 10, "Optimism Mainnet", "ETH", "optimism-mainnet", "https://optimistic.etherscan.io/tx/", 18},
}

// NewRegistry builds the chain table with RPC endpoints bound to the given
// Infura API key.
func NewRegistry(infuraKey string, logger port.Logger) *Registry {
	r := &Registry{
		logger: logger,
		byKey:  make(map[string]entity.ChainDescriptor, len(supportedChains)),
		order:  make([]string, 0, len(supportedChains)),
	}
	for _, spec := range supportedChains {
		desc := entity.ChainDescriptor{
			Key:            spec.key,
			ChainID:        spec.chainID,
			Name:           spec.name,
			NativeSymbol:   spec.nativeSymbol,
			NativeDecimals: spec.nativeDecimals,
			RPCEndpoint:    fmt.Sprintf("https://%s.infura.io/v3/%s", spec.infuraHost, infuraKey),
			ExplorerTxURL:  spec.explorerTxURL,
		}
		r.byKey[spec.key] = desc
		r.order = append(r.order, spec.key)
	}
	if logger != nil {
		logger.Info("Chain registry initialized", "chains", len(r.order))
	}
	return r
}

// Resolve returns the descriptor for a chain key.
func (r *Registry) Resolve(chainKey string) (entity.ChainDescriptor, error) {
	desc, ok := r.byKey[chainKey]
	if !ok {
		if r.logger != nil {
			r.logger.Warn("Chain key not found in registry", "chainKey", chainKey)
		}
		return entity.ChainDescriptor{}, fmt.Errorf("%w: %s", entity.ErrUnsupportedChain, chainKey)
	}
	return desc, nil
}

// All returns every supported chain descriptor in declaration order.
func (r *Registry) All() []entity.ChainDescriptor {
	out := make([]entity.ChainDescriptor, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byKey[key])
	}
	return out
}
