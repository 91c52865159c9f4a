package entity

// ChainDescriptor holds the static configuration for a supported EVM-compatible network.
// Instances are defined once at process start by the chain registry and never mutated.
type ChainDescriptor struct {
	Key            string `json:"key" yaml:"key"` // hex chain id, e.g. "0x1"
	ChainID        uint64 `json:"chainId" yaml:"chainId"`
	Name           string `json:"name" yaml:"name"`
	NativeSymbol   string `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeDecimals uint8  `json:"nativeDecimals" yaml:"nativeDecimals"`
	RPCEndpoint    string `json:"-" yaml:"rpcEndpoint"`
	ExplorerTxURL  string `json:"explorerTxUrl" yaml:"explorerTxUrl"` // prefix, transaction hash is appended
}

// TxURL returns the block-explorer URL for a transaction hash on this chain.
func (c ChainDescriptor) TxURL(hash string) string {
	return c.ExplorerTxURL + hash
}
