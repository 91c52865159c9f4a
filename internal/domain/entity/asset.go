package entity

// AssetKind discriminates the asset variants a transfer can move.
type AssetKind int

const (
	// AssetNative is the chain's base currency (ETH, MATIC, ...).
	AssetNative AssetKind = iota
	// AssetERC20 is a fungible token contract.
	AssetERC20
	// AssetNFT is a non-fungible or semi-fungible token contract.
	AssetNFT
)

// NftStandard identifies the token-contract standard of an NFT asset.
type NftStandard string

const (
	StandardERC721  NftStandard = "ERC721"
	StandardERC721A NftStandard = "ERC721A"
	StandardERC1155 NftStandard = "ERC1155"
)

// AssetDescriptor is the tagged union describing what a transfer moves.
// ContractAddress is set for ERC20 and NFT kinds; TokenID and Standard only
// for NFT. Decimals applies to ERC20 only; zero means "not supplied", in
// which case 18 is assumed at submission time.
type AssetDescriptor struct {
	Kind            AssetKind   `json:"kind"`
	ChainKey        string      `json:"chainKey"`
	ContractAddress string      `json:"contractAddress,omitempty"`
	TokenID         string      `json:"tokenId,omitempty"`
	Standard        NftStandard `json:"standard,omitempty"`
	Decimals        uint8       `json:"decimals,omitempty"`
}

// NativeAsset describes a transfer of the chain's base currency.
func NativeAsset(chainKey string) AssetDescriptor {
	return AssetDescriptor{Kind: AssetNative, ChainKey: chainKey}
}

// ERC20Asset describes a fungible token transfer. Pass decimals 0 when the
// token's precision is unknown; 18 will be assumed.
func ERC20Asset(chainKey, contractAddress string, decimals uint8) AssetDescriptor {
	return AssetDescriptor{Kind: AssetERC20, ChainKey: chainKey, ContractAddress: contractAddress, Decimals: decimals}
}

// NFTAsset describes an ERC-721/721A/1155 transfer.
func NFTAsset(chainKey, contractAddress, tokenID string, standard NftStandard) AssetDescriptor {
	return AssetDescriptor{Kind: AssetNFT, ChainKey: chainKey, ContractAddress: contractAddress, TokenID: tokenID, Standard: standard}
}
