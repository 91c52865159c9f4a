// Package hdkey derives EVM signing keys from BIP-39 seed phrases along the
// standard Ethereum path m/44'/60'/0'/0/0, matching what browser wallets do
// when recovering an account from a mnemonic.
package hdkey

import (
	"crypto/ecdsa"
	"fmt"

	"pocket_wallet/internal/domain/entity"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// ethereumPath is m/44'/60'/0'/0/0: purpose, coin type 60 (ETH), account 0,
// external chain, address index 0.
var ethereumPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// ValidatePhrase checks a mnemonic against the BIP-39 wordlist and checksum.
func ValidatePhrase(seedPhrase string) error {
	if !bip39.IsMnemonicValid(seedPhrase) {
		return entity.ErrInvalidSeedPhrase
	}
	return nil
}

// DeriveKey derives the account's ECDSA signing key from a seed phrase.
func DeriveKey(seedPhrase string) (*ecdsa.PrivateKey, error) {
	if !bip39.IsMnemonicValid(seedPhrase) {
		return nil, entity.ErrInvalidSeedPhrase
	}

	seed := bip39.NewSeed(seedPhrase, "")
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to build master key: %w", err)
	}
	for _, child := range ethereumPath {
		key, err = key.Derive(child)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child key %d: %w", child, err)
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	return privKey.ToECDSA(), nil
}

// DeriveAddress derives the account address for a seed phrase.
func DeriveAddress(seedPhrase string) (common.Address, error) {
	key, err := DeriveKey(seedPhrase)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}
