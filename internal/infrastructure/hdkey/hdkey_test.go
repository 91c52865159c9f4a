package hdkey

import (
	"testing"

	"pocket_wallet/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The standard BIP-39 test mnemonic; its m/44'/60'/0'/0/0 address is a
// well-known vector shared by every major wallet implementation.
const testMnemonic = "test test test test test test test test test test test junk"

const testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestValidatePhrase(t *testing.T) {
	assert.NoError(t, ValidatePhrase(testMnemonic))

	tests := []struct {
		name   string
		phrase string
	}{
		{"empty", ""},
		{"wrong word count", "test test test"},
		{"bad checksum", "test test test test test test test test test test test test"},
		{"not wordlist words", "foo bar baz qux quux corge grault garply waldo fred plugh xyzzy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidatePhrase(tt.phrase), entity.ErrInvalidSeedPhrase)
		})
	}
}

func TestDeriveAddress(t *testing.T) {
	address, err := DeriveAddress(testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, testAddress, address.Hex())
}

func TestDeriveAddressDeterministic(t *testing.T) {
	first, err := DeriveAddress(testMnemonic)
	require.NoError(t, err)
	second, err := DeriveAddress(testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeriveKeyInvalidPhrase(t *testing.T) {
	_, err := DeriveKey("not a mnemonic")
	assert.ErrorIs(t, err, entity.ErrInvalidSeedPhrase)
}
