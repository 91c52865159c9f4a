package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBigInt(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		expected string
	}{
		{"whole tokens", "1000000000000000000", 18, "1"},
		{"fraction trimmed", "1234500000000000000", 18, "1.2345"},
		{"zero", "0", 18, "0"},
		{"zero decimals", "42", 0, "42"},
		{"below one", "500000", 6, "0.5"},
		{"usdc style", "12345678", 6, "12.345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := new(big.Int).SetString(tt.amount, 10)
			require.True(t, ok)

			result, err := FormatBigInt(amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatBigIntNil(t *testing.T) {
	result, err := FormatBigInt(nil, 18)
	require.NoError(t, err)
	assert.Equal(t, "0", result)
}

func TestFormatBigIntFixed(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		places   int
		expected string
	}{
		{"fee at five places", "1234500000000000", 18, 5, "0.00123"},
		{"rounds", "1999999999999999", 18, 5, "0.00200"},
		{"zero", "0", 18, 5, "0.00000"},
		{"whole", "2000000000000000000", 18, 5, "2.00000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := new(big.Int).SetString(tt.amount, 10)
			require.True(t, ok)
			assert.Equal(t, tt.expected, FormatBigIntFixed(amount, tt.decimals, tt.places))
		})
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals uint8
		expected string
		wantErr  bool
	}{
		{"whole", "1", 18, "1000000000000000000", false},
		{"fraction", "1.2345", 18, "1234500000000000000", false},
		{"leading dot", ".5", 18, "500000000000000000", false},
		{"zero", "0", 18, "0", false},
		{"six decimals", "12.345678", 6, "12345678", false},
		{"too precise", "0.1234567", 6, "", true},
		{"negative", "-1", 18, "", true},
		{"empty", "", 18, "", true},
		{"garbage", "abc", 18, "", true},
		{"double dot", "1.2.3", 18, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDecimal(tt.input, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.String())
		})
	}
}

func TestParseUint(t *testing.T) {
	value, err := ParseUint("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", value.String())

	_, err = ParseUint("-1")
	assert.Error(t, err)

	_, err = ParseUint("1.5")
	assert.Error(t, err)

	_, err = ParseUint("")
	assert.Error(t, err)
}
