package validate

import (
	"testing"

	"github.com/Fantasim/hdkeygen/internal/models"
)

func TestSecret_Valid(t *testing.T) {
	rec := testRecord(t, 3)
	for _, chain := range models.AllChains {
		if err := Secret(chain, rec.Pair(chain).Secret); err != nil {
			t.Errorf("Secret(%s) error = %v", chain, err)
		}
	}
}

func TestSecret_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		chain  models.Chain
		secret string
	}{
		{"wif empty", models.ChainBTCLegacy, ""},
		{"wif hex form", models.ChainBTCSegWit, "0x" + "11223344556677889900aabbccddeeff11223344556677889900aabbccddeeff"},
		{"hex missing prefix", models.ChainETH, "11223344556677889900aabbccddeeff11223344556677889900aabbccddeeff"},
		{"hex short", models.ChainTRON, "0x1122"},
		{"hex uppercase", models.ChainETH, "0x11223344556677889900AABBCCDDEEFF11223344556677889900AABBCCDDEEFF"},
		{"sol 32 bytes", models.ChainSOL, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk"},
		{"unknown chain", "DOGE", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Secret(tt.chain, tt.secret); err == nil {
				t.Errorf("Secret(%s, %q) should fail", tt.chain, tt.secret)
			}
		})
	}
}

func TestIsValidWIF_SingleCharMutation(t *testing.T) {
	wif := testRecord(t, 0).BTCLegacy.Secret
	if !IsValidWIF(wif) {
		t.Fatalf("IsValidWIF(generated) = false")
	}

	for _, mutated := range mutateEach(wif, base58Alphabet) {
		if IsValidWIF(mutated) {
			t.Errorf("IsValidWIF accepted a mutated WIF")
		}
	}
}

func TestDecodeWIFCompressed(t *testing.T) {
	key, compressed, err := decodeWIF(testRecord(t, 0).BTCSegWit.Secret)
	if err != nil {
		t.Fatal(err)
	}
	if !compressed {
		t.Error("generated WIF is not compressed")
	}
	if len(key) != 32 {
		t.Errorf("key length = %d, want 32", len(key))
	}
}
