// Package validate re-checks every field of a WalletRecord against its own
// format and checksum rules. It shares no code with the derivation packages.
package validate

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/mr-tron/base58"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/models"
)

var (
	legacyAddressRegex = regexp.MustCompile(`^[13][a-km-zA-HJ-NP-Z1-9]{25,34}$`)
	segwitAddressRegex = regexp.MustCompile(`^(bc1)[0-9a-z]{25,62}$`)
	solAddressRegex    = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
	tronAddressRegex   = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
)

// Address validates that addr is a well-formed mainnet address for chain,
// including its checksum. ETH addresses must carry EIP-55 casing.
func Address(chain models.Chain, addr string) error {
	slog.Debug("validating address",
		"chain", chain,
		"address", addr,
	)

	switch chain {
	case models.ChainBTCLegacy:
		_, err := legacyPubKeyHash(addr)
		return err
	case models.ChainBTCSegWit:
		_, err := segwitProgram(addr)
		return err
	case models.ChainETH:
		return validateETH(addr)
	case models.ChainSOL:
		_, err := solPublicKey(addr)
		return err
	case models.ChainTRON:
		_, err := tronPayload(addr)
		return err
	default:
		return fmt.Errorf("unsupported chain %q", chain)
	}
}

// legacyPubKeyHash checks a P2PKH address and returns its 20-byte hash.
func legacyPubKeyHash(addr string) ([]byte, error) {
	if !legacyAddressRegex.MatchString(addr) {
		return nil, fmt.Errorf("invalid BTC Legacy address %q: does not match P2PKH format", addr)
	}

	version, payload, err := decodeBase58Check(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid BTC Legacy address %q: %w", addr, err)
	}
	if version != config.BTCPubKeyHashVersion {
		return nil, fmt.Errorf("invalid BTC Legacy address %q: version %#x, expected %#x", addr, version, config.BTCPubKeyHashVersion)
	}
	if len(payload) != config.PubKeyHashBytes {
		return nil, fmt.Errorf("invalid BTC Legacy address %q: payload is %d bytes, expected %d", addr, len(payload), config.PubKeyHashBytes)
	}

	// Cross-check with btcutil's decoder for the network and address type.
	decoded, err := btcutil.DecodeAddress(addr, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("invalid BTC Legacy address %q: %w", addr, err)
	}
	if _, ok := decoded.(*btcutil.AddressPubKeyHash); !ok {
		return nil, fmt.Errorf("invalid BTC Legacy address %q: not a P2PKH address", addr)
	}
	return payload, nil
}

// segwitProgram checks a bech32 P2WPKH address and returns its witness program.
func segwitProgram(addr string) ([]byte, error) {
	if !segwitAddressRegex.MatchString(addr) {
		return nil, fmt.Errorf("invalid BTC SegWit address %q: does not match bech32 format", addr)
	}

	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid BTC SegWit address %q: bech32 decode failed: %w", addr, err)
	}
	if hrp != config.SegWitHRP {
		return nil, fmt.Errorf("invalid BTC SegWit address %q: prefix %q, expected %q", addr, hrp, config.SegWitHRP)
	}
	if len(data) < 1 || data[0] != config.SegWitVersion {
		return nil, fmt.Errorf("invalid BTC SegWit address %q: expected witness version 0", addr)
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("invalid BTC SegWit address %q: %w", addr, err)
	}
	if len(program) != config.PubKeyHashBytes {
		return nil, fmt.Errorf("invalid BTC SegWit address %q: program is %d bytes, expected %d", addr, len(program), config.PubKeyHashBytes)
	}
	return program, nil
}

// validateETH checks 0x + 40 hex chars and the EIP-55 casing.
func validateETH(addr string) error {
	if !ethAddressRegex.MatchString(addr) {
		return fmt.Errorf("invalid ETH address %q: must match 0x + 40 hex characters", addr)
	}
	if !IsValidChecksumAddress(addr) {
		return fmt.Errorf("invalid ETH address %q: EIP-55 checksum mismatch", addr)
	}
	return nil
}

// solPublicKey decodes a base58 address and verifies it is exactly 32 bytes
// (ed25519 public key).
func solPublicKey(addr string) ([]byte, error) {
	if !solAddressRegex.MatchString(addr) {
		return nil, fmt.Errorf("invalid SOL address %q: does not match base58 format", addr)
	}

	decoded, err := base58.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid SOL address %q: base58 decode failed: %w", addr, err)
	}
	if len(decoded) != config.SOLPublicKeyBytes {
		return nil, fmt.Errorf("invalid SOL address %q: decoded to %d bytes, expected %d", addr, len(decoded), config.SOLPublicKeyBytes)
	}
	return decoded, nil
}

// tronPayload checks a TRON address and returns its 20-byte account hash.
func tronPayload(addr string) ([]byte, error) {
	if !tronAddressRegex.MatchString(addr) {
		return nil, fmt.Errorf("invalid TRON address %q: must match T + 33 base58 characters", addr)
	}

	version, payload, err := decodeBase58Check(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid TRON address %q: %w", addr, err)
	}
	if version != config.TRONAddressVersion {
		return nil, fmt.Errorf("invalid TRON address %q: version %#x, expected %#x", addr, version, config.TRONAddressVersion)
	}
	if len(payload) != config.PubKeyHashBytes {
		return nil, fmt.Errorf("invalid TRON address %q: payload is %d bytes, expected %d", addr, len(payload), config.PubKeyHashBytes)
	}
	return payload, nil
}

// sameBytes reports whether a is non-empty and equal to b.
func sameBytes(a, b []byte) bool {
	return len(a) > 0 && bytes.Equal(a, b)
}
