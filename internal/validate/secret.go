package validate

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/mr-tron/base58"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/models"
)

var hexKeyRegex = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

// compressedFlag marks a WIF whose public key is serialized compressed.
const compressedFlag = 0x01

// Secret validates the format of a chain's secret: WIF for BTC, 0x-hex for
// ETH and TRON, Base58 64-byte keypair for SOL. Secrets never appear in errors.
func Secret(chain models.Chain, secret string) error {
	var err error
	switch chain {
	case models.ChainBTCLegacy, models.ChainBTCSegWit:
		_, _, err = decodeWIF(secret)
	case models.ChainETH, models.ChainTRON:
		var key []byte
		key, err = decodeHexKey(secret)
		clear(key)
	case models.ChainSOL:
		var key []byte
		key, err = solSecret(secret)
		clear(key)
	default:
		return fmt.Errorf("unsupported chain %q", chain)
	}
	if err != nil {
		return fmt.Errorf("invalid %s secret: %w", chain.Label(), err)
	}
	return nil
}

// IsValidWIF reports whether s is a mainnet WIF with a valid checksum.
func IsValidWIF(s string) bool {
	key, _, err := decodeWIF(s)
	clear(key)
	return err == nil
}

// decodeWIF returns the 32-byte key and whether it is compressed. Both the
// 37-byte uncompressed and 38-byte compressed layouts are accepted.
func decodeWIF(s string) ([]byte, bool, error) {
	version, payload, err := decodeBase58Check(s)
	if err != nil {
		return nil, false, fmt.Errorf("WIF %w", err)
	}
	if version != config.BTCWIFVersion {
		return nil, false, fmt.Errorf("WIF version %#x, expected %#x", version, config.BTCWIFVersion)
	}

	switch len(payload) {
	case config.PrivateKeyBytes:
		return payload, false, nil
	case config.PrivateKeyBytes + 1:
		if payload[config.PrivateKeyBytes] != compressedFlag {
			return nil, false, fmt.Errorf("WIF compression flag %#x, expected %#x", payload[config.PrivateKeyBytes], compressedFlag)
		}
		return payload[:config.PrivateKeyBytes], true, nil
	default:
		return nil, false, fmt.Errorf("WIF decoded to %d bytes, expected 37 or 38", len(payload)+1+config.ChecksumBytes)
	}
}

// solSecret decodes the Base58 64-byte keypair.
func solSecret(s string) ([]byte, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("base58 decode failed: %w", err)
	}
	if len(decoded) != config.SOLSecretBytes {
		clear(decoded)
		return nil, fmt.Errorf("decoded to %d bytes, expected %d", len(decoded), config.SOLSecretBytes)
	}
	return decoded, nil
}

// secretMatchesAddress recomputes the public identifier from the secret with
// the curve primitives and compares it to the decoded address.
func secretMatchesAddress(chain models.Chain, pair models.KeyPair) error {
	switch chain {
	case models.ChainBTCLegacy, models.ChainBTCSegWit:
		key, compressed, err := decodeWIF(pair.Secret)
		if err != nil {
			return err
		}
		priv, pub := btcec.PrivKeyFromBytes(key)
		defer priv.Zero()

		serialized := pub.SerializeUncompressed()
		if compressed {
			serialized = pub.SerializeCompressed()
		}

		var want []byte
		if chain == models.ChainBTCLegacy {
			want, err = legacyPubKeyHash(pair.Address)
		} else {
			want, err = segwitProgram(pair.Address)
		}
		if err != nil {
			return err
		}
		if !sameBytes(btcutil.Hash160(serialized), want) {
			return fmt.Errorf("WIF public key hash does not match address")
		}
		return nil

	case models.ChainETH, models.ChainTRON:
		key, err := decodeHexKey(pair.Secret)
		if err != nil {
			return err
		}
		priv, pub := btcec.PrivKeyFromBytes(key)
		clear(key)
		defer priv.Zero()

		account := keccak256(pub.SerializeUncompressed()[1:])[12:]

		var want []byte
		if chain == models.ChainETH {
			if err := validateETH(pair.Address); err != nil {
				return err
			}
			if want, err = hex.DecodeString(strings.ToLower(pair.Address[2:])); err != nil {
				return fmt.Errorf("decode ETH address: %w", err)
			}
		} else {
			if want, err = tronPayload(pair.Address); err != nil {
				return err
			}
		}
		if !sameBytes(account, want) {
			return fmt.Errorf("private key does not derive address")
		}
		return nil

	case models.ChainSOL:
		secret, err := solSecret(pair.Secret)
		if err != nil {
			return err
		}
		defer clear(secret)

		pub, err := solPublicKey(pair.Address)
		if err != nil {
			return err
		}
		if !sameBytes(secret[32:], pub) {
			return fmt.Errorf("secret public half does not match address")
		}
		regen := ed25519.NewKeyFromSeed(secret[:32])
		defer clear(regen)
		if !sameBytes(regen[32:], pub) {
			return fmt.Errorf("secret seed half does not derive address")
		}
		return nil

	default:
		return fmt.Errorf("unsupported chain %q", chain)
	}
}
