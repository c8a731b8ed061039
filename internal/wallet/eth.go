package wallet

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/hdkey"
	"github.com/Fantasim/hdkeygen/internal/models"
)

// DeriveETH derives an EIP-55 checksummed EVM address and its 0x-hex private key
// at m/44'/60'/0'/0/index.
func DeriveETH(master *hdkey.Node, index uint32) (models.KeyPair, error) {
	node, path, err := deriveSecp256kKey(master, models.ChainETH, index)
	if err != nil {
		return models.KeyPair{}, err
	}
	defer node.Zero()

	privKey := node.PrivKey()
	defer privKey.Zero()

	pair, err := encodeETH(privKey)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("encode ETH at index %d: %w", index, err)
	}
	pair.Path = path.String()

	slog.Debug("derived ETH address",
		"index", index,
		"address", pair.Address,
	)
	return pair, nil
}

func encodeETH(privKey *btcec.PrivateKey) (models.KeyPair, error) {
	addrBytes, err := keccakAddress(privKey)
	if err != nil {
		return models.KeyPair{}, err
	}

	addr, err := ToChecksumAddress(hex.EncodeToString(addrBytes))
	if err != nil {
		return models.KeyPair{}, err
	}

	return models.KeyPair{Address: addr, Secret: hexPrivateKey(privKey)}, nil
}

// keccakAddress returns the last 20 bytes of Keccak-256(X || Y) for the key's
// uncompressed public point.
func keccakAddress(privKey *btcec.PrivateKey) ([]byte, error) {
	pub := privKey.PubKey().SerializeUncompressed()
	if len(pub) != 65 || pub[0] != 0x04 {
		return nil, fmt.Errorf("%w: uncompressed public key is %d bytes", config.ErrEncoding, len(pub))
	}

	hash := crypto.Keccak256(pub[1:])
	return hash[len(hash)-config.PubKeyHashBytes:], nil
}

// hexPrivateKey renders the scalar as 0x + 64 lowercase hex digits, zero-padded.
func hexPrivateKey(privKey *btcec.PrivateKey) string {
	raw := privKey.Serialize()
	defer clear(raw)
	return "0x" + hex.EncodeToString(raw)
}

// ToChecksumAddress applies EIP-55 to a 40-hex-digit address (0x prefix optional,
// any case). A letter is uppercased iff the matching nibble of
// Keccak-256(lowercase hex) is >= 8.
func ToChecksumAddress(addr string) (string, error) {
	lower := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X"))
	if len(lower) != 2*config.PubKeyHashBytes {
		return "", fmt.Errorf("%w: address has %d hex digits, want 40", config.ErrEncoding, len(lower))
	}
	if _, err := hex.DecodeString(lower); err != nil {
		return "", fmt.Errorf("%w: address is not hex: %v", config.ErrEncoding, err)
	}

	hash := crypto.Keccak256([]byte(lower))

	out := make([]byte, 0, 2+len(lower))
	out = append(out, '0', 'x')
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if c >= 'a' && c <= 'f' && nibble&0x0f >= 8 {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out), nil
}
