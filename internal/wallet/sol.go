package wallet

import (
	"crypto/ed25519"
	"fmt"
	"log/slog"

	"github.com/mr-tron/base58"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/models"
	"github.com/Fantasim/hdkeygen/internal/slip10"
)

// DeriveSOL derives a Solana address using SLIP-10 ed25519 at m/44'/501'/index'/0'
// (all hardened, Phantom/Solflare standard). The secret is the Base58 of the
// 64-byte keypair (32-byte seed || 32-byte public key).
func DeriveSOL(master *slip10.Node, index uint32) (models.KeyPair, error) {
	path := solPath(index)

	node, err := master.DerivePath(path)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("derive SOL key at %s: %w", path, err)
	}
	defer node.Zero()

	privKey := node.PrivateKey()
	defer clear(privKey)

	pair, err := encodeSOL(privKey)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("encode SOL at index %d: %w", index, err)
	}
	pair.Path = path.String()

	slog.Debug("derived SOL address",
		"index", index,
		"address", pair.Address,
	)
	return pair, nil
}

func encodeSOL(privKey ed25519.PrivateKey) (models.KeyPair, error) {
	if len(privKey) != config.SOLSecretBytes {
		return models.KeyPair{}, fmt.Errorf("%w: ed25519 private key is %d bytes", config.ErrEncoding, len(privKey))
	}

	pubKey, ok := privKey.Public().(ed25519.PublicKey)
	if !ok || len(pubKey) != config.SOLPublicKeyBytes {
		return models.KeyPair{}, fmt.Errorf("%w: ed25519 public key", config.ErrEncoding)
	}

	return models.KeyPair{
		Address: base58.Encode(pubKey),
		Secret:  base58.Encode(privKey),
	}, nil
}
