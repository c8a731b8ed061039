package wallet

import (
	"fmt"
	"log/slog"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/hdkey"
	"github.com/Fantasim/hdkeygen/internal/models"
)

// DeriveTRON derives a TRON address (0x41 || Keccak-256 tail, Base58Check) and its
// 0x-hex private key at m/44'/195'/0'/0/index.
func DeriveTRON(master *hdkey.Node, index uint32) (models.KeyPair, error) {
	node, path, err := deriveSecp256kKey(master, models.ChainTRON, index)
	if err != nil {
		return models.KeyPair{}, err
	}
	defer node.Zero()

	privKey := node.PrivKey()
	defer privKey.Zero()

	pair, err := encodeTRON(privKey)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("encode TRON at index %d: %w", index, err)
	}
	pair.Path = path.String()

	slog.Debug("derived TRON address",
		"index", index,
		"address", pair.Address,
	)
	return pair, nil
}

func encodeTRON(privKey *btcec.PrivateKey) (models.KeyPair, error) {
	addrBytes, err := keccakAddress(privKey)
	if err != nil {
		return models.KeyPair{}, err
	}

	// CheckEncode prepends the version byte and appends double-SHA-256[:4].
	addr := base58.CheckEncode(addrBytes, config.TRONAddressVersion)

	return models.KeyPair{Address: addr, Secret: hexPrivateKey(privKey)}, nil
}
