package wallet

import (
	"fmt"
	"log/slog"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/hdkey"
	"github.com/Fantasim/hdkeygen/internal/models"
)

// DeriveBTCLegacy derives a P2PKH address (Base58Check, version 0x00) and its
// compressed WIF at m/44'/0'/0'/0/index.
func DeriveBTCLegacy(master *hdkey.Node, index uint32) (models.KeyPair, error) {
	return deriveBTC(master, models.ChainBTCLegacy, index)
}

// DeriveBTCSegWit derives a P2WPKH bech32 address ("bc" HRP, witness v0) and its
// compressed WIF at m/84'/0'/0'/0/index per BIP-84.
func DeriveBTCSegWit(master *hdkey.Node, index uint32) (models.KeyPair, error) {
	return deriveBTC(master, models.ChainBTCSegWit, index)
}

func deriveBTC(master *hdkey.Node, chain models.Chain, index uint32) (models.KeyPair, error) {
	node, path, err := deriveSecp256kKey(master, chain, index)
	if err != nil {
		return models.KeyPair{}, err
	}
	defer node.Zero()

	privKey := node.PrivKey()
	defer privKey.Zero()

	var pair models.KeyPair
	switch chain {
	case models.ChainBTCLegacy:
		pair, err = encodeBTCLegacy(privKey, &chaincfg.MainNetParams)
	default:
		pair, err = encodeBTCSegWit(privKey, &chaincfg.MainNetParams)
	}
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("encode %s at index %d: %w", chain, index, err)
	}
	pair.Path = path.String()

	slog.Debug("derived BTC address",
		"chain", chain,
		"index", index,
		"address", pair.Address,
	)
	return pair, nil
}

// encodeBTCLegacy maps a private key to its P2PKH address and WIF.
func encodeBTCLegacy(privKey *btcec.PrivateKey, net *chaincfg.Params) (models.KeyPair, error) {
	pubKeyHash := btcutil.Hash160(privKey.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, net)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("%w: P2PKH address: %v", config.ErrEncoding, err)
	}

	wif, err := encodeWIF(privKey, net)
	if err != nil {
		return models.KeyPair{}, err
	}

	return models.KeyPair{Address: addr.EncodeAddress(), Secret: wif}, nil
}

// encodeBTCSegWit maps a private key to its P2WPKH address and WIF.
func encodeBTCSegWit(privKey *btcec.PrivateKey, net *chaincfg.Params) (models.KeyPair, error) {
	witnessProg := btcutil.Hash160(privKey.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(witnessProg, net)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("%w: bech32 address: %v", config.ErrEncoding, err)
	}

	wif, err := encodeWIF(privKey, net)
	if err != nil {
		return models.KeyPair{}, err
	}

	return models.KeyPair{Address: addr.EncodeAddress(), Secret: wif}, nil
}

// encodeWIF returns version 0x80 || key || 0x01 in Base58Check (compressed-pubkey WIF).
func encodeWIF(privKey *btcec.PrivateKey, net *chaincfg.Params) (string, error) {
	wif, err := btcutil.NewWIF(privKey, net, true)
	if err != nil {
		return "", fmt.Errorf("%w: WIF: %v", config.ErrEncoding, err)
	}
	return wif.String(), nil
}
