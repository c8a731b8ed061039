package wallet

import (
	"fmt"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/hdkey"
	"github.com/Fantasim/hdkeygen/internal/models"
	"github.com/Fantasim/hdkeygen/internal/slip10"
)

// secp256kPath returns the fixed BIP-44/84 path for a secp256k1 chain at index.
func secp256kPath(chain models.Chain, index uint32) (hdkey.Path, error) {
	var purpose, coinType uint32
	switch chain {
	case models.ChainBTCLegacy:
		purpose, coinType = config.BIP44Purpose, config.BTCCoinType
	case models.ChainBTCSegWit:
		purpose, coinType = config.BIP84Purpose, config.BTCCoinType
	case models.ChainETH:
		purpose, coinType = config.BIP44Purpose, config.ETHCoinType
	case models.ChainTRON:
		purpose, coinType = config.BIP44Purpose, config.TRONCoinType
	default:
		return nil, fmt.Errorf("%w: %s is not a secp256k1 chain", config.ErrInvalidPath, chain)
	}
	return hdkey.BIP44(purpose, coinType, config.DefaultAccount, config.ExternalChange, index), nil
}

// solPath returns m/44'/501'/index'/0'. Index 0 is the fixed m/44'/501'/0'/0'.
func solPath(index uint32) slip10.Path {
	return slip10.Path{config.BIP44Purpose, config.SOLCoinType, index, config.ExternalChange}
}

// derivationPathTemplate returns the derivation path template string for a chain.
func derivationPathTemplate(chain models.Chain) string {
	switch chain {
	case models.ChainBTCLegacy:
		return "m/44'/0'/0'/0/{index}"
	case models.ChainBTCSegWit:
		return "m/84'/0'/0'/0/{index}"
	case models.ChainETH:
		return "m/44'/60'/0'/0/{index}"
	case models.ChainSOL:
		return "m/44'/501'/{index}'/0'"
	case models.ChainTRON:
		return "m/44'/195'/0'/0/{index}"
	default:
		return ""
	}
}

// deriveSecp256kKey walks the chain's path from master and returns the leaf node.
func deriveSecp256kKey(master *hdkey.Node, chain models.Chain, index uint32) (*hdkey.Node, hdkey.Path, error) {
	path, err := secp256kPath(chain, index)
	if err != nil {
		return nil, nil, err
	}

	node, err := master.DerivePath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("derive %s key at %s: %w", chain, path, err)
	}
	return node, path, nil
}
