package models

// Chain identifies one of the five address formats derived per wallet.
type Chain string

const (
	ChainBTCLegacy Chain = "BTC_LEGACY"
	ChainBTCSegWit Chain = "BTC_SEGWIT"
	ChainETH       Chain = "ETH"
	ChainSOL       Chain = "SOL"
	ChainTRON      Chain = "TRON"
)

// AllChains is the ordered list of derived chains. Records, reports and
// exports follow this order.
var AllChains = []Chain{ChainBTCLegacy, ChainBTCSegWit, ChainETH, ChainSOL, ChainTRON}

// Label returns the human-readable chain label used in reports.
func (c Chain) Label() string {
	switch c {
	case ChainBTCLegacy:
		return "BTC Legacy"
	case ChainBTCSegWit:
		return "BTC SegWit"
	case ChainETH:
		return "ETH"
	case ChainSOL:
		return "SOL"
	case ChainTRON:
		return "TRON"
	default:
		return string(c)
	}
}

// KeyPair is one chain's address plus its secret in the chain's canonical
// external representation (WIF, 0x-hex, Base58 64-byte secret).
type KeyPair struct {
	Address string `json:"address"`
	Secret  string `json:"secret"`
	Path    string `json:"path"`
}

// WalletRecord is the assembled output of one generation request.
// It is never mutated after assembly.
type WalletRecord struct {
	Mnemonic     []string `json:"mnemonic"`
	AddressIndex uint32   `json:"addressIndex"`

	BTCLegacy KeyPair `json:"btcLegacy"`
	BTCSegWit KeyPair `json:"btcSegwit"`
	ETH       KeyPair `json:"eth"`
	SOL       KeyPair `json:"sol"`
	TRON      KeyPair `json:"tron"`
}

// Pair returns the record's key pair for chain. Unknown chains yield a zero KeyPair.
func (r *WalletRecord) Pair(chain Chain) KeyPair {
	switch chain {
	case ChainBTCLegacy:
		return r.BTCLegacy
	case ChainBTCSegWit:
		return r.BTCSegWit
	case ChainETH:
		return r.ETH
	case ChainSOL:
		return r.SOL
	case ChainTRON:
		return r.TRON
	default:
		return KeyPair{}
	}
}

// Check is a single validator result.
type Check struct {
	Chain  Chain  `json:"chain,omitempty"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Label returns "[Chain] name", or "[Mnemonic] name" for record-level checks.
func (c Check) Label() string {
	scope := "Mnemonic"
	if c.Chain != "" {
		scope = c.Chain.Label()
	}
	return "[" + scope + "] " + c.Name
}

// ValidationReport is the ordered list of checks run against one WalletRecord.
type ValidationReport struct {
	Checks []Check `json:"checks"`
}

// OK reports whether every check passed.
func (r ValidationReport) OK() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass, in report order.
func (r ValidationReport) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// RecordExport is the JSON document format for a set of generated records.
type RecordExport struct {
	DerivationPathTemplates map[Chain]string `json:"derivation_path_templates"`
	GeneratedAt             string           `json:"generated_at"`
	Count                   int              `json:"count"`
	Records                 []WalletRecord   `json:"records"`
}
