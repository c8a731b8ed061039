package wallet

import (
	"regexp"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Fantasim/hdkeygen/internal/config"
)

var tronAddressRegex = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)

func TestDeriveTRON(t *testing.T) {
	secp, _ := testMasters(t)

	pair, err := DeriveTRON(secp, 0)
	if err != nil {
		t.Fatalf("DeriveTRON() error = %v", err)
	}

	if !tronAddressRegex.MatchString(pair.Address) {
		t.Errorf("TRON address %q does not match T + 33 Base58 chars", pair.Address)
	}
	if want := "m/44'/195'/0'/0/0"; pair.Path != want {
		t.Errorf("path = %s, want %s", pair.Path, want)
	}
	if !hexKeyRegex.MatchString(pair.Secret) {
		t.Errorf("secret %q is not 0x + 64 lowercase hex", pair.Secret)
	}
}

func TestDeriveTRONPayloadIsEVMAddress(t *testing.T) {
	secp, _ := testMasters(t)

	pair, err := DeriveTRON(secp, 2)
	if err != nil {
		t.Fatal(err)
	}

	payload, version, err := base58.CheckDecode(pair.Address)
	if err != nil {
		t.Fatalf("CheckDecode() error = %v", err)
	}
	if version != config.TRONAddressVersion {
		t.Errorf("version byte = %#x, want %#x", version, config.TRONAddressVersion)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(pair.Secret, "0x"))
	if err != nil {
		t.Fatal(err)
	}
	want := crypto.PubkeyToAddress(key.PublicKey)
	if string(payload) != string(want.Bytes()) {
		t.Errorf("TRON payload = %x, want %x", payload, want.Bytes())
	}
}

func TestDeriveTRONDiffersFromETHPath(t *testing.T) {
	secp, _ := testMasters(t)

	tron, err := DeriveTRON(secp, 0)
	if err != nil {
		t.Fatal(err)
	}
	eth, err := DeriveETH(secp, 0)
	if err != nil {
		t.Fatal(err)
	}
	if tron.Secret == eth.Secret {
		t.Error("TRON and ETH share a private key; coin types must differ")
	}
}
