package wallet

import (
	"errors"
	"strings"
	"testing"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/hdkey"
	"github.com/Fantasim/hdkeygen/internal/mnemonic"
	"github.com/Fantasim/hdkeygen/internal/models"
	"github.com/Fantasim/hdkeygen/internal/slip10"
)

// Standard BIP-39 test mnemonic (all-zero entropy).
const testMnemonic12 = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testWords() []string {
	return strings.Fields(testMnemonic12)
}

// testMasters returns the secp256k1 and ed25519 masters for testMnemonic12.
func testMasters(t *testing.T) (*hdkey.Node, *slip10.Node) {
	t.Helper()

	seed, err := mnemonic.MnemonicToSeed(testWords(), "")
	if err != nil {
		t.Fatal(err)
	}

	secp, err := hdkey.NewMaster(seed)
	if err != nil {
		t.Fatal(err)
	}
	ed, err := slip10.NewMaster(seed)
	if err != nil {
		t.Fatal(err)
	}
	return secp, ed
}

func TestSecp256kPath(t *testing.T) {
	tests := []struct {
		chain models.Chain
		index uint32
		want  string
	}{
		{models.ChainBTCLegacy, 0, "m/44'/0'/0'/0/0"},
		{models.ChainBTCSegWit, 0, "m/84'/0'/0'/0/0"},
		{models.ChainETH, 3, "m/44'/60'/0'/0/3"},
		{models.ChainTRON, 7, "m/44'/195'/0'/0/7"},
	}

	for _, tt := range tests {
		t.Run(string(tt.chain), func(t *testing.T) {
			path, err := secp256kPath(tt.chain, tt.index)
			if err != nil {
				t.Fatalf("secp256kPath() error = %v", err)
			}
			if got := path.String(); got != tt.want {
				t.Errorf("secp256kPath() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSecp256kPathRejectsSOL(t *testing.T) {
	_, err := secp256kPath(models.ChainSOL, 0)
	if !errors.Is(err, config.ErrInvalidPath) {
		t.Errorf("secp256kPath(SOL) error = %v, want ErrInvalidPath", err)
	}
}

func TestSolPath(t *testing.T) {
	if got, want := solPath(0).String(), "m/44'/501'/0'/0'"; got != want {
		t.Errorf("solPath(0) = %s, want %s", got, want)
	}
	if got, want := solPath(5).String(), "m/44'/501'/5'/0'"; got != want {
		t.Errorf("solPath(5) = %s, want %s", got, want)
	}
}

func TestDerivationPathTemplate(t *testing.T) {
	for _, chain := range models.AllChains {
		tmpl := derivationPathTemplate(chain)
		if !strings.Contains(tmpl, "{index}") {
			t.Errorf("derivationPathTemplate(%s) = %q, want {index} placeholder", chain, tmpl)
		}
	}
	if got := derivationPathTemplate("DOGE"); got != "" {
		t.Errorf("derivationPathTemplate(DOGE) = %q, want empty", got)
	}
}
