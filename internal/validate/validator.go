package validate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/models"
)

// Check names, in report order per chain.
const (
	CheckWordCount     = "word count"
	CheckMnemonic      = "wordlist and checksum"
	CheckAddress       = "address"
	CheckSecret        = "secret format"
	CheckSecretAddress = "secret matches address"
	CheckPath          = "derivation path"
)

// Validate runs every check against rec and returns the ordered report.
// It never fails: problems are reported as failed checks.
func Validate(rec *models.WalletRecord) models.ValidationReport {
	var report models.ValidationReport
	if rec == nil {
		report.Checks = append(report.Checks, models.Check{Name: "record present", Detail: "record is nil"})
		return report
	}

	add := func(chain models.Chain, name string, err error) {
		c := models.Check{Chain: chain, Name: name, Passed: err == nil}
		if err != nil {
			c.Detail = err.Error()
		}
		report.Checks = append(report.Checks, c)
	}

	add("", CheckWordCount, checkWordCount(rec.Mnemonic))
	add("", CheckMnemonic, checkMnemonic(rec.Mnemonic))

	for _, chain := range models.AllChains {
		pair := rec.Pair(chain)
		add(chain, CheckAddress, Address(chain, pair.Address))
		add(chain, CheckSecret, Secret(chain, pair.Secret))
		add(chain, CheckSecretAddress, secretMatchesAddress(chain, pair))
		add(chain, CheckPath, checkPath(chain, rec.AddressIndex, pair.Path))
	}

	if failed := report.Failed(); len(failed) > 0 {
		slog.Warn("wallet record failed validation",
			"index", rec.AddressIndex,
			"failed", len(failed),
			"total", len(report.Checks),
		)
	} else {
		slog.Debug("wallet record validated", "index", rec.AddressIndex, "checks", len(report.Checks))
	}
	return report
}

func checkWordCount(words []string) error {
	if len(words) != config.MnemonicWordCount {
		return fmt.Errorf("mnemonic has %d words, expected %d", len(words), config.MnemonicWordCount)
	}
	return nil
}

func checkMnemonic(words []string) error {
	for i, w := range words {
		if w != strings.ToLower(w) {
			return fmt.Errorf("word %d is not lowercase", i+1)
		}
	}
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return fmt.Errorf("mnemonic fails the BIP-39 wordlist or checksum check")
	}
	return nil
}

// expectedPath renders the fixed path for chain at index.
func expectedPath(chain models.Chain, index uint32) string {
	switch chain {
	case models.ChainBTCLegacy:
		return fmt.Sprintf("m/44'/0'/0'/0/%d", index)
	case models.ChainBTCSegWit:
		return fmt.Sprintf("m/84'/0'/0'/0/%d", index)
	case models.ChainETH:
		return fmt.Sprintf("m/44'/60'/0'/0/%d", index)
	case models.ChainSOL:
		return fmt.Sprintf("m/44'/501'/%d'/0'", index)
	case models.ChainTRON:
		return fmt.Sprintf("m/44'/195'/0'/0/%d", index)
	default:
		return ""
	}
}

func checkPath(chain models.Chain, index uint32, path string) error {
	if want := expectedPath(chain, index); path != want {
		return fmt.Errorf("path %q, expected %q", path, want)
	}
	return nil
}
