package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/models"
)

const testMnemonic12 = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// run executes the CLI with logs in a temp dir and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HDKEYGEN_LOG_DIR", t.TempDir())
	t.Setenv("HDKEYGEN_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	err := execute(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func decodeExport(t *testing.T, out string) models.RecordExport {
	t.Helper()
	var doc models.RecordExport
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not an export document: %v\n%s", err, out)
	}
	return doc
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "hdkeygen ") {
		t.Errorf("version output = %q", out)
	}
}

func TestRestoreJSON(t *testing.T) {
	out, _, err := run(t, "", "restore", "--mnemonic", testMnemonic12, "-o", "json")
	if err != nil {
		t.Fatalf("restore error = %v", err)
	}

	doc := decodeExport(t, out)
	if doc.Count != 1 {
		t.Fatalf("count = %d, want 1", doc.Count)
	}
	if want := "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"; doc.Records[0].ETH.Address != want {
		t.Errorf("ETH = %s, want %s", doc.Records[0].ETH.Address, want)
	}
}

func TestRestoreIndexAndStdin(t *testing.T) {
	out, _, err := run(t, "  ABANDON abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about\n",
		"restore", "--index", "3", "-o", "json")
	if err != nil {
		t.Fatalf("restore error = %v", err)
	}

	rec := decodeExport(t, out).Records[0]
	if rec.AddressIndex != 3 {
		t.Errorf("AddressIndex = %d, want 3", rec.AddressIndex)
	}
	if want := "m/44'/501'/3'/0'"; rec.SOL.Path != want {
		t.Errorf("SOL path = %s, want %s", rec.SOL.Path, want)
	}
}

func TestRestoreMnemonicFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mnemonic.txt")
	if err := os.WriteFile(path, []byte(testMnemonic12+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "restore", "--mnemonic-file", path)
	if err != nil {
		t.Fatalf("restore error = %v", err)
	}
	for _, want := range []string{"1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu", "[PASS]", "checks passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
	if strings.Contains(out, "[FAIL]") {
		t.Errorf("text output has a failed check:\n%s", out)
	}
}

func TestRestoreBadChecksumJSONError(t *testing.T) {
	bad := strings.Repeat("abandon ", 12)
	out, _, err := run(t, "", "restore", "--mnemonic", bad, "-o", "json")
	if err == nil {
		t.Fatal("restore accepted a bad checksum")
	}

	var resp errorResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("stdout is not a JSON error: %v\n%s", err, out)
	}
	if resp.Error.Code != config.ErrorMnemonicChecksum {
		t.Errorf("code = %s, want %s", resp.Error.Code, config.ErrorMnemonicChecksum)
	}
}

func TestRestoreTextError(t *testing.T) {
	_, stderr, err := run(t, "", "restore", "--mnemonic", "abandon about")
	if err == nil {
		t.Fatal("restore accepted two words")
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q, want an error line", stderr)
	}
}

func TestGenerate(t *testing.T) {
	out, _, err := run(t, "", "generate", "-o", "json")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	rec := decodeExport(t, out).Records[0]
	if len(rec.Mnemonic) != 12 {
		t.Errorf("mnemonic has %d words", len(rec.Mnemonic))
	}
	if !strings.HasPrefix(rec.TRON.Address, "T") {
		t.Errorf("TRON address = %s", rec.TRON.Address)
	}
}

func TestBatchExportThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")

	out, _, err := run(t, "", "batch", "--count", "3", "--export", path)
	if err != nil {
		t.Fatalf("batch error = %v", err)
	}
	if !strings.Contains(out, "wrote 3 records") {
		t.Errorf("batch output = %q", out)
	}

	out, _, err = run(t, "", "validate", "--json-file", path)
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}
	if got := strings.Count(out, "checks passed"); got != 3 {
		t.Errorf("validate printed %d summaries, want 3", got)
	}
}

func TestValidateDetectsTamperedExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	if _, _, err := run(t, "", "batch", "--count", "1", "--export", path); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc models.RecordExport
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	doc.Records[0].ETH.Address = strings.ToLower(doc.Records[0].ETH.Address)
	raw, err = json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "validate", "--json-file", path)
	if err == nil {
		t.Fatal("validate accepted a tampered export")
	}
	if !strings.Contains(out, "[FAIL] [ETH] address") {
		t.Errorf("output missing ETH failure:\n%s", out)
	}
}

func TestBatchInvalidCount(t *testing.T) {
	out, _, err := run(t, "", "batch", "--count", "0", "-o", "json")
	if err == nil {
		t.Fatal("batch accepted count 0")
	}
	if !strings.Contains(out, config.ErrorInvalidBatchSize) {
		t.Errorf("stdout = %q, want %s", out, config.ErrorInvalidBatchSize)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, err := run(t, "", "generate", "-o", "xml")
	if config.ErrorCode(err) != config.ErrorInvalidConfig {
		t.Errorf("error = %v, want ERROR_INVALID_CONFIG", err)
	}
}
