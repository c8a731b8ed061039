package validate

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/Fantasim/hdkeygen/internal/config"
)

var ethAddressRegex = regexp.MustCompile(`^(0x)[0-9a-fA-F]{40}$`)

// decodeBase58Check decodes s and verifies the trailing 4-byte
// double-SHA-256 checksum. It returns the version byte and payload.
func decodeBase58Check(s string) (byte, []byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return 0, nil, fmt.Errorf("base58 decode failed: %w", err)
	}
	if len(raw) < 1+config.ChecksumBytes {
		return 0, nil, fmt.Errorf("decoded to %d bytes, too short for a checksum", len(raw))
	}

	body, sum := raw[:len(raw)-config.ChecksumBytes], raw[len(raw)-config.ChecksumBytes:]
	want := chainhash.DoubleHashB(body)[:config.ChecksumBytes]
	if !bytes.Equal(sum, want) {
		return 0, nil, fmt.Errorf("checksum mismatch: got %x, want %x", sum, want)
	}
	return body[0], body[1:], nil
}

// keccak256 is the original (pre-NIST) Keccak used by Ethereum and TRON.
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// checksumCase returns the EIP-55 casing of a 40-digit lowercase hex address.
func checksumCase(lower string) string {
	hash := keccak256([]byte(lower))

	var b strings.Builder
	b.Grow(2 + len(lower))
	b.WriteString("0x")
	for i, c := range []byte(lower) {
		nibble := hash[i/2] >> 4
		if i%2 == 1 {
			nibble = hash[i/2] & 0x0f
		}
		if c >= 'a' && c <= 'f' && nibble >= 8 {
			c = c - 'a' + 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsValidChecksumAddress reports whether addr is 0x + 40 hex digits in its
// canonical EIP-55 casing. An all-lowercase address with letters is rejected.
func IsValidChecksumAddress(addr string) bool {
	if !ethAddressRegex.MatchString(addr) {
		return false
	}
	return checksumCase(strings.ToLower(addr[2:])) == addr
}

// decodeHexKey parses 0x + 64 lowercase hex digits.
func decodeHexKey(s string) ([]byte, error) {
	if !hexKeyRegex.MatchString(s) {
		return nil, fmt.Errorf("must match 0x + %d lowercase hex characters", config.HexPrivateKeyLen)
	}
	return hex.DecodeString(s[2:])
}
