// Package mnemonic implements the BIP-39 English mnemonic layer: 16-byte entropy
// to 12 words, validation, and PBKDF2 seed stretching.
package mnemonic

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/Fantasim/hdkeygen/internal/config"
)

const (
	bitsPerWord  = 11
	checksumBits = config.EntropyBytes * 8 / 32 // 4
)

var wordRegex = regexp.MustCompile(`^[a-z]+$`)

// EntropyToMnemonic encodes exactly 16 bytes of entropy as a 12-word mnemonic.
func EntropyToMnemonic(entropy []byte) ([]string, error) {
	if len(entropy) != config.EntropyBytes {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", config.ErrInvalidEntropyLength, len(entropy), config.EntropyBytes)
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("encode mnemonic: %w", err)
	}

	words := strings.Fields(phrase)
	if len(words) != config.MnemonicWordCount {
		return nil, fmt.Errorf("%w: encoder produced %d words", config.ErrEncoding, len(words))
	}

	slog.Debug("mnemonic generated", "wordCount", len(words))
	return words, nil
}

// ValidateMnemonic checks length, wordlist membership and the embedded checksum.
// Word position in errors is 1-based.
func ValidateMnemonic(words []string) error {
	if len(words) != config.MnemonicWordCount {
		return fmt.Errorf("validate mnemonic: got %d words: %w", len(words), config.ErrMnemonicLength)
	}

	indices := make([]int, len(words))
	for i, w := range words {
		idx, ok := bip39.GetWordIndex(w)
		if !ok {
			return fmt.Errorf("validate mnemonic: word %d: %w", i+1, config.ErrMnemonicWord)
		}
		indices[i] = idx
	}

	entropy, checksum := unpackIndices(indices)
	if checksum != checksumNibble(entropy) {
		return fmt.Errorf("validate mnemonic: %w", config.ErrMnemonicChecksum)
	}

	return nil
}

// unpackIndices concatenates 12 eleven-bit word indices into 132 bits and splits
// them into 16 bytes of entropy and the trailing 4-bit checksum.
func unpackIndices(indices []int) ([]byte, byte) {
	var buf [config.EntropyBytes + 1]byte
	bitPos := 0
	for _, idx := range indices {
		for b := bitsPerWord - 1; b >= 0; b-- {
			if idx>>uint(b)&1 == 1 {
				buf[bitPos/8] |= 1 << uint(7-bitPos%8)
			}
			bitPos++
		}
	}

	entropy := make([]byte, config.EntropyBytes)
	copy(entropy, buf[:config.EntropyBytes])
	checksum := buf[config.EntropyBytes] >> (8 - checksumBits)
	return entropy, checksum
}

// MnemonicToSeed stretches a validated mnemonic and passphrase into the 64-byte
// BIP-39 seed (PBKDF2-HMAC-SHA512, salt "mnemonic"+passphrase, 2048 rounds).
// The mnemonic is re-validated; seeds are never derived from unchecked words.
func MnemonicToSeed(words []string, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(words); err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(strings.Join(words, " "), passphrase)
	if len(seed) != config.SeedBytes {
		return nil, fmt.Errorf("%w: seed is %d bytes", config.ErrEncoding, len(seed))
	}

	slog.Debug("seed derived from mnemonic", "seedLen", len(seed))
	return seed, nil
}

// Normalize parses user input into lowercase words. The result has exactly 12
// alphabetic words or an error; wordlist and checksum are left to ValidateMnemonic.
func Normalize(input string) ([]string, error) {
	words := strings.Fields(strings.ToLower(input))
	if len(words) != config.MnemonicWordCount {
		return nil, fmt.Errorf("parse mnemonic: got %d words: %w", len(words), config.ErrMnemonicLength)
	}
	for i, w := range words {
		if !wordRegex.MatchString(w) {
			return nil, fmt.Errorf("parse mnemonic: word %d is not alphabetic: %w", i+1, config.ErrMnemonicWord)
		}
	}
	return words, nil
}

// Parse normalizes and validates a mnemonic phrase.
func Parse(input string) ([]string, error) {
	words, err := Normalize(input)
	if err != nil {
		return nil, err
	}
	if err := ValidateMnemonic(words); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadMnemonicFromFile reads a mnemonic from a file, normalizes and validates it.
func ReadMnemonicFromFile(path string) ([]string, error) {
	slog.Info("reading mnemonic from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mnemonic file %q: %w", path, err)
	}

	words, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("mnemonic file %q: %w", path, err)
	}

	slog.Debug("mnemonic read and validated from file")
	return words, nil
}

// EntropyFromWords returns the 16 bytes of entropy encoded by a valid mnemonic.
func EntropyFromWords(words []string) ([]byte, error) {
	if err := ValidateMnemonic(words); err != nil {
		return nil, err
	}
	indices := make([]int, len(words))
	for i, w := range words {
		indices[i], _ = bip39.GetWordIndex(w)
	}
	entropy, _ := unpackIndices(indices)
	return entropy, nil
}

// checksumNibble returns the first 4 bits of SHA-256(entropy).
func checksumNibble(entropy []byte) byte {
	sum := sha256.Sum256(entropy)
	return sum[0] >> (8 - checksumBits)
}

// wordIndexAt extracts the i-th eleven-bit group of entropy||checksum.
func wordIndexAt(entropy []byte, i int) int {
	var buf [config.EntropyBytes + 1]byte
	copy(buf[:], entropy)
	buf[config.EntropyBytes] = checksumNibble(entropy) << (8 - checksumBits)

	idx := 0
	for b := 0; b < bitsPerWord; b++ {
		pos := i*bitsPerWord + b
		bit := int(buf[pos/8]>>uint(7-pos%8)) & 1
		idx = idx<<1 | bit
	}
	return idx
}
