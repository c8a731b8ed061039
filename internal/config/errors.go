package config

import "errors"

// Sentinel errors for internal use.
var (
	// Mnemonic (recoverable at the caller boundary)
	ErrInvalidEntropyLength = errors.New("invalid entropy length")
	ErrMnemonicLength       = errors.New("mnemonic must have exactly 12 words")
	ErrMnemonicWord         = errors.New("mnemonic word not in BIP-39 English wordlist")
	ErrMnemonicChecksum     = errors.New("mnemonic checksum mismatch")

	// Derivation / encoding (defects, never suppressed)
	ErrInvalidSeedLength = errors.New("invalid seed length")
	ErrInvalidPath       = errors.New("invalid derivation path")
	ErrDerivation        = errors.New("key derivation failed")
	ErrEncoding          = errors.New("encoding failed")

	// Assembler
	ErrEntropySource    = errors.New("entropy source failed")
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// Config
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsMnemonicError reports whether err is one of the recoverable mnemonic input errors.
func IsMnemonicError(err error) bool {
	return errors.Is(err, ErrMnemonicLength) ||
		errors.Is(err, ErrMnemonicWord) ||
		errors.Is(err, ErrMnemonicChecksum)
}

// Error codes emitted by the CLI in JSON error output.
const (
	ErrorInvalidEntropyLength = "ERROR_INVALID_ENTROPY_LENGTH"
	ErrorMnemonicLength       = "ERROR_MNEMONIC_LENGTH"
	ErrorMnemonicWord         = "ERROR_MNEMONIC_WORD"
	ErrorMnemonicChecksum     = "ERROR_MNEMONIC_CHECKSUM"
	ErrorInvalidSeedLength    = "ERROR_INVALID_SEED_LENGTH"
	ErrorInvalidPath          = "ERROR_INVALID_PATH"
	ErrorDerivation           = "ERROR_DERIVATION_FAILURE"
	ErrorEncoding             = "ERROR_ENCODING_FAILURE"
	ErrorEntropySource        = "ERROR_ENTROPY_SOURCE"
	ErrorInvalidBatchSize     = "ERROR_INVALID_BATCH_SIZE"
	ErrorInvalidConfig        = "ERROR_INVALID_CONFIG"
	ErrorInternal             = "ERROR_INTERNAL"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidEntropyLength, ErrorInvalidEntropyLength},
	{ErrMnemonicLength, ErrorMnemonicLength},
	{ErrMnemonicWord, ErrorMnemonicWord},
	{ErrMnemonicChecksum, ErrorMnemonicChecksum},
	{ErrInvalidSeedLength, ErrorInvalidSeedLength},
	{ErrInvalidPath, ErrorInvalidPath},
	{ErrDerivation, ErrorDerivation},
	{ErrEncoding, ErrorEncoding},
	{ErrEntropySource, ErrorEntropySource},
	{ErrInvalidBatchSize, ErrorInvalidBatchSize},
	{ErrInvalidConfig, ErrorInvalidConfig},
}

// ErrorCode returns the stable error code for the first sentinel found in err's chain.
// Returns "" for a nil error and ErrorInternal for errors outside the taxonomy.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ErrorInternal
}
