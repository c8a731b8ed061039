package config

// Mnemonic
const (
	EntropyBytes      = 16 // 128 bits -> 12 words
	MnemonicWordCount = 12
	SeedBytes         = 64
)

// HD seed bounds accepted by the master-key functions (BIP-32).
const (
	MinSeedBytes = 16
	MaxSeedBytes = 64
)

// HMAC keys for master-node generation.
const (
	BIP32SeedKey  = "Bitcoin seed"
	SLIP10SeedKey = "ed25519 seed"
)

// HardenedKeyStart is the first hardened child index (2^31).
const HardenedKeyStart = uint32(0x80000000)

// BIP-44 Derivation Paths
const (
	BIP44Purpose = 44
	BIP84Purpose = 84
	BTCCoinType  = 0   // m/44'/0'/0'/0/N and m/84'/0'/0'/0/N
	ETHCoinType  = 60  // m/44'/60'/0'/0/N
	TRONCoinType = 195 // m/44'/195'/0'/0/N
	SOLCoinType  = 501 // m/44'/501'/N'/0'

	DefaultAccount = 0
	ExternalChange = 0
)

// Version bytes
const (
	BTCPubKeyHashVersion = 0x00
	BTCWIFVersion        = 0x80
	TRONAddressVersion   = 0x41
	SegWitHRP            = "bc"
	SegWitVersion        = 0
)

// Encoded sizes
const (
	PrivateKeyBytes   = 32
	PubKeyHashBytes   = 20
	ChecksumBytes     = 4
	SOLPublicKeyBytes = 32
	SOLSecretBytes    = 64
	HexPrivateKeyLen  = 64
)

// Batch generation
const (
	DefaultMaxBatch = 10_000
)

// Logging
const (
	LogDir         = "./logs"
	LogFilePrefix  = "hdkeygen-"
	LogFilePattern = "hdkeygen-%s.log" // %s = YYYY-MM-DD
	LogMaxAgeDays  = 30
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)
