package wallet

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/hdkey"
	"github.com/Fantasim/hdkeygen/internal/mnemonic"
	"github.com/Fantasim/hdkeygen/internal/models"
	"github.com/Fantasim/hdkeygen/internal/slip10"
)

// ProgressCallback is called during batch generation to report progress.
type ProgressCallback func(generated int, total int)

// progressEvery is how often, in records, a batch reports progress.
const progressEvery = 1000

// Generator assembles WalletRecords from fresh entropy. It is safe for
// concurrent use; reads from the entropy source are serialized.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader

	workers  int
	maxBatch int
	progress ProgressCallback
}

// Option configures a Generator.
type Option func(*Generator)

// WithEntropy replaces the default crypto/rand source. Tests inject fixed readers.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) { g.entropy = r }
}

// WithWorkers bounds the batch worker pool. n <= 0 means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(g *Generator) { g.workers = n }
}

// WithMaxBatch sets the largest accepted batch size.
func WithMaxBatch(n int) Option {
	return func(g *Generator) { g.maxBatch = n }
}

// WithProgress registers a batch progress callback.
func WithProgress(fn ProgressCallback) Option {
	return func(g *Generator) { g.progress = fn }
}

// NewGenerator returns a Generator reading entropy from crypto/rand unless
// overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		entropy:  rand.Reader,
		maxBatch: config.DefaultMaxBatch,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGeneratorFromConfig builds a Generator using the batch limits from cfg.
func NewGeneratorFromConfig(cfg *config.Config, opts ...Option) *Generator {
	base := []Option{WithWorkers(cfg.BatchWorkers), WithMaxBatch(cfg.MaxBatch)}
	return NewGenerator(append(base, opts...)...)
}

// Generate draws 16 bytes of entropy and assembles a record at address index 0.
func (g *Generator) Generate() (*models.WalletRecord, error) {
	entropy, err := g.readEntropy()
	if err != nil {
		return nil, err
	}
	defer clear(entropy)

	words, err := mnemonic.EntropyToMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}

	return GenerateFromMnemonic(words, 0)
}

// GenerateBatch produces n independent records, each from its own entropy, in
// request order. Any failure fails the whole batch.
func (g *Generator) GenerateBatch(n int) ([]*models.WalletRecord, error) {
	if n < 1 || n > g.maxBatch {
		return nil, fmt.Errorf("%w: got %d, want 1-%d", config.ErrInvalidBatchSize, n, g.maxBatch)
	}

	numWorkers := g.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > n {
		numWorkers = n
	}

	slog.Info("generating wallet batch",
		"count", n,
		"workers", numWorkers,
	)
	start := time.Now()

	records := make([]*models.WalletRecord, n)
	var done atomic.Int64
	var firstErr atomic.Value

	var wg sync.WaitGroup
	chunkSize := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		chunkStart := w * chunkSize
		chunkEnd := min(chunkStart+chunkSize, n)
		if chunkStart >= n {
			break
		}

		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				// Stop early if another worker hit an error.
				if firstErr.Load() != nil {
					return
				}

				rec, err := g.Generate()
				if err != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("generate record %d of %d: %w", i+1, n, err))
					return
				}
				records[i] = rec

				if c := done.Add(1); g.progress != nil && c%progressEvery == 0 {
					g.progress(int(c), n)
				}
			}
		}(chunkStart, chunkEnd)
	}

	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		return nil, errVal.(error)
	}

	slog.Info("wallet batch complete",
		"count", len(records),
		"workers", numWorkers,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return records, nil
}

func (g *Generator) readEntropy() ([]byte, error) {
	buf := make([]byte, config.EntropyBytes)

	g.mu.Lock()
	_, err := io.ReadFull(g.entropy, buf)
	g.mu.Unlock()

	if err != nil {
		clear(buf)
		return nil, fmt.Errorf("%w: %v", config.ErrEntropySource, err)
	}
	return buf, nil
}

// GenerateFromMnemonic assembles the record for words at address index. It uses
// the empty BIP-39 passphrase and shares one seed across all five chains.
func GenerateFromMnemonic(words []string, index uint32) (*models.WalletRecord, error) {
	return GenerateFromMnemonicWithPassphrase(words, "", index)
}

// GenerateFromMnemonicWithPassphrase is GenerateFromMnemonic with a BIP-39
// passphrase. An empty passphrase gives the same result as GenerateFromMnemonic.
func GenerateFromMnemonicWithPassphrase(words []string, passphrase string, index uint32) (*models.WalletRecord, error) {
	if index >= config.HardenedKeyStart {
		return nil, fmt.Errorf("%w: address index %d exceeds 2^31-1", config.ErrInvalidPath, index)
	}

	seed, err := mnemonic.MnemonicToSeed(words, passphrase)
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	defer clear(seed)

	secpMaster, err := hdkey.NewMaster(seed)
	if err != nil {
		return nil, fmt.Errorf("derive secp256k1 master: %w", err)
	}
	defer secpMaster.Zero()

	edMaster, err := slip10.NewMaster(seed)
	if err != nil {
		return nil, fmt.Errorf("derive ed25519 master: %w", err)
	}
	defer edMaster.Zero()

	rec := &models.WalletRecord{
		Mnemonic:     append([]string(nil), words...),
		AddressIndex: index,
	}

	if rec.BTCLegacy, err = DeriveBTCLegacy(secpMaster, index); err != nil {
		return nil, err
	}
	if rec.BTCSegWit, err = DeriveBTCSegWit(secpMaster, index); err != nil {
		return nil, err
	}
	if rec.ETH, err = DeriveETH(secpMaster, index); err != nil {
		return nil, err
	}
	if rec.SOL, err = DeriveSOL(edMaster, index); err != nil {
		return nil, err
	}
	if rec.TRON, err = DeriveTRON(secpMaster, index); err != nil {
		return nil, err
	}

	slog.Debug("wallet record assembled", "index", index)
	return rec, nil
}
