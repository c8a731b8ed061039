// Command hdkeygen generates and checks multi-chain HD wallets (BTC Legacy,
// BTC SegWit, ETH, SOL, TRON) from fresh entropy or an existing mnemonic.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/logging"
)

var version = "dev"

// app holds the state shared by every subcommand for one invocation.
type app struct {
	cfg       *config.Config
	logCloser io.Closer

	output     string
	logLevel   string
	noValidate bool
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "hdkeygen",
		Short: "Generate multi-chain HD wallets from a BIP-39 mnemonic",
		Long: `Generate multi-chain HD wallets from a BIP-39 mnemonic.

Each wallet is a 12-word mnemonic plus one address and secret for
BTC Legacy (m/44'/0'/0'/0/i), BTC SegWit (m/84'/0'/0'/0/i),
ETH (m/44'/60'/0'/0/i), SOL (m/44'/501'/i'/0') and TRON (m/44'/195'/0'/0/i).
Every generated record is re-checked by an independent validator unless
--no-validate is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "Output format: text or json (default: from HDKEYGEN_OUTPUT or text)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from HDKEYGEN_LOG_LEVEL or info)")
	root.PersistentFlags().BoolVar(&a.noValidate, "no-validate", false, "Skip validation of generated records")

	root.AddCommand(
		newGenerateCmd(a),
		newBatchCmd(a),
		newRestoreCmd(a),
		newValidateCmd(a),
		newVersionCmd(),
	)
	return root, a
}

// setup loads configuration, applies flag overrides and installs logging.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with flags if provided.
	if a.output != "" {
		cfg.Output = a.output
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.noValidate {
		cfg.Validate = false
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	a.cfg = cfg
	a.logCloser = logCloser

	slog.Debug("configuration loaded",
		"command", cmd.Name(),
		"output", cfg.Output,
		"validate", cfg.Validate,
		"batchWorkers", cfg.BatchWorkers,
		"maxBatch", cfg.MaxBatch,
	)
	return nil
}

func (a *app) jsonOutput() bool {
	return a.cfg != nil && a.cfg.Output == config.OutputJSON
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// execute runs the command line and reports any error in the selected output format.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root, a := newRootCmd()
	defer a.close()

	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}

	if a.jsonOutput() {
		writeJSONError(stdout, err)
	} else {
		writeTextError(stderr, err)
	}
	slog.Error("command failed", "command", cmd.Name(), "code", config.ErrorCode(err), "error", err)
	return err
}

func main() {
	if err := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
