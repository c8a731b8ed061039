package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fantasim/hdkeygen/internal/config"
	"github.com/Fantasim/hdkeygen/internal/mnemonic"
	"github.com/Fantasim/hdkeygen/internal/models"
	"github.com/Fantasim/hdkeygen/internal/validate"
	"github.com/Fantasim/hdkeygen/internal/wallet"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate one wallet from fresh entropy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := wallet.NewGeneratorFromConfig(a.cfg).Generate()
			if err != nil {
				return fmt.Errorf("generate wallet: %w", err)
			}
			return a.emit(cmd.OutOrStdout(), []*models.WalletRecord{rec})
		},
	}
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		count      int
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate independent wallets, each from its own entropy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := wallet.NewGeneratorFromConfig(a.cfg, wallet.WithProgress(func(generated, total int) {
				slog.Info("batch progress", "generated", generated, "total", total)
			}))

			records, err := gen.GenerateBatch(count)
			if err != nil {
				return fmt.Errorf("generate batch: %w", err)
			}

			if exportPath == "" {
				return a.emit(cmd.OutOrStdout(), records)
			}

			if err := a.checkRecords(cmd.OutOrStdout(), records, false); err != nil {
				return err
			}
			if err := wallet.ExportFile(exportPath, records); err != nil {
				return err
			}
			if !a.jsonOutput() {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(records), exportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of wallets to generate")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write records to this JSON file instead of stdout")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	var (
		mnemonicFile string
		phrase       string
		passphrase   string
		index        uint32
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Derive the wallet for an existing 12-word mnemonic",
		Long: `Derive the wallet for an existing 12-word mnemonic.

The mnemonic is read from --mnemonic-file, --mnemonic, or one line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			words, err := readMnemonic(cmd.InOrStdin(), mnemonicFile, phrase)
			if err != nil {
				return err
			}

			slog.Info("restoring wallet", "index", index, "passphrase", passphrase != "")

			rec, err := wallet.GenerateFromMnemonicWithPassphrase(words, passphrase, index)
			if err != nil {
				return fmt.Errorf("restore wallet: %w", err)
			}
			return a.emit(cmd.OutOrStdout(), []*models.WalletRecord{rec})
		},
	}

	cmd.Flags().StringVar(&mnemonicFile, "mnemonic-file", "", "Path to file containing a 12-word BIP-39 mnemonic")
	cmd.Flags().StringVar(&phrase, "mnemonic", "", "12-word BIP-39 mnemonic (visible in shell history; prefer --mnemonic-file)")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Optional BIP-39 passphrase")
	cmd.Flags().Uint32VarP(&index, "index", "i", 0, "Address index (0 to 2147483647)")
	cmd.MarkFlagsMutuallyExclusive("mnemonic-file", "mnemonic")
	return cmd
}

// readMnemonic resolves the mnemonic from a file, a flag value, or the first line of in.
func readMnemonic(in io.Reader, path, phrase string) ([]string, error) {
	switch {
	case path != "":
		return mnemonic.ReadMnemonicFromFile(path)
	case phrase != "":
		return mnemonic.Parse(phrase)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read mnemonic from stdin: %w", err)
	}
	if strings.TrimSpace(line) == "" {
		return nil, fmt.Errorf("no mnemonic given: use --mnemonic-file, --mnemonic or stdin: %w", config.ErrMnemonicLength)
	}
	return mnemonic.Parse(line)
}

func newValidateCmd(a *app) *cobra.Command {
	var jsonFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Re-validate every record of a JSON export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(jsonFile)
			if err != nil {
				return fmt.Errorf("open export %q: %w", jsonFile, err)
			}
			defer f.Close()

			doc, err := wallet.ReadRecordsJSON(f)
			if err != nil {
				return err
			}

			records := make([]*models.WalletRecord, len(doc.Records))
			for i := range doc.Records {
				records[i] = &doc.Records[i]
			}
			return a.checkRecords(cmd.OutOrStdout(), records, true)
		},
	}

	cmd.Flags().StringVarP(&jsonFile, "json-file", "f", "", "JSON export written by batch --export")
	cmd.MarkFlagRequired("json-file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hdkeygen %s\n", version)
		},
	}
}

// emit validates records (unless disabled) and writes them in the configured format.
func (a *app) emit(w io.Writer, records []*models.WalletRecord) error {
	var reports []models.ValidationReport
	if a.cfg.Validate {
		reports = make([]models.ValidationReport, len(records))
		for i, rec := range records {
			reports[i] = validate.Validate(rec)
		}
	}

	failed := failedRecords(reports)

	if a.jsonOutput() {
		// Records that failed validation are not emitted as JSON; only the error is.
		if failed != nil {
			return failed
		}
		return wallet.WriteRecordsJSON(w, records)
	}

	r := newRenderer(w)
	for i, rec := range records {
		if len(records) > 1 {
			r.heading(fmt.Sprintf("Wallet %d of %d", i+1, len(records)))
		}
		r.record(rec)
		if reports != nil {
			r.report(reports[i])
		}
	}
	return failed
}

// checkRecords validates records and, when show is set or a check fails,
// prints the reports in text mode.
func (a *app) checkRecords(w io.Writer, records []*models.WalletRecord, show bool) error {
	if !a.cfg.Validate && !show {
		return nil
	}

	reports := make([]models.ValidationReport, len(records))
	for i, rec := range records {
		reports[i] = validate.Validate(rec)
	}

	if !a.jsonOutput() {
		r := newRenderer(w)
		for i, report := range reports {
			if show || !report.OK() {
				r.heading(fmt.Sprintf("Record %d (index %d)", i+1, records[i].AddressIndex))
				r.report(report)
			}
		}
	}
	return failedRecords(reports)
}

// failedRecords returns an error naming how many reports contain a failed check.
func failedRecords(reports []models.ValidationReport) error {
	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d records failed validation", failed, len(reports))
	}
	return nil
}
