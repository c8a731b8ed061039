package wallet

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Fantasim/hdkeygen/internal/models"
)

// ExportFile writes records as a JSON export document to path. The file is
// created with owner-only permissions because it holds secrets.
func ExportFile(path string, records []*models.WalletRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create export directory %q: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create export file %q: %w", path, err)
	}

	if err := WriteRecordsJSON(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file %q: %w", path, err)
	}

	slog.Info("export complete", "file", path, "count", len(records))
	return nil
}

// WriteRecordsJSON streams records as one RecordExport document. Records are
// marshalled one at a time so large batches are not held twice in memory.
func WriteRecordsJSON(w io.Writer, records []*models.WalletRecord) error {
	templates, err := json.Marshal(pathTemplates())
	if err != nil {
		return fmt.Errorf("marshal path templates: %w", err)
	}

	// Write header
	header := fmt.Sprintf(`{"derivation_path_templates":%s,"generated_at":"%s","count":%d,"records":[`,
		templates, time.Now().UTC().Format(time.RFC3339), len(records))
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for i, rec := range records {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return fmt.Errorf("write export separator: %w", err)
			}
		}

		entry, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", i, err)
		}
		if _, err := w.Write(entry); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	// Write footer
	if _, err := io.WriteString(w, "]}\n"); err != nil {
		return fmt.Errorf("write export footer: %w", err)
	}
	return nil
}

// ReadRecordsJSON decodes an export document written by WriteRecordsJSON.
func ReadRecordsJSON(r io.Reader) (*models.RecordExport, error) {
	var doc models.RecordExport
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if doc.Count != len(doc.Records) {
		return nil, fmt.Errorf("decode export: header count %d, found %d records", doc.Count, len(doc.Records))
	}
	return &doc, nil
}

func pathTemplates() map[models.Chain]string {
	out := make(map[models.Chain]string, len(models.AllChains))
	for _, c := range models.AllChains {
		out[c] = derivationPathTemplate(c)
	}
	return out
}
