package output

import (
	"encoding/json"
	"fmt"
	"os"

	rkerrors "github.com/repokeephq/repokeep/internal/errors"
	"github.com/repokeephq/repokeep/internal/inventory"
)

// Writer persists one run's snapshot and error collection.
// The abstraction exists so command-level tests can substitute a fake
// without touching the filesystem.
type Writer interface {
	// Persist writes the error file and the snapshot file, each fully
	// replacing any previous content. A failure wraps ErrWriteFailed.
	Persist(snapshot inventory.Snapshot, fetchErrors []inventory.FetchError) error
}

// FileWriter writes the snapshot and error files to configured paths.
type FileWriter struct {
	snapshotPath string
	errorPath    string
	fields       map[string]struct{}
}

// NewFileWriter creates a FileWriter. The fields slice selects which record
// attributes are serialized; validate it with ValidateFields first.
func NewFileWriter(snapshotPath, errorPath string, fields []string) *FileWriter {
	keep := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		keep[f] = struct{}{}
	}
	return &FileWriter{
		snapshotPath: snapshotPath,
		errorPath:    errorPath,
		fields:       keep,
	}
}

// Persist writes both output files. The error file goes first: it must
// land even when the snapshot cannot, so a failed run still leaves its
// error report behind. There is no partial snapshot write; either the
// complete new snapshot replaces the destination or the destination is
// left untouched.
func (w *FileWriter) Persist(snapshot inventory.Snapshot, fetchErrors []inventory.FetchError) error {
	// An empty error collection serializes as [], never null.
	if fetchErrors == nil {
		fetchErrors = []inventory.FetchError{}
	}

	errData, err := json.MarshalIndent(fetchErrors, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal error list: %w", err)
	}
	if err := writeFileAtomic(w.errorPath, append(errData, '\n')); err != nil {
		return fmt.Errorf("error file %s: %w", w.errorPath, err)
	}

	records := make([]map[string]json.RawMessage, 0, len(snapshot))
	for _, record := range snapshot {
		projected, projErr := projectRecord(record, w.fields)
		if projErr != nil {
			return projErr
		}
		records = append(records, projected)
	}

	snapData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := writeFileAtomic(w.snapshotPath, append(snapData, '\n')); err != nil {
		return fmt.Errorf("snapshot file %s: %w", w.snapshotPath, err)
	}

	return nil
}

// writeFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename. The rename is what guarantees a reader
// never sees a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"

	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w: %w", err, rkerrors.ErrWriteFailed)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write temp file: %w: %w", err, rkerrors.ErrWriteFailed)
	}

	// Sync to ensure data is flushed to disk before the rename publishes it.
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to sync temp file: %w: %w", err, rkerrors.ErrWriteFailed)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close temp file: %w: %w", err, rkerrors.ErrWriteFailed)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp file: %w: %w", err, rkerrors.ErrWriteFailed)
	}

	return nil
}
