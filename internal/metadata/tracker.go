// Copyright 2025 RepoKeep, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metadata records what each snapshot run did. Every run produces
// one JSON metadata file with the parameters used, the record and error
// counts, and timing information. The files serve as an audit trail and a
// debugging aid; they are never read back by the tool itself, so the
// snapshot process stays stateless across runs.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Tracker captures the start time of a run and turns the finished run's
// counters into a RunMetadata record. Create one at the start of each run.
type Tracker struct {
	startTime time.Time
}

// New creates a new metadata tracker anchored at the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// Generate creates a RunMetadata instance capturing the complete run.
// Call this after finalization, when all counters are known.
func (t *Tracker) Generate(toolVersion string, params RunParams, stats RunStats) *RunMetadata {
	completedAt := time.Now()
	duration := completedAt.Sub(t.startTime)

	return &RunMetadata{
		ToolVersion: toolVersion,
		RunID:       fmt.Sprintf("snapshot-%d", t.startTime.Unix()),
		Parameters:  params,
		Results: RunResults{
			TotalFetched:      stats.TotalFetched,
			SnapshotSize:      stats.SnapshotSize,
			DuplicatesDropped: stats.TotalFetched - stats.SnapshotSize,
			FailedPages:       stats.FailedPages,
			PagesFetched:      stats.PagesFetched,
			APICallCount:      stats.APICallCount,
			Truncated:         stats.Truncated,
			Duration:          duration.String(),
			StartedAt:         t.startTime,
			CompletedAt:       completedAt,
		},
	}
}

// SaveMetadata persists a RunMetadata record to a JSON file in the specified
// directory. The file is written atomically using a temporary file and rename
// to prevent corruption. The filename includes a timestamp for easy sorting.
//
// The metadata file will be named: run-metadata-{timestamp}.json
func SaveMetadata(metadata *RunMetadata, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	filename := fmt.Sprintf("run-metadata-%d.json", metadata.Results.StartedAt.Unix())
	path := filepath.Join(dir, filename)

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(metadata); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// WriteMetadataToWriter serializes metadata to JSON and writes it to the
// provided io.Writer, formatted with indentation for readability. Useful
// for echoing run metadata to stderr in verbose mode.
func WriteMetadataToWriter(metadata *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
