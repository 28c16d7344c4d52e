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

// Package metadata types define the structures used for recording
// information about snapshot runs. These records capture run statistics
// and parameters for auditing and troubleshooting.
package metadata

import (
	"time"
)

// RunMetadata represents the complete metadata record for a single snapshot
// run. It captures what was fetched, how it was fetched, and the results.
// Metadata is write-only audit output: nothing in a later run reads it back.
type RunMetadata struct {
	ToolVersion string     `json:"tool_version"`
	RunID       string     `json:"run_id"`
	Parameters  RunParams  `json:"parameters"`
	Results     RunResults `json:"results"`
}

// RunParams captures the input parameters used for a snapshot run. These
// are preserved to make a run reproducible when troubleshooting.
type RunParams struct {
	Accounts   []string `json:"accounts"`
	PageSize   int      `json:"page_size"`
	Fields     []string `json:"fields"`
	Visibility string   `json:"visibility,omitempty"`
	SourceOnly bool     `json:"source_only"`
}

// RunResults contains statistics about a completed snapshot run: record
// counts before and after deduplication, failure counts, API usage, and
// timing.
type RunResults struct {
	TotalFetched      int       `json:"total_fetched"`
	SnapshotSize      int       `json:"snapshot_size"`
	DuplicatesDropped int       `json:"duplicates_dropped"`
	FailedPages       int       `json:"failed_pages"`
	PagesFetched      int       `json:"pages_fetched"`
	APICallCount      int       `json:"api_calls_made"`
	Truncated         bool      `json:"truncated"`
	Duration          string    `json:"run_duration"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
}

// RunStats is the raw counter set a finished run hands to the tracker.
type RunStats struct {
	TotalFetched int
	SnapshotSize int
	FailedPages  int
	PagesFetched int
	APICallCount int
	Truncated    bool
}
