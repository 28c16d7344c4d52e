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

package inventory

import "github.com/repokeephq/repokeep/internal/github"

// Snapshot is the final output collection of one run: all successfully
// fetched repository records, deduplicated by url and sorted by url in
// ascending byte order. It is produced exactly once per run by Finalize.
type Snapshot []github.Repository

// FetchError records one failed page request. Entries are appended to the
// run's error collection and serialized to the error file; they never abort
// the run as a whole.
type FetchError struct {
	// Account is the account whose page failed.
	Account string `json:"account,omitempty"`

	// Page is the ordinal of the failed page within the account's fetch,
	// starting at 1.
	Page int `json:"page"`

	// Cursor is the continuation token the failed request was issued with.
	// Empty for the first page.
	Cursor string `json:"cursor,omitempty"`

	// Message is the underlying error text.
	Message string `json:"message"`
}

// RunResult aggregates everything a fetch run produced: the raw record
// stream in arrival order, the error collection, and counters for
// reporting. Records are not yet deduplicated or sorted; pass them to
// Finalize for that.
type RunResult struct {
	Records  []github.Repository
	Errors   []FetchError
	Pages    int
	APICalls int

	// Truncated reports that the defensive page cap ended pagination
	// while the API still signaled more data.
	Truncated bool
}
