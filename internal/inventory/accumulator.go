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

// Accumulator collects repository records page by page during a run.
// It appends in arrival order and performs no deduplication; collapsing
// duplicates is deferred to Finalize so that the accumulator's job stays
// purely "collect everything seen".
type Accumulator struct {
	records []github.Repository
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// AddPage appends all records of one fetched page. Amortized O(1) per record.
func (a *Accumulator) AddPage(records []github.Repository) {
	a.records = append(a.records, records...)
}

// Len returns the number of records collected so far.
func (a *Accumulator) Len() int {
	return len(a.records)
}

// Records returns the collected records in arrival order.
func (a *Accumulator) Records() []github.Repository {
	return a.records
}
