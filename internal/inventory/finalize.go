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

import (
	"sort"

	"github.com/repokeephq/repokeep/internal/github"
)

// Finalize turns the accumulated record stream into the snapshot:
//   - records without a url are dropped (a snapshot record must be addressable)
//   - duplicates are collapsed by url, first occurrence wins
//   - the result is sorted by url ascending, case-sensitive byte order
//
// Finalize is pure and deterministic: the same multiset of records produces
// the same snapshot regardless of arrival order. Ordering is total because
// urls are unique after deduplication.
func Finalize(records []github.Repository) Snapshot {
	seen := make(map[string]struct{}, len(records))
	snapshot := make(Snapshot, 0, len(records))

	for _, record := range records {
		if record.URL == "" {
			continue
		}
		if _, dup := seen[record.URL]; dup {
			continue
		}
		seen[record.URL] = struct{}{}
		snapshot = append(snapshot, record)
	}

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].URL < snapshot[j].URL
	})

	return snapshot
}
