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

// Package inventory implements the repository inventory run: the paging
// loop that collects repository records from GitHub account by account,
// and the finalization step that deduplicates and orders them into a
// snapshot.
//
// A run is single-threaded and strictly sequential. Pages are addressed by
// the opaque continuation cursor returned with each page, and the loop
// stops when no continuation remains or when the defensive page cap is
// reached, so termination is guaranteed for any response sequence. Page
// failures are recorded, never raised: a failed page contributes zero
// records and one error entry, and the run carries on with the remaining
// accounts.
package inventory
