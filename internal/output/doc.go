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

// Package output persists the snapshot and error files produced by a run.
//
// Both files are JSON arrays and are fully replaced on every run. Writes
// go through a write-to-temp-and-rename sequence so a reader can never
// observe a truncated file: the destination either holds the previous
// complete content or the new complete content. The snapshot records are
// projected through a configurable field set before serialization; field
// names are emitted exactly as GitHub names them.
package output
