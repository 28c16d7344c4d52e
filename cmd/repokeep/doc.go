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

// Command repokeep snapshots the repository inventory of GitHub accounts.
//
// A run pages through each account's repository list over the GitHub
// GraphQL API, deduplicates the records by url, sorts them, and replaces
// the snapshot and error files on disk. The process exits 0 when the
// snapshot was written, even if individual pages failed (those failures
// are listed in the error file), and non-zero when the output files could
// not be persisted.
//
// Usage:
//
//	repokeep snapshot <account> [account...]
//
// Authentication uses a GitHub token from the --token flag or the
// GITHUB_TOKEN environment variable.
package main
