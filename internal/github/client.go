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

package github

import "context"

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// FetchRepositories retrieves one page of repositories owned by the
	// specified account (user or organization). It supports cursor-based
	// pagination through the opts.After parameter; pass the EndCursor of
	// the previous page to fetch the next one. The page size can be
	// configured via opts.PageSize.
	FetchRepositories(ctx context.Context, account string, opts FetchOptions) (*RepositoryPage, error)

	// GetAccountInfo retrieves basic account metadata including the total
	// repository count. Used for progress reporting.
	GetAccountInfo(ctx context.Context, account string) (*AccountInfo, error)
}
