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

import "time"

// Repository represents one repository record as returned by the GitHub API.
// The JSON field names match the names GitHub uses for these attributes, so
// they survive serialization to the snapshot file verbatim. The url field is
// the canonical locator and serves as the identity of a record: deduplication
// and snapshot ordering both key on it.
type Repository struct {
	Name            string     `json:"name"`
	URL             string     `json:"url"`
	Description     string     `json:"description"`
	Visibility      string     `json:"visibility"`
	IsPrivate       bool       `json:"isPrivate"`
	IsFork          bool       `json:"isFork"`
	IsArchived      bool       `json:"isArchived"`
	StargazerCount  int        `json:"stargazerCount"`
	DiskUsage       int        `json:"diskUsage"`
	PrimaryLanguage string     `json:"primaryLanguage"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	PushedAt        *time.Time `json:"pushedAt,omitempty"`
}

// RepositoryPage represents one page of repositories from a GraphQL query.
// It carries the records for the current page together with the pagination
// information needed to fetch the next one. EndCursor is an opaque
// continuation token; it is only meaningful when HasNextPage is true.
type RepositoryPage struct {
	Repositories []Repository
	HasNextPage  bool
	EndCursor    string
}

// FetchOptions configures how repository pages are fetched.
type FetchOptions struct {
	// PageSize controls how many repositories to fetch per page.
	// Defaults to 50 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// After is the cursor for pagination.
	// Empty string fetches from the beginning.
	// Use RepositoryPage.EndCursor from the previous response for the next page.
	After string

	// Visibility restricts results to "public" or "private" repositories.
	// Empty string fetches both.
	Visibility string

	// SourceOnly excludes forks when true, mirroring the source-only
	// listing filter of the GitHub CLI.
	SourceOnly bool
}

// Default values for fetch operations
const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// AccountInfo contains basic account metadata.
// Used primarily to get the total repository count for progress reporting.
type AccountInfo struct {
	TotalRepositories int
}
