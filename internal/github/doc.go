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

// Package github provides a client for listing an account's repositories
// through GitHub's GraphQL API. It abstracts the GraphQL query details and
// exposes a simple page-at-a-time interface with cursor-based pagination.
//
// The package includes:
//   - A Client interface for fetching repository pages and account information
//   - A GraphQL implementation using the shurcooL/graphql library
//   - A retry decorator with exponential backoff for transient failures
//   - A scriptable mock client for testing
package github
