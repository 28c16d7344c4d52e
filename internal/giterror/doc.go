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

// Package giterror classifies errors returned by the GitHub API.
//
// The GraphQL client surfaces failures as opaque error strings, so the
// Inspector matches on the well-known substrings GitHub uses for
// authentication, missing accounts, rate limiting, and network failures.
// The classification drives both error-to-sentinel mapping in the client
// and the retry decision in the retry decorator.
package giterror
