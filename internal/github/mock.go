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

import (
	"context"
	"fmt"

	rkerrors "github.com/repokeephq/repokeep/internal/errors"
)

// PageResult scripts one FetchRepositories call of the MockClient:
// either a page or an error, never both.
type PageResult struct {
	Page *RepositoryPage
	Err  error
}

// MockClient is a scriptable implementation of the Client interface for testing.
// Each FetchRepositories call consumes the next entry of Script; once the
// script is exhausted the client returns an empty final page. Accounts maps
// account names to their own scripts, for multi-account tests.
type MockClient struct {
	// Script consumed by FetchRepositories when Accounts has no entry
	// for the requested account.
	Script []PageResult

	// Accounts optionally scripts responses per account name.
	Accounts map[string][]PageResult

	// Info returned by GetAccountInfo.
	Info AccountInfo

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNotFound bool

	// Track calls for verification
	CallCount   int
	LastAccount string
	LastOpts    FetchOptions

	perAccountCalls map[string]int
}

// FetchRepositories implements the Client interface
func (m *MockClient) FetchRepositories(ctx context.Context, account string, opts FetchOptions) (*RepositoryPage, error) {
	m.CallCount++
	m.LastAccount = account
	m.LastOpts = opts

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", rkerrors.ErrInvalidToken)
	}
	if m.ShouldFailNotFound {
		return nil, fmt.Errorf("account not found: %w", rkerrors.ErrAccountNotFound)
	}

	script := m.Script
	call := m.CallCount - 1
	if s, ok := m.Accounts[account]; ok {
		script = s
		if m.perAccountCalls == nil {
			m.perAccountCalls = make(map[string]int)
		}
		call = m.perAccountCalls[account]
		m.perAccountCalls[account] = call + 1
	}

	if call >= len(script) {
		return &RepositoryPage{}, nil
	}

	step := script[call]
	if step.Err != nil {
		return nil, step.Err
	}
	return step.Page, nil
}

// GetAccountInfo implements the Client interface
func (m *MockClient) GetAccountInfo(ctx context.Context, account string) (*AccountInfo, error) {
	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", rkerrors.ErrInvalidToken)
	}
	if m.ShouldFailNotFound {
		return nil, fmt.Errorf("account not found: %w", rkerrors.ErrAccountNotFound)
	}
	info := m.Info
	return &info, nil
}

// MakeRepositories builds n repository records named prefix1..prefixN with
// urls derived from the account and name. Convenient for pagination tests.
func MakeRepositories(account, prefix string, n int) []Repository {
	repos := make([]Repository, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("%s%d", prefix, i)
		repos = append(repos, Repository{
			Name:       name,
			URL:        fmt.Sprintf("https://github.com/%s/%s", account, name),
			Visibility: "public",
		})
	}
	return repos
}
