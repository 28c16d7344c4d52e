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
	"context"
	"fmt"
	"time"

	"github.com/repokeephq/repokeep/internal/github"
)

// Default fetch settings applied by NewFetcher when the corresponding
// option is zero.
const (
	DefaultPageSize    = 50
	DefaultMaxPages    = 400
	DefaultPageTimeout = 30 * time.Second
)

// Options configures a Fetcher.
type Options struct {
	// PageSize is the number of records requested per page (1..100).
	PageSize int

	// MaxPages caps the number of pages fetched per account. The cap is a
	// defensive termination bound; hitting it while the API still reports
	// more data records an error entry and marks the result truncated.
	MaxPages int

	// PageTimeout is the deadline applied to each individual page fetch.
	// A timeout is treated exactly like any other page failure.
	PageTimeout time.Duration

	// Visibility and SourceOnly are passed through to the client.
	Visibility string
	SourceOnly bool

	// Progress, when non-nil, is invoked after every successful page with
	// the running page and record counts for the current account.
	Progress func(account string, pages, records int)
}

// Fetcher drives the paging loop against a github.Client. It owns no
// state across runs; every Run starts from an empty cursor and an empty
// accumulator.
type Fetcher struct {
	client github.Client
	opts   Options
}

// NewFetcher creates a Fetcher, filling in defaults for unset options.
func NewFetcher(client github.Client, opts Options) *Fetcher {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = DefaultPageTimeout
	}
	return &Fetcher{client: client, opts: opts}
}

// Run fetches the complete repository list of one account.
//
// The loop advances through the opaque continuation cursor returned with
// each page and stops when the API reports no further page. Two other
// exits exist: a failed page (after the client's own retries) is recorded
// as a FetchError and ends pagination for this account, because an opaque
// cursor leaves no way to address the pages behind the failure; and the
// MaxPages cap ends pagination unconditionally, so the loop terminates for
// any response sequence.
func (f *Fetcher) Run(ctx context.Context, account string) *RunResult {
	result := &RunResult{}
	acc := NewAccumulator()

	cursor := ""
	hasMore := true

	for hasMore {
		if result.Pages >= f.opts.MaxPages {
			result.Truncated = true
			result.Errors = append(result.Errors, FetchError{
				Account: account,
				Page:    result.Pages + 1,
				Cursor:  cursor,
				Message: fmt.Sprintf("page cap of %d reached with more data available; snapshot for this account is incomplete", f.opts.MaxPages),
			})
			break
		}

		page, err := f.fetchPage(ctx, account, cursor)
		result.APICalls++
		if err != nil {
			result.Errors = append(result.Errors, FetchError{
				Account: account,
				Page:    result.Pages + 1,
				Cursor:  cursor,
				Message: err.Error(),
			})
			break
		}

		result.Pages++
		acc.AddPage(page.Repositories)

		if f.opts.Progress != nil {
			f.opts.Progress(account, result.Pages, acc.Len())
		}

		cursor = page.EndCursor
		hasMore = page.HasNextPage
	}

	result.Records = acc.Records()
	return result
}

// RunAll fetches every account in order and merges the results. A failing
// account contributes its error entries and whatever records it yielded
// before the failure; the remaining accounts are still fetched.
func (f *Fetcher) RunAll(ctx context.Context, accounts []string) *RunResult {
	total := &RunResult{}

	for _, account := range accounts {
		result := f.Run(ctx, account)
		total.Records = append(total.Records, result.Records...)
		total.Errors = append(total.Errors, result.Errors...)
		total.Pages += result.Pages
		total.APICalls += result.APICalls
		total.Truncated = total.Truncated || result.Truncated

		if ctx.Err() != nil {
			break
		}
	}

	return total
}

// fetchPage issues one page request under the per-page deadline.
func (f *Fetcher) fetchPage(ctx context.Context, account, cursor string) (*github.RepositoryPage, error) {
	pageCtx, cancel := context.WithTimeout(ctx, f.opts.PageTimeout)
	defer cancel()

	return f.client.FetchRepositories(pageCtx, account, github.FetchOptions{
		PageSize:   f.opts.PageSize,
		After:      cursor,
		Visibility: f.opts.Visibility,
		SourceOnly: f.opts.SourceOnly,
	})
}
