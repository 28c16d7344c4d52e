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
	"errors"
	"strings"
	"testing"

	"github.com/repokeephq/repokeep/internal/github"
)

// page builds a scripted page result from a slice of repositories.
func page(repos []github.Repository, hasMore bool, cursor string) github.PageResult {
	return github.PageResult{
		Page: &github.RepositoryPage{
			Repositories: repos,
			HasNextPage:  hasMore,
			EndCursor:    cursor,
		},
	}
}

func TestFetcher_EndToEndScenario(t *testing.T) {
	// Five repositories, page size 3: page 1 holds r1..r3 with a
	// continuation, page 2 holds r4,r5 without one.
	all := github.MakeRepositories("acme", "r", 5)

	mock := &github.MockClient{
		Script: []github.PageResult{
			page(all[0:3], true, "cursor-1"),
			page(all[3:5], false, ""),
		},
	}

	fetcher := NewFetcher(mock, Options{PageSize: 3})
	result := fetcher.Run(context.Background(), "acme")

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2", result.Pages)
	}
	if mock.CallCount != 2 {
		t.Errorf("CallCount = %d, want 2", mock.CallCount)
	}
	if mock.LastOpts.After != "cursor-1" {
		t.Errorf("second fetch used cursor %q, want cursor-1", mock.LastOpts.After)
	}

	snapshot := Finalize(result.Records)
	if len(snapshot) != 5 {
		t.Fatalf("snapshot holds %d records, want 5", len(snapshot))
	}
	for i, r := range snapshot {
		wantSuffix := []string{"r1", "r2", "r3", "r4", "r5"}[i]
		if !strings.HasSuffix(r.URL, wantSuffix) {
			t.Errorf("snapshot[%d].URL = %q, want suffix %q", i, r.URL, wantSuffix)
		}
	}
}

func TestFetcher_TerminatesOnEmptyFirstPage(t *testing.T) {
	mock := &github.MockClient{
		Script: []github.PageResult{
			page(nil, false, ""),
		},
	}

	fetcher := NewFetcher(mock, Options{PageSize: 3})
	result := fetcher.Run(context.Background(), "acme")

	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount)
	}
	if len(result.Records) != 0 {
		t.Errorf("Records = %d, want 0", len(result.Records))
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
}

func TestFetcher_IterationBound(t *testing.T) {
	// 10 records at page size 3 must finish within total/pageSize + 1 = 4 calls.
	all := github.MakeRepositories("acme", "r", 10)

	mock := &github.MockClient{
		Script: []github.PageResult{
			page(all[0:3], true, "c1"),
			page(all[3:6], true, "c2"),
			page(all[6:9], true, "c3"),
			page(all[9:10], false, ""),
		},
	}

	fetcher := NewFetcher(mock, Options{PageSize: 3})
	result := fetcher.Run(context.Background(), "acme")

	if mock.CallCount > 4 {
		t.Errorf("CallCount = %d, exceeds bound of 4", mock.CallCount)
	}
	if len(result.Records) != 10 {
		t.Errorf("Records = %d, want 10", len(result.Records))
	}
}

func TestFetcher_PageCapEndsPagination(t *testing.T) {
	// Every page claims more data; without the cap this would never stop.
	repos := github.MakeRepositories("acme", "r", 2)
	endless := make([]github.PageResult, 64)
	for i := range endless {
		endless[i] = page(repos, true, "again")
	}

	mock := &github.MockClient{Script: endless}

	fetcher := NewFetcher(mock, Options{PageSize: 2, MaxPages: 5})
	result := fetcher.Run(context.Background(), "acme")

	if mock.CallCount != 5 {
		t.Errorf("CallCount = %d, want exactly MaxPages = 5", mock.CallCount)
	}
	if !result.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one cap entry", result.Errors)
	}
	if result.Errors[0].Page != 6 {
		t.Errorf("cap error page = %d, want 6", result.Errors[0].Page)
	}
	if !strings.Contains(result.Errors[0].Message, "page cap") {
		t.Errorf("cap error message = %q, want mention of the page cap", result.Errors[0].Message)
	}
}

func TestFetcher_FailedPageIsRecordedAndEndsAccount(t *testing.T) {
	repos := github.MakeRepositories("acme", "r", 3)

	mock := &github.MockClient{
		Script: []github.PageResult{
			page(repos, true, "cursor-1"),
			{Err: errors.New("boom")},
		},
	}

	fetcher := NewFetcher(mock, Options{PageSize: 3})
	result := fetcher.Run(context.Background(), "acme")

	if mock.CallCount != 2 {
		t.Errorf("CallCount = %d, want 2 (no fetch past the failure)", mock.CallCount)
	}
	if len(result.Records) != 3 {
		t.Errorf("Records = %d, want the 3 from the successful page", len(result.Records))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}

	fetchErr := result.Errors[0]
	if fetchErr.Account != "acme" {
		t.Errorf("error account = %q, want acme", fetchErr.Account)
	}
	if fetchErr.Page != 2 {
		t.Errorf("error page = %d, want 2", fetchErr.Page)
	}
	if fetchErr.Cursor != "cursor-1" {
		t.Errorf("error cursor = %q, want cursor-1", fetchErr.Cursor)
	}
	if fetchErr.Message != "boom" {
		t.Errorf("error message = %q, want boom", fetchErr.Message)
	}
}

func TestFetcher_RunAllIsolatesAccountFailures(t *testing.T) {
	okOne := github.MakeRepositories("one", "a", 2)
	okThree := github.MakeRepositories("three", "c", 2)

	mock := &github.MockClient{
		Accounts: map[string][]github.PageResult{
			"one":   {page(okOne, false, "")},
			"two":   {{Err: errors.New("account two is unavailable")}},
			"three": {page(okThree, false, "")},
		},
	}

	fetcher := NewFetcher(mock, Options{PageSize: 50})
	result := fetcher.RunAll(context.Background(), []string{"one", "two", "three"})

	if len(result.Records) != 4 {
		t.Errorf("Records = %d, want the union of accounts one and three (4)", len(result.Records))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one entry for account two", result.Errors)
	}
	if result.Errors[0].Account != "two" {
		t.Errorf("error account = %q, want two", result.Errors[0].Account)
	}

	snapshot := Finalize(result.Records)
	if len(snapshot) != 4 {
		t.Errorf("snapshot = %d records, want 4", len(snapshot))
	}
}

func TestFetcher_ProgressCallback(t *testing.T) {
	all := github.MakeRepositories("acme", "r", 4)

	mock := &github.MockClient{
		Script: []github.PageResult{
			page(all[0:2], true, "c1"),
			page(all[2:4], false, ""),
		},
	}

	var calls []int
	fetcher := NewFetcher(mock, Options{
		PageSize: 2,
		Progress: func(account string, pages, records int) {
			if account != "acme" {
				t.Errorf("progress account = %q, want acme", account)
			}
			calls = append(calls, records)
		},
	})
	fetcher.Run(context.Background(), "acme")

	if len(calls) != 2 || calls[0] != 2 || calls[1] != 4 {
		t.Errorf("progress record counts = %v, want [2 4]", calls)
	}
}

func TestFetcher_CanceledContextStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &github.MockClient{}
	fetcher := NewFetcher(mock, Options{PageSize: 3})
	result := fetcher.Run(ctx, "acme")

	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one entry for the canceled fetch", result.Errors)
	}
	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount)
	}
}
